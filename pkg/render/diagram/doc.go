// Package diagram draws an attributed layout into a scene document.
//
// [Render] is the single entry point. It reads a [graph.Layout] snapshot and
// emits, in order:
//
//  1. the viewport (content bounds grown by the margin) and a shared text style
//  2. one rectangle per non-root cluster, breadth-first from the root
//  3. one group per node (rectangle, label lines, separator rules), sorted by
//     depth when any node has one
//  4. one group per edge (optional label, path, 0-2 arrowheads) when the
//     layout enables edge graphics
//
// Edges whose end nodes overlap so that nothing remains visible are skipped
// and reported through the logger; the rest of the diagram is unaffected.
//
// # Usage
//
//	doc, stats := diagram.Render(layout, diagram.DefaultSettings(),
//	    diagram.WithLogger(logger))
//	svg := sink.RenderSVG(doc)
//
// Render holds no shared state; concurrent calls on distinct layouts are safe.
package diagram
