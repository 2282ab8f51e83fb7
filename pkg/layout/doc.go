// Package layout positions an unplaced diagram with Graphviz.
//
// The input is a [graph.Layout] whose nodes carry sizes but no positions,
// typically built by the uml package. [Compute] converts it to DOT with
// fixed-size box nodes and one cluster subgraph per non-root cluster, runs a
// Graphviz engine in-process and reads the result back from Graphviz "plain"
// output:
//
//   - node centers, converted from inches to points with y pointing down
//   - edge routes, whose interior spline knots become bend points
//   - cluster rectangles, the padded union of their members
//
// Graphviz runs through [github.com/goccy/go-graphviz], a WebAssembly build
// of the C library, so no system installation is required.
//
// # Usage
//
//	placed, err := layout.Compute(ctx, unplaced, layout.DefaultOptions())
//
// [ToDOT] exposes the generated DOT source for debugging.
//
// [graph.Layout]: github.com/matzehuels/umlsvg/pkg/graph.Layout
package layout
