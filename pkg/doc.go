// Package pkg provides the libraries behind umlsvg, a class diagram renderer.
//
// # Overview
//
// umlsvg turns a UML class model into a drawing. The pkg directory is
// organized into three areas:
//
//  1. Domain: [uml] models, the [graph] layout snapshot and [geom] primitives
//  2. Drawing: [layout] (Graphviz placement) and [render] (scene + sinks)
//  3. Plumbing: [pipeline], [cache], [config], [errors], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	class model (YAML)
//	         ↓
//	    [uml] package (validate, build an attributed layout)
//	         ↓
//	    [layout] package (Graphviz assigns positions and bends)
//	         ↓
//	    [render/diagram] package (boxes, clipped relations, arrows, frames)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// A layout JSON file can enter at the third step directly, which is how
// hand-edited or externally produced layouts are drawn.
//
// # Quick Start
//
//	m, _ := uml.Parse(data)
//	l, _ := layout.Compute(ctx, m.Graph(10), layout.DefaultOptions())
//	doc, _ := diagram.Render(l, diagram.DefaultSettings())
//	svg := sink.RenderSVG(doc)
//
// [pipeline.Runner] wraps the same steps with caching and hooks and is what
// the CLI, the HTTP server and the MCP tools call.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/render/...    # Drawing only
//	go test -run Example ./...  # Examples only
//
// Layout tests run Graphviz through its WebAssembly build and need no
// system packages. PDF output needs rsvg-convert and its tests skip
// without it.
//
// [uml]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/uml
// [graph]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/graph
// [geom]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/geom
// [layout]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/render/diagram
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/umlsvg/pkg/observability
package pkg
