// Package sink serializes a [scene.Document] to output formats.
//
//   - SVG: [RenderSVG] writes the document as an SVG 1.1 file.
//   - PNG: [RenderPNG] rasterizes the document natively with a monospace
//     font; [WithRSVG] delegates to rsvg-convert instead.
//   - PDF: [RenderPDF] converts the SVG through rsvg-convert.
//   - JSON: [RenderJSON] writes the positioned input layout.
//
// PDF and rsvg-based PNG output require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [scene.Document]: github.com/matzehuels/umlsvg/pkg/render/scene.Document
package sink
