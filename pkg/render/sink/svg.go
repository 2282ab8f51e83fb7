package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/umlsvg/pkg/geom"
	"github.com/matzehuels/umlsvg/pkg/render/scene"
)

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" ` +
	`xmlns:ev="http://www.w3.org/2001/xml-events" version="1.1" baseProfile="full"`

// RenderSVG serializes doc. Elements are written in document order.
func RenderSVG(doc *scene.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString(svgHeader)
	if doc.Width != "" {
		fmt.Fprintf(&buf, ` width="%s"`, EscapeXML(doc.Width))
	}
	if doc.Height != "" {
		fmt.Fprintf(&buf, ` height="%s"`, EscapeXML(doc.Height))
	}
	vb := doc.ViewBox
	fmt.Fprintf(&buf, ` viewBox="%s %s %s %s">`+"\n",
		f(vb.Min.X), f(vb.Min.Y), f(vb.Width()), f(vb.Height()))

	if doc.TextClass != "" {
		fmt.Fprintf(&buf, "  <style type=\"text/css\">.%s {font: %spx monospace;}</style>\n",
			doc.TextClass, f(doc.FontSize))
	}

	w := svgWriter{buf: &buf}
	for _, e := range doc.Elements {
		w.element(e, 1)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// EscapeXML escapes s for use in text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func f(v float64) string { return geom.FormatFloat(v) }

type svgWriter struct {
	buf *bytes.Buffer
}

func (w svgWriter) indent(depth int) {
	w.buf.WriteString(strings.Repeat("  ", depth))
}

func (w svgWriter) element(e scene.Element, depth int) {
	w.indent(depth)
	switch e := e.(type) {
	case *scene.Group:
		w.group(e, depth)
	case *scene.Rect:
		fmt.Fprintf(w.buf, `<rect x="%s" y="%s" width="%s" height="%s"`, e.X, e.Y, e.Width, e.Height)
		w.paint(e.Paint, true)
		w.buf.WriteString("/>\n")
	case *scene.Line:
		fmt.Fprintf(w.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s"`, e.X1, e.Y1, e.X2, e.Y2)
		w.paint(e.Paint, true)
		w.buf.WriteString("/>\n")
	case *scene.Path:
		fmt.Fprintf(w.buf, `<path d="%s"`, e.Data.String())
		w.paint(e.Paint, true)
		w.buf.WriteString("/>\n")
	case *scene.Polygon:
		fmt.Fprintf(w.buf, `<polygon points="%s"`, polygonPoints(e.Points))
		w.paint(e.Paint, false)
		w.buf.WriteString("/>\n")
	case *scene.Text:
		w.text(e)
	default:
		panic(fmt.Sprintf("sink: unknown scene element %T", e))
	}
}

func (w svgWriter) group(g *scene.Group, depth int) {
	w.buf.WriteString("<g")
	if g.Class != "" {
		fmt.Fprintf(w.buf, ` class="%s"`, g.Class)
	}
	if g.Translate != nil {
		fmt.Fprintf(w.buf, ` transform="translate(%s, %s)"`, f(g.Translate.X), f(g.Translate.Y))
	}
	if len(g.Children) == 0 {
		w.buf.WriteString("/>\n")
		return
	}
	w.buf.WriteString(">\n")
	for _, c := range g.Children {
		w.element(c, depth+1)
	}
	w.indent(depth)
	w.buf.WriteString("</g>\n")
}

// paint writes presentation attributes. Stroke widths carry a px unit on
// shapes; polygons only ever carry a fill.
func (w svgWriter) paint(p scene.Paint, strokeUnit bool) {
	if p.Fill != "" {
		fmt.Fprintf(w.buf, ` fill="%s"`, EscapeXML(p.Fill))
	}
	if p.Stroke != "" {
		fmt.Fprintf(w.buf, ` stroke="%s"`, EscapeXML(p.Stroke))
	}
	if p.StrokeWidth > 0 {
		unit := ""
		if strokeUnit {
			unit = "px"
		}
		fmt.Fprintf(w.buf, ` stroke-width="%s%s"`, f(p.StrokeWidth), unit)
	}
	if len(p.DashArray) > 0 {
		parts := make([]string, len(p.DashArray))
		for i, v := range p.DashArray {
			parts[i] = f(v)
		}
		fmt.Fprintf(w.buf, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
}

func (w svgWriter) text(t *scene.Text) {
	w.buf.WriteString("<text")
	if t.Pos != nil {
		fmt.Fprintf(w.buf, ` x="%s" y="%s"`, f(t.Pos.X), f(t.Pos.Y))
	}
	if t.DY != (scene.Length{}) {
		fmt.Fprintf(w.buf, ` dy="%s"`, t.DY)
	}
	if t.DX != (scene.Length{}) {
		fmt.Fprintf(w.buf, ` dx="%s"`, t.DX)
	}
	if t.Anchor != "" {
		fmt.Fprintf(w.buf, ` text-anchor="%s"`, t.Anchor)
	}
	if t.MiddleAlign {
		w.buf.WriteString(` dominant-baseline="middle"`)
	}
	if t.FontFamily != "" {
		fmt.Fprintf(w.buf, ` font-family="%s"`, EscapeXML(t.FontFamily))
	}
	if t.FontSize > 0 {
		fmt.Fprintf(w.buf, ` font-size="%s"`, f(t.FontSize))
	}
	if t.Fill != "" {
		fmt.Fprintf(w.buf, ` fill="%s"`, EscapeXML(t.Fill))
	}
	if t.TextLength != (scene.Length{}) {
		fmt.Fprintf(w.buf, ` textLength="%s"`, t.TextLength)
	}
	if t.LengthAdjust {
		w.buf.WriteString(` lengthAdjust="spacingAndGlyphs"`)
	}
	fmt.Fprintf(w.buf, ">%s</text>\n", EscapeXML(t.Content))
}

func polygonPoints(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
