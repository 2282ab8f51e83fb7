// Package scene is the output document model driven by the diagram renderer.
//
// A [Document] is a viewport plus an ordered tree of elements. Elements are
// appended once and never revisited; sinks in pkg/render/sink serialize a
// document to SVG or replay it onto a raster canvas.
//
// The element set is closed: [Group], [Rect], [Line], [Path], [Polygon] and
// [Text]. Sinks dispatch on the concrete type.
package scene

import (
	"fmt"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

// Document is a complete drawing.
type Document struct {
	// ViewBox is the visible region in user units.
	ViewBox geom.Rect
	// Width and Height override the document size when non-empty
	// (any SVG length, e.g. "800px" or "100%").
	Width, Height string
	// FontSize is the size of one em in user units.
	FontSize float64
	// TextClass names the shared text style rule, if any.
	TextClass string

	Elements []Element
}

// Append adds elements to the top level.
func (d *Document) Append(e ...Element) { d.Elements = append(d.Elements, e...) }

// Element is one of the primitives defined in this package.
type Element interface {
	element()
}

// Length is a distance in user units or, if Em is set, in font-relative ems.
type Length struct {
	Value float64
	Em    bool
}

// U is a length in user units.
func U(v float64) Length { return Length{Value: v} }

// Em is a length in ems.
func Em(v float64) Length { return Length{Value: v, Em: true} }

// Resolve converts l to user units for the given font size.
func (l Length) Resolve(fontSize float64) float64 {
	if l.Em {
		return l.Value * fontSize
	}
	return l.Value
}

func (l Length) String() string {
	if l.Em {
		return geom.FormatFloat(l.Value) + "em"
	}
	return geom.FormatFloat(l.Value)
}

// Paint holds fill and stroke attributes. Empty strings omit the attribute;
// "none" is written explicitly. StrokeWidth zero omits stroke-width.
type Paint struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	DashArray   []float64
}

// Group is a container with an optional class and translation.
type Group struct {
	Class     string
	Translate *geom.Point
	Children  []Element
}

// Append adds children to the group.
func (g *Group) Append(e ...Element) { g.Children = append(g.Children, e...) }

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height Length
	Paint
}

// Line is a single straight stroke.
type Line struct {
	X1, Y1, X2, Y2 Length
	Paint
}

// Path draws a geom.Path.
type Path struct {
	Data geom.Path
	Paint
}

// Polygon is a closed shape through Points.
type Polygon struct {
	Points []geom.Point
	Paint
}

// NewPolygon builds a polygon from flat x,y coordinates. An odd number of
// coordinates is a caller bug and panics.
func NewPolygon(paint Paint, coords ...float64) *Polygon {
	if len(coords)%2 != 0 {
		panic(fmt.Sprintf("scene: polygon needs an even number of coordinates, got %d", len(coords)))
	}
	pts := make([]geom.Point, len(coords)/2)
	for i := range pts {
		pts[i] = geom.Pt(coords[2*i], coords[2*i+1])
	}
	return &Polygon{Points: pts, Paint: paint}
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
)

// Text is a run of text. Pos is the anchor point; DX and DY shift it.
// A non-zero TextLength stretches the run to that width.
type Text struct {
	Content      string
	Pos          *geom.Point
	DX, DY       Length
	Anchor       Anchor
	MiddleAlign  bool // vertically center on Pos instead of sitting on the baseline
	FontFamily   string
	FontSize     float64
	Fill         string
	TextLength   Length
	LengthAdjust bool // stretch glyphs as well as spacing
}

func (*Group) element()   {}
func (*Rect) element()    {}
func (*Line) element()    {}
func (*Path) element()    {}
func (*Polygon) element() {}
func (*Text) element()    {}
