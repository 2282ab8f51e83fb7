package graph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

// =============================================================================
// Stroke
// =============================================================================

// StrokeKind selects how a line is drawn.
type StrokeKind int

// The zero value is StrokeSolid so that an unset kind draws a plain line.
const (
	StrokeSolid StrokeKind = iota
	StrokeNone
	StrokeDash
	StrokeDot
	StrokeDashdot
	StrokeDashdotdot
)

var strokeKindNames = map[StrokeKind]string{
	StrokeSolid:      "solid",
	StrokeNone:       "none",
	StrokeDash:       "dash",
	StrokeDot:        "dot",
	StrokeDashdot:    "dashdot",
	StrokeDashdotdot: "dashdotdot",
}

func (k StrokeKind) String() string {
	if s, ok := strokeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("StrokeKind(%d)", int(k))
}

// ParseStrokeKind parses a kind name. The empty string means solid.
func ParseStrokeKind(s string) (StrokeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StrokeSolid, nil
	}
	for k, name := range strokeKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown stroke kind %q", s)
}

func (k StrokeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *StrokeKind) UnmarshalText(b []byte) error {
	v, err := ParseStrokeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Stroke describes the outline of a shape or the line of an edge.
type Stroke struct {
	Kind  StrokeKind `json:"kind" bson:"kind"`
	Width float64    `json:"width,omitempty" bson:"width,omitempty"`
	Color string     `json:"color,omitempty" bson:"color,omitempty"`
}

// LineWidth returns the stroke width, treating unset widths as 1.
func (s Stroke) LineWidth() float64 {
	if s.Width <= 0 {
		return 1
	}
	return s.Width
}

// LineColor returns the stroke color, defaulting to black.
func (s Stroke) LineColor() string {
	if s.Color == "" {
		return DefaultColor
	}
	return s.Color
}

// DefaultColor is used wherever a color is required but none was given.
const DefaultColor = "#000000"

// Style is the fill and outline of a node or cluster rectangle.
// A Fill of "" or "none" leaves the shape unfilled.
type Style struct {
	Fill   string `json:"fill,omitempty" bson:"fill,omitempty"`
	Stroke Stroke `json:"stroke" bson:"stroke"`
}

// HasFill reports whether the style paints the interior.
func (s Style) HasFill() bool { return s.Fill != "" && s.Fill != "none" }

// =============================================================================
// Arrow
// =============================================================================

// ArrowType says at which ends of an edge arrowheads are drawn.
type ArrowType int

// ArrowUndefined defers to the graph: directed graphs get a target arrow.
const (
	ArrowUndefined ArrowType = iota
	ArrowNone
	ArrowFirst
	ArrowLast
	ArrowBoth
)

var arrowTypeNames = map[ArrowType]string{
	ArrowUndefined: "undefined",
	ArrowNone:      "none",
	ArrowFirst:     "first",
	ArrowLast:      "last",
	ArrowBoth:      "both",
}

func (a ArrowType) String() string {
	if s, ok := arrowTypeNames[a]; ok {
		return s
	}
	return fmt.Sprintf("ArrowType(%d)", int(a))
}

// ParseArrowType parses an arrow type name. The empty string means undefined.
func ParseArrowType(s string) (ArrowType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ArrowUndefined, nil
	}
	for a, name := range arrowTypeNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown arrow type %q", s)
}

func (a ArrowType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ArrowType) UnmarshalText(b []byte) error {
	v, err := ParseArrowType(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Ends resolves which ends carry an arrowhead. Explicit types ignore
// directed; only ArrowUndefined consults it.
func (a ArrowType) Ends(directed bool) (source, target bool) {
	switch a {
	case ArrowUndefined:
		return false, directed
	case ArrowFirst:
		return true, false
	case ArrowLast:
		return false, true
	case ArrowBoth:
		return true, true
	default:
		return false, false
	}
}

// =============================================================================
// Node, Edge, Cluster
// =============================================================================

// Node is a positioned rectangle. X and Y give its center.
type Node struct {
	ID     string   `json:"id" bson:"id"`
	X      float64  `json:"x" bson:"x"`
	Y      float64  `json:"y" bson:"y"`
	Width  float64  `json:"width" bson:"width"`
	Height float64  `json:"height" bson:"height"`
	Z      *float64 `json:"z,omitempty" bson:"z,omitempty"`
	Style  *Style   `json:"style,omitempty" bson:"style,omitempty"`
	Label  string   `json:"label,omitempty" bson:"label,omitempty"`
}

// Center returns the node's center point.
func (n Node) Center() geom.Point { return geom.Pt(n.X, n.Y) }

// Box returns the node's rectangle.
func (n Node) Box() geom.Rect { return geom.RectFromCenter(n.Center(), n.Width, n.Height) }

// Edge connects two nodes by id through an ordered list of bend points.
type Edge struct {
	ID     string       `json:"id,omitempty" bson:"id,omitempty"`
	Source string       `json:"source" bson:"source"`
	Target string       `json:"target" bson:"target"`
	Bends  []geom.Point `json:"bends,omitempty" bson:"bends,omitempty"`
	Arrow  ArrowType    `json:"arrow,omitempty" bson:"arrow,omitempty"`
	Stroke *Stroke      `json:"stroke,omitempty" bson:"stroke,omitempty"`
	Label  string       `json:"label,omitempty" bson:"label,omitempty"`
}

// Name identifies the edge in diagnostics.
func (e Edge) Name() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Source + "->" + e.Target
}

// Cluster is a container rectangle. X and Y give its top-left corner.
// Children index into Layout.Clusters. The root cluster is the top-level
// group and is never drawn itself.
type Cluster struct {
	ID       string   `json:"id,omitempty" bson:"id,omitempty"`
	X        float64  `json:"x" bson:"x"`
	Y        float64  `json:"y" bson:"y"`
	Width    float64  `json:"width" bson:"width"`
	Height   float64  `json:"height" bson:"height"`
	Style    Style    `json:"style" bson:"style"`
	Children []int    `json:"children,omitempty" bson:"children,omitempty"`
	Nodes    []string `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Root     bool     `json:"root,omitempty" bson:"root,omitempty"`
}

// Box returns the cluster rectangle.
func (c Cluster) Box() geom.Rect {
	return geom.RectFromOrigin(geom.Pt(c.X, c.Y), c.Width, c.Height)
}
