// Package style maps graph stroke and fill attributes to drawing attributes.
//
// [DashArray] implements the dash table shared by every output format; the
// values are multiples of the stroke width:
//
//	solid      (no dash array)
//	dash       4 2
//	dot        1 2
//	dashdot    4 2 1 2
//	dashdotdot 4 2 1 2 1 2
//
// A stroke of kind none draws nothing at all; see [Visible].
package style

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/umlsvg/pkg/graph"
)

var dashPatterns = map[graph.StrokeKind][]float64{
	graph.StrokeDash:       {4, 2},
	graph.StrokeDot:        {1, 2},
	graph.StrokeDashdot:    {4, 2, 1, 2},
	graph.StrokeDashdotdot: {4, 2, 1, 2, 1, 2},
}

// DashArray returns the dash pattern for kind scaled by width.
// Solid and none return nil: neither emits a dash attribute.
func DashArray(kind graph.StrokeKind, width float64) []float64 {
	pattern, ok := dashPatterns[kind]
	if !ok {
		return nil
	}
	out := make([]float64, len(pattern))
	for i, v := range pattern {
		out[i] = v * width
	}
	return out
}

// Visible reports whether a stroke of this kind is drawn at all.
func Visible(kind graph.StrokeKind) bool { return kind != graph.StrokeNone }

// ParseColor resolves an SVG color value (#rgb, #rrggbb or a named color)
// to a color.Color. It returns false for "none", the empty string and
// unknown names.
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none":
		return nil, false
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(expandHex(s))
		if err != nil {
			return nil, false
		}
		return c, true
	}
	c, ok := colornames.Map[s]
	if !ok {
		return nil, false
	}
	return c, true
}

// expandHex turns the short #rgb form into #rrggbb.
func expandHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
