// Package arrow places triangular arrowheads on node boundaries.
//
// Nodes are axis-aligned rectangles, so the point where an edge meets a node
// is found against one of two sides: first the vertical side the edge comes
// from, and if that intersection falls past a corner, the horizontal side.
package arrow

import (
	"github.com/matzehuels/umlsvg/pkg/geom"
)

// cornerSlack absorbs rounding when testing an intersection against the box.
const cornerSlack = 1e-9

// Head is an arrowhead anchored on a node boundary.
type Head struct {
	// Tip is the corrected end of the edge path, on the node boundary.
	Tip geom.Point
	// Polygon holds the tip followed by the two base corners.
	Polygon [3]geom.Point
}

// Coords flattens the polygon to x,y pairs.
func (h Head) Coords() []float64 {
	out := make([]float64, 0, 6)
	for _, p := range h.Polygon {
		out = append(out, p.X, p.Y)
	}
	return out
}

// Boundary returns where the line from start through end meets the border
// of box. Start lies outside the box and end at or inside it. If the
// intersection cannot be computed, end is returned unchanged.
func Boundary(start, end geom.Point, box geom.Rect) geom.Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	c := box.Center()
	hw, hh := box.Width()/2, box.Height()/2

	if dx == 0 {
		return geom.Pt(end.X, c.Y-hh*sign(dy))
	}

	slope := dy / dx
	x := c.X - hw*sign(dx)
	y := start.Y + (x-start.X)*slope

	if !box.Inflate(cornerSlack).Contains(geom.Pt(x, y)) {
		y = c.Y - hh*sign(dy)
		x = start.X + (y-start.Y)/slope
	}

	p := geom.Pt(x, y)
	if !p.IsFinite() {
		return end
	}
	return p
}

// Place computes the arrowhead for an edge arriving at box along the segment
// start→end. size is the distance from the tip to the base; the base is
// size/2 wide.
func Place(start, end geom.Point, box geom.Rect, size float64) Head {
	tip := Boundary(start, end, box)

	if end.X == start.X {
		s := sign(end.Y - start.Y)
		base := tip.Y - size*s
		return Head{
			Tip: tip,
			Polygon: [3]geom.Point{
				tip,
				geom.Pt(tip.X-size/4, base),
				geom.Pt(tip.X+size/4, base),
			},
		}
	}

	d := tip.Sub(start).Normalize()
	mid := tip.Sub(d.Mul(size))
	wing := d.Perp().Mul(size / 4)
	return Head{
		Tip:     tip,
		Polygon: [3]geom.Point{tip, mid.Add(wing), mid.Sub(wing)},
	}
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}
