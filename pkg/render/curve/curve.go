// Package curve turns a trimmed edge polyline into path data.
//
// Three strategies are available and chosen once per render by [New]:
//
//   - [Straight]: one line per polyline segment
//   - [Bezier]: cubic segments with tangent continuity through every bend
//   - [Rounded]: straight segments joined by circular fillets at each bend
//
// A curviness of zero always selects [Straight]. A two-point input produces
// a single line with every strategy.
package curve

import (
	"github.com/matzehuels/umlsvg/pkg/geom"
)

// Mode is the interpolation used when curviness is positive.
type Mode int

const (
	ModeRounded Mode = iota
	ModeBezier
)

func (m Mode) String() string {
	if m == ModeBezier {
		return "bezier"
	}
	return "rounded"
}

// Builder converts at least two points into a path.
type Builder interface {
	Build(points []geom.Point) geom.Path
}

// New selects the strategy for a render. Curviness is clamped to [0, 1].
func New(curviness float64, mode Mode) Builder {
	c := min(max(curviness, 0), 1)
	switch {
	case c == 0:
		return Straight{}
	case mode == ModeBezier:
		return Bezier{Curviness: c}
	default:
		return Rounded{Curviness: c}
	}
}

// Straight connects consecutive points with lines.
type Straight struct{}

func (Straight) Build(pts []geom.Point) geom.Path {
	var p geom.Path
	if len(pts) == 0 {
		return p
	}
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	return p
}

// Bezier threads cubic segments through the points. At each interior point
// the tangent is pulled toward the chord of its neighbours by Curviness.
type Bezier struct {
	Curviness float64
}

func (b Bezier) Build(pts []geom.Point) geom.Path {
	if len(pts) < 3 {
		return Straight{}.Build(pts)
	}
	c := b.Curviness

	var p geom.Path
	p.MoveTo(pts[0])
	last := pts[0].Mid(pts[1])
	for i := 1; i+1 < len(pts); i++ {
		p1, p2, p3 := pts[i-1], pts[i], pts[i+1]
		delta := p2.Sub(p1.Mid(p3))
		in := p1.Add(delta.Mul(c)).Add(p2.Sub(p1).Mul(1 - c))
		out := p3.Add(delta.Mul(c)).Add(p2.Sub(p3).Mul(1 - c))
		p.CubicTo(last, in, p2)
		last = out
	}
	n := len(pts)
	p.CubicTo(last, pts[n-2].Mid(pts[n-1]), pts[n-1])
	return p
}

// Rounded draws straight runs and replaces every bend with a circular arc
// whose legs are Curviness/2 of the shorter adjacent segment.
type Rounded struct {
	Curviness float64
}

func (r Rounded) Build(pts []geom.Point) geom.Path {
	if len(pts) < 3 {
		return Straight{}.Build(pts)
	}
	c := r.Curviness

	var p geom.Path
	p.MoveTo(pts[0])
	for i := 1; i+1 < len(pts); i++ {
		p1, p2, p3 := pts[i-1], pts[i], pts[i+1]
		v1, v2 := p1.Sub(p2), p3.Sub(p2)
		leg := min(v1.Length(), v2.Length()) * c / 2
		if leg == 0 {
			p.LineTo(p2)
			continue
		}
		a := p2.Add(v1.Normalize().Mul(leg))
		b := p2.Add(v2.Normalize().Mul(leg))
		sweep := p2.Sub(p1).Cross(p3.Sub(p1)) > 0
		p.LineTo(a)
		p.ArcTo(leg, sweep, b)
	}
	p.LineTo(pts[len(pts)-1])
	return p
}
