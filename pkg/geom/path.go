package geom

import (
	"math"
	"strings"
)

// Op identifies the kind of a path command.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpCubic
	OpArc
)

// Command is a single path instruction. Which fields are meaningful
// depends on Op:
//
//	OpMove, OpLine: To
//	OpCubic:        C1, C2, To
//	OpArc:          Radius, Sweep, To (circular arc, small-arc flag unset)
type Command struct {
	Op     Op
	To     Point
	C1, C2 Point
	Radius float64
	Sweep  bool
}

// Path is an append-only sequence of drawing commands.
// The zero value is an empty path ready to use.
type Path struct {
	cmds []Command
}

func (p *Path) MoveTo(to Point) { p.cmds = append(p.cmds, Command{Op: OpMove, To: to}) }
func (p *Path) LineTo(to Point) { p.cmds = append(p.cmds, Command{Op: OpLine, To: to}) }

// CubicTo appends a cubic Bezier segment with control points c1 and c2.
func (p *Path) CubicTo(c1, c2, to Point) {
	p.cmds = append(p.cmds, Command{Op: OpCubic, C1: c1, C2: c2, To: to})
}

// ArcTo appends a circular arc of the given radius ending at to.
// Sweep selects the positive-angle (clockwise on screen) direction.
func (p *Path) ArcTo(radius float64, sweep bool, to Point) {
	p.cmds = append(p.cmds, Command{Op: OpArc, Radius: radius, Sweep: sweep, To: to})
}

// Commands returns the recorded commands. The slice must not be modified.
func (p Path) Commands() []Command { return p.cmds }

// Len returns the number of commands.
func (p Path) Len() int { return len(p.cmds) }

// Points returns the end point of every command in order.
func (p Path) Points() []Point {
	pts := make([]Point, len(p.cmds))
	for i, c := range p.cmds {
		pts[i] = c.To
	}
	return pts
}

// String serializes the path as SVG path data, e.g. "M50,0 L250,0".
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case OpMove:
			b.WriteString("M" + c.To.String())
		case OpLine:
			b.WriteString("L" + c.To.String())
		case OpCubic:
			b.WriteString("C" + c.C1.String() + " " + c.C2.String() + " " + c.To.String())
		case OpArc:
			r := FormatFloat(c.Radius)
			sweep := "0"
			if c.Sweep {
				sweep = "1"
			}
			b.WriteString("A" + r + "," + r + " 0 0 " + sweep + " " + c.To.String())
		}
	}
	return b.String()
}

// ArcCenter converts an SVG endpoint arc (small-arc, circular) from p0 to p1
// into center parameterization. It returns the center, the effective radius
// and the start and end angles in radians. When the radius is too small to
// span the chord it is scaled up, as SVG renderers do.
func ArcCenter(p0, p1 Point, radius float64, sweep bool) (center Point, r, start, end float64) {
	r = math.Abs(radius)
	chord := p1.Sub(p0)
	half := chord.Length() / 2
	if half == 0 || r == 0 {
		return p0, 0, 0, 0
	}
	if r < half {
		r = half
	}
	mid := p0.Mid(p1)
	h := math.Sqrt(math.Max(0, r*r-half*half))
	// Perpendicular toward the center for a small arc in the sweep direction.
	n := chord.Normalize().Perp()
	if !sweep {
		n = n.Mul(-1)
	}
	center = mid.Add(n.Mul(h))
	start = math.Atan2(p0.Y-center.Y, p0.X-center.X)
	end = math.Atan2(p1.Y-center.Y, p1.X-center.X)
	if sweep && end < start {
		end += 2 * math.Pi
	}
	if !sweep && end > start {
		end -= 2 * math.Pi
	}
	return center, r, start, end
}
