package geom

import "math"

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectFromCenter builds the rectangle of size w×h centered on c.
func RectFromCenter(c Point, w, h float64) Rect {
	return Rect{Min: Pt(c.X-w/2, c.Y-h/2), Max: Pt(c.X+w/2, c.Y+h/2)}
}

// RectFromOrigin builds the rectangle with top-left corner o and size w×h.
func RectFromOrigin(o Point, w, h float64) Rect {
	return Rect{Min: o, Max: Pt(o.X+w, o.Y+h)}
}

// EmptyRect returns the identity element for Union.
func EmptyRect() Rect {
	return Rect{
		Min: Pt(math.Inf(1), math.Inf(1)),
		Max: Pt(math.Inf(-1), math.Inf(-1)),
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Point   { return r.Min.Mid(r.Max) }

// IsEmpty reports whether r encloses no points.
func (r Rect) IsEmpty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

// Inflate grows r by m on every side. A negative m shrinks it.
func (r Rect) Inflate(m float64) Rect {
	return Rect{Min: Pt(r.Min.X-m, r.Min.Y-m), Max: Pt(r.Max.X+m, r.Max.Y+m)}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Union returns the smallest rectangle enclosing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		Min: Pt(math.Min(r.Min.X, s.Min.X), math.Min(r.Min.Y, s.Min.Y)),
		Max: Pt(math.Max(r.Max.X, s.Max.X), math.Max(r.Max.Y, s.Max.Y)),
	}
}

// Extend returns the smallest rectangle enclosing r and p.
func (r Rect) Extend(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}
