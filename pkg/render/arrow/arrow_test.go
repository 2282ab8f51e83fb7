package arrow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

var box = geom.RectFromCenter(geom.Pt(300, 0), 100, 40)

func assertPoint(t *testing.T, want, got geom.Point, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msgAndArgs...)
}

func TestBoundary(t *testing.T) {
	tests := []struct {
		name  string
		start geom.Point
		want  geom.Point
	}{
		{"FromLeft", geom.Pt(0, 0), geom.Pt(250, 0)},
		{"FromRight", geom.Pt(600, 0), geom.Pt(350, 0)},
		{"FromAbove", geom.Pt(300, -200), geom.Pt(300, -20)},
		{"FromBelow", geom.Pt(300, 200), geom.Pt(300, 20)},
		{"ShallowDiagonal", geom.Pt(0, -30), geom.Pt(250, -5)},
		{"SteepFallsBackToTop", geom.Pt(280, -200), geom.Pt(298, -20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Boundary(tt.start, geom.Pt(300, 0), box)
			assertPoint(t, tt.want, got)
			assert.True(t, box.Inflate(1e-9).Contains(got), "on the boundary")
		})
	}
}

func TestPlaceHorizontal(t *testing.T) {
	h := Place(geom.Pt(50, 0), geom.Pt(300, 0), box, 17.5)

	assertPoint(t, geom.Pt(250, 0), h.Tip)
	assertPoint(t, geom.Pt(250, 0), h.Polygon[0])
	assertPoint(t, geom.Pt(232.5, 4.375), h.Polygon[1])
	assertPoint(t, geom.Pt(232.5, -4.375), h.Polygon[2])
	assert.Len(t, h.Coords(), 6)
}

func TestPlaceVertical(t *testing.T) {
	h := Place(geom.Pt(300, -200), geom.Pt(300, 0), box, 8)

	assertPoint(t, geom.Pt(300, -20), h.Tip)
	assertPoint(t, geom.Pt(298, -28), h.Polygon[1])
	assertPoint(t, geom.Pt(302, -28), h.Polygon[2])

	up := Place(geom.Pt(300, 200), geom.Pt(300, 0), box, 8)
	assertPoint(t, geom.Pt(300, 20), up.Tip)
	assertPoint(t, geom.Pt(298, 28), up.Polygon[1])
}

func TestPlaceGeometry(t *testing.T) {
	starts := []geom.Point{
		geom.Pt(0, -30), geom.Pt(280, -200), geom.Pt(500, 300), geom.Pt(100, 90),
	}
	const size = 12.0
	for _, s := range starts {
		h := Place(s, geom.Pt(300, 0), box, size)
		base := h.Polygon[1].Mid(h.Polygon[2])

		assert.InDelta(t, size, h.Tip.Distance(base), 1e-9, "start %v", s)
		assert.InDelta(t, size/2, h.Polygon[1].Distance(h.Polygon[2]), 1e-9, "start %v", s)

		// The base lies between start and tip, on the approach line.
		approach := h.Tip.Sub(s).Normalize()
		toBase := h.Tip.Sub(base).Normalize()
		assert.InDelta(t, 1, approach.Dot(toBase), 1e-9, "start %v", s)
	}
}

func TestBoundaryDegenerate(t *testing.T) {
	// Horizontal approach that misses the vertical side cannot fall back.
	end := geom.Pt(240, 30)
	got := Boundary(geom.Pt(0, 30), end, box)
	assert.Equal(t, end, got)
	assert.False(t, math.IsNaN(got.X))
}
