package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

var (
	boxA = geom.RectFromCenter(geom.Pt(0, 0), 100, 40)
	boxB = geom.RectFromCenter(geom.Pt(300, 0), 100, 40)
)

func TestCovered(t *testing.T) {
	tests := []struct {
		name   string
		p      geom.Point
		margin float64
		want   bool
	}{
		{"Center", geom.Pt(0, 0), 0, true},
		{"Edge", geom.Pt(50, 20), 0, true},
		{"JustOutside", geom.Pt(50.5, 0), 0, false},
		{"InMargin", geom.Pt(50.5, 0), 1, true},
		{"Corner", geom.Pt(51, 21), 1, true},
		{"Beyond", geom.Pt(0, 25), 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Covered(tt.p, boxA, tt.margin))
		})
	}
}

func TestCoveredMonotonic(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0), geom.Pt(55, 0), geom.Pt(60, 25), geom.Pt(-70, -40), geom.Pt(0, 21),
	}
	margins := []float64{0, 0.5, 1, 5, 10, 30}
	for _, p := range points {
		for i, m1 := range margins {
			if !Covered(p, boxA, m1) {
				continue
			}
			for _, m2 := range margins[i:] {
				assert.True(t, Covered(p, boxA, m2), "p=%v m1=%v m2=%v", p, m1, m2)
			}
		}
	}
}

func TestArrowSize(t *testing.T) {
	assert.InDelta(t, 17.5, ArrowSize(1, boxB, boxA), 1e-12)
	assert.InDelta(t, 17.5, ArrowSize(0, boxB, boxA), 1e-12)

	small := geom.RectFromCenter(geom.Pt(0, 0), 4, 4)
	assert.InDelta(t, 3, ArrowSize(0, small, small), 1e-12, "defaults to stroke width 1")
	assert.InDelta(t, 6, ArrowSize(2, small, small), 1e-12)
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		path   []geom.Point
		source End
		target End
		want   []geom.Point
	}{
		{
			name:   "Straight",
			path:   []geom.Point{geom.Pt(0, 0), geom.Pt(300, 0)},
			source: End{Box: boxA},
			target: End{Box: boxB},
			want:   []geom.Point{geom.Pt(0, 0), geom.Pt(300, 0)},
		},
		{
			name:   "WithBends",
			path:   []geom.Point{geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(300, 100), geom.Pt(300, 0)},
			source: End{Box: boxA},
			target: End{Box: boxB, Margin: 17.5},
			want:   []geom.Point{geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(300, 100), geom.Pt(300, 0)},
		},
		{
			name:   "BendInsideSource",
			path:   []geom.Point{geom.Pt(0, 0), geom.Pt(10, 5), geom.Pt(300, 0)},
			source: End{Box: boxA},
			target: End{Box: boxB},
			want:   []geom.Point{geom.Pt(10, 5), geom.Pt(300, 0)},
		},
		{
			name:   "Overlapping",
			path:   []geom.Point{geom.Pt(0, 0), geom.Pt(20, 0)},
			source: End{Box: boxA},
			target: End{Box: geom.RectFromCenter(geom.Pt(20, 0), 100, 40)},
			want:   nil,
		},
		{
			name:   "MarginSwallowsGap",
			path:   []geom.Point{geom.Pt(0, 0), geom.Pt(120, 0)},
			source: End{Box: boxA},
			target: End{Box: geom.RectFromCenter(geom.Pt(120, 0), 30, 30), Margin: 120},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.path, tt.source, tt.target))
		})
	}
}
