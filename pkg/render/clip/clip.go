// Package clip trims edge polylines to the part visible outside their end nodes.
//
// An edge is routed from the source center through its bends to the target
// center. Each end node covers a region: its rectangle grown by a margin that
// leaves room for an arrowhead (zero when that end has none). [Visible] walks
// the polyline and keeps the points from the first step leaving the source
// region up to the first step entering the target region.
package clip

import (
	"math"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

// Covered reports whether p lies in box grown by margin on every side.
// It is monotonic in margin.
func Covered(p geom.Point, box geom.Rect, margin float64) bool {
	return box.Inflate(margin).Contains(p)
}

// ArrowSize returns the arrowhead length at an end node: three stroke widths,
// or a sixteenth of the combined width and height of both end nodes,
// whichever is larger. A non-positive strokeWidth counts as 1.
func ArrowSize(strokeWidth float64, end, opposite geom.Rect) float64 {
	if strokeWidth <= 0 {
		strokeWidth = 1
	}
	sum := end.Width() + end.Height() + opposite.Width() + opposite.Height()
	return math.Max(strokeWidth*3, sum/16)
}

// End is one endpoint's coverage region.
type End struct {
	Box    geom.Rect
	Margin float64
}

func (e End) covers(p geom.Point) bool { return Covered(p, e.Box, e.Margin) }

// Visible returns the visible sub-sequence of path. The first point is the
// inner end of the step leaving the source region and the last point is the
// inner end of the step entering the target region; callers move both onto
// the node boundaries. Fewer than two points means the end regions overlap
// and the edge cannot be drawn.
func Visible(path []geom.Point, source, target End) []geom.Point {
	var out []geom.Point
	drawing := false
	for i := 0; i+1 < len(path); i++ {
		p1, p2 := path[i], path[i+1]

		if source.covers(p1) && !source.covers(p2) {
			drawing = true
		}
		entering := !target.covers(p1) && target.covers(p2)

		if drawing {
			out = append(out, p1)
		}
		if entering {
			out = append(out, p2)
			break
		}
	}
	if len(out) < 2 {
		return nil
	}
	return out
}
