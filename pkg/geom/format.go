package geom

import (
	"math"
	"strconv"
)

// FormatFloat renders v rounded to two decimals without trailing zeros,
// so that 50 prints as "50" and 232.499999 prints as "232.5".
func FormatFloat(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
