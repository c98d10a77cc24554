package matching

import (
	"fmt"
	"math"
)

// ConfidenceColor maps confidence to a hex color running red at 0 through
// orange at 0.5 to green at 1.
func ConfidenceColor(confidence float64) string {
	p := math.Max(0, math.Min(1, confidence))
	var r, g int
	if p <= 0.5 {
		t := p / 0.5
		r, g = 255, int(t*165)
	} else {
		t := (p - 0.5) / 0.5
		r, g = int(255*(1-t)), int(165+t*(255-165))
	}
	return fmt.Sprintf("#%02X%02X00", r, g)
}
