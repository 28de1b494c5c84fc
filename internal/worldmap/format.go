package worldmap

import (
	"fmt"
	"math"
)

// FormatCharges renders a charge tuple, or nothing at all when the maximum
// is not positive. "0 of 0 charges" is worse than silence.
func FormatCharges(left, max int) string {
	if max <= 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d charges", left, max)
}

// FormatPercent rounds a chance fraction to the nearest whole percent.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%d percent", int(math.Round(fraction*100)))
}
