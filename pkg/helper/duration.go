package helper

import (
	"fmt"
	"math"
)

// FormatDuration renders provider-reported seconds as "MM:SS", or "HH:MM:SS"
// once the clip reaches an hour. Fractions are truncated; negative and NaN
// inputs render as "00:00".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
