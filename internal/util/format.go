package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatRate formats count events over d as a per-second rate with one
// decimal. Spans under a second report 0.0/s.
func FormatRate(count int, d time.Duration) string {
	if d < time.Second || count <= 0 {
		return "0.0/s"
	}
	return fmt.Sprintf("%.1f/s", float64(count)/d.Seconds())
}
