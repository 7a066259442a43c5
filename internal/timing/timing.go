// Package timing formats durations for processing logs.
package timing

import (
	"fmt"
	"time"
)

// FormatClock renders a duration as hh:mm:ss.
func FormatClock(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
