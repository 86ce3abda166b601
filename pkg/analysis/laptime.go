package analysis

import (
	"fmt"
	"time"
)

// NoTime is used wherever a lap has no representative time.
const NoTime = "No Time"

// FormatLapTime renders a lap time as M:SS.mmm. Minutes are not
// padded, sub-millisecond precision is truncated. A nil value renders
// as "No Time".
func FormatLapTime(t *time.Duration) string {
	if t == nil {
		return NoTime
	}
	total := *t
	if total < 0 {
		total = 0
	}
	minutes := total / time.Minute
	rem := total % time.Minute
	seconds := rem / time.Second
	millis := rem % time.Second / time.Millisecond
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}
