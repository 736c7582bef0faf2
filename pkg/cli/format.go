package cli

import (
	"fmt"
	"time"
)

// FormatDuration renders d compactly for terminal messages: "0.9s",
// "42s", "1m30s".
func FormatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	if d < time.Minute {
		return fmt.Sprintf("%gs", d.Seconds())
	}
	m := d / time.Minute
	s := (d - m*time.Minute).Seconds()
	return fmt.Sprintf("%dm%gs", m, s)
}
