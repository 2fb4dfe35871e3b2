package planner

import (
	"fmt"
	"time"
)

// FormatElapsed renders seconds as HH:MM:SS. Hours are not capped at 24.
func FormatElapsed(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDuration renders a minute count as "2h", "45m" or "2h 45m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatHours renders seconds as fractional hours, e.g. "1.5h".
func FormatHours(secs int64) string {
	return fmt.Sprintf("%.1fh", float64(secs)/3600)
}

// TimeUntilDue labels the time left before due using the coarsest non-zero
// unit among days, hours and minutes. Past due dates read "Overdue".
func TimeUntilDue(due, now time.Time) string {
	diff := due.Sub(now)
	if diff < 0 {
		return "Overdue"
	}

	day := 24 * time.Hour
	if days := int(diff / day); days > 0 {
		return plural(days, "day")
	}
	if hours := int(diff % day / time.Hour); hours > 0 {
		return plural(hours, "hour")
	}
	return plural(int(diff%time.Hour/time.Minute), "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
