// Package util holds display helpers shared by the CLI and the TUI.
package util

import (
	"fmt"
	"time"
)

// FormatBytes renders a size with binary units, e.g. "1.5 MB".
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration renders "45s", "5m10s" or "1h30m".
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		return fmt.Sprintf("%dm%ds", int(duration.Minutes()), int(duration.Seconds())%60)
	}

	return fmt.Sprintf("%dh%dm", int(duration.Hours()), int(duration.Minutes())%60)
}

// FormatRate renders the average throughput of a transfer.
func FormatRate(bytes int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}

	return FormatBytes(int64(float64(bytes)/elapsed.Seconds())) + "/s"
}

// FormatAge renders how long ago t was relative to now, falling back to the date after a week.
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}

	age := now.Sub(t)
	switch {
	case age < 0:
		return t.Format("2006-01-02")
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}

	return t.Format("2006-01-02")
}
