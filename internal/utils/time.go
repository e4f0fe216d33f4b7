package utils

import (
	"fmt"
	"time"
)

// FileTimestamp formats a time as YYYYMMDD_HHMMSS for output file names
func FileTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// FormatSeconds formats a duration as seconds with 2 decimal places
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}

// FormatISO formats a time as an ISO-8601 string in UTC
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
