package models

import (
	"time"
)

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}

// TimePtr returns a pointer to t, for nullable timestamp columns
func TimePtr(t time.Time) *time.Time {
	return &t
}

// FormatTime formats a time.Time according to RFC3339
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
