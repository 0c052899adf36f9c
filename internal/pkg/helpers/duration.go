// Package helpers contains small shared utilities
package helpers

import "time"

// ParseDuration parses a duration string and falls back to a default when the
// string is empty or malformed
func ParseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
