package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Time-of-day pattern, 24h "HH:MM"
	TimeOfDayPattern = `^([01]\d|2[0-3]):([0-5]\d)$`

	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Day-of-week bounds (0 = Sunday .. 6 = Saturday)
	DayOfWeekMin = 0
	DayOfWeekMax = 6

	// Review rating bounds
	RatingMin = 1
	RatingMax = 5
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	TimeOfDay *regexp.Regexp
	Email     *regexp.Regexp
}{
	TimeOfDay: regexp.MustCompile(TimeOfDayPattern),
	Email:     regexp.MustCompile(EmailPattern),
}

// IsTimeOfDay reports whether s is a valid "HH:MM" time string.
func IsTimeOfDay(s string) bool {
	return CompiledPatterns.TimeOfDay.MatchString(s)
}
