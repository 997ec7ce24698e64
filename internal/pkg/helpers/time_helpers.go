package helpers

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Global logger: this runs while the configured logger may not exist yet.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// AcademicYear returns the academic year label ("2025-2026") that contains t.
// The academic year starts in July.
func AcademicYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.July {
		start--
	}
	return strconv.Itoa(start) + "-" + strconv.Itoa(start+1)
}
