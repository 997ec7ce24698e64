package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}

func TestAcademicYear(t *testing.T) {
	assert.Equal(t, "2025-2026", AcademicYear(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-2025", AcademicYear(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-2026", AcademicYear(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
}
