package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAvailability(t *testing.T) {
	day := time.Date(2026, time.March, 14, 22, 45, 13, 0, time.UTC)

	start, end, err := ParseAvailability("09:00 - 17:00", day)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 14, 17, 0, 0, 0, time.UTC), end)
}

func TestParseAvailabilityCompactSpacing(t *testing.T) {
	day := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	start, end, err := ParseAvailability("08:30-12:15", day)
	require.NoError(t, err)

	assert.Equal(t, 8, start.Hour())
	assert.Equal(t, 30, start.Minute())
	assert.Equal(t, 12, end.Hour())
	assert.Equal(t, 15, end.Minute())
}

func TestParseAvailabilityInvalid(t *testing.T) {
	day := time.Now()

	tests := []struct {
		name   string
		window string
	}{
		{"empty", ""},
		{"missing separator", "09:00 17:00"},
		{"too many parts", "09:00 - 12:00 - 17:00"},
		{"not a clock", "morning - evening"},
		{"end before start", "17:00 - 09:00"},
		{"zero length window", "09:00 - 09:00"},
		{"out of range hour", "25:00 - 26:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseAvailability(tt.window, day)
			assert.ErrorIs(t, err, ErrInvalidAvailability)
		})
	}
}
