package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetrack/duetrack/internal/model"
)

// minutesFromNow returns how many simplified-calendar minutes d lies past now.
func minutesFromNow(d model.Datetime) int64 {
	return d.TotalMinutes() - model.Now().TotalMinutes()
}

func TestParseDueCanonical(t *testing.T) {
	due, err := ParseDue("2025-01-05 09:00")
	require.NoError(t, err)
	assert.Equal(t, model.NewDatetime(2025, 1, 5, 9, 0), due)
	assert.Equal(t, "2025-01-05 09:00", due.String())
}

func TestParseDueEmpty(t *testing.T) {
	_, err := ParseDue("")
	assert.Error(t, err)
	_, err = ParseDue("   ")
	assert.Error(t, err)
}

func TestParseDueRelative(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minutes int64
	}{
		{"plus_30_minutes", "+30m", 30},
		{"plus_3_hours", "+3h", 180},
		{"plus_2_days", "+2d", 2 * 24 * 60},
		{"plus_1_week", "+1w", 7 * 24 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := ParseDue(tt.input)
			require.NoError(t, err)
			// Relative offsets stay within one true calendar month, so the
			// simplified projection matches real elapsed minutes here.
			got := minutesFromNow(due)
			assert.InDelta(t, tt.minutes, got, 2,
				"%s should land about %d minutes out, got %d", tt.input, tt.minutes, got)
		})
	}
}

func TestParseDueRelativeInvalid(t *testing.T) {
	for _, input := range []string{"+0m", "+m", "+5x", "+-3h"} {
		_, err := ParseDue(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestParseDueNaturalLanguage(t *testing.T) {
	due, err := ParseDue("in 2 hours")
	require.NoError(t, err)
	assert.InDelta(t, 120, minutesFromNow(due), 5)
}

func TestParseDueNaturalLanguageAbsolute(t *testing.T) {
	due, err := ParseDue("january 5 2030 9am")
	require.NoError(t, err)
	assert.Equal(t, uint16(2030), due.Year)
	assert.Equal(t, uint8(1), due.Month)
	assert.Equal(t, uint8(5), due.Day)
	assert.Equal(t, uint8(9), due.Hour)
}

func TestParseDueGarbage(t *testing.T) {
	_, err := ParseDue("certainly not a date")
	assert.Error(t, err)
}

func TestParseDueNormalizesToMinutePrecision(t *testing.T) {
	due, err := ParseDue("+1h")
	require.NoError(t, err)
	reparsed, err := model.ParseDatetime(due.String())
	require.NoError(t, err)
	assert.Equal(t, due, reparsed)
}
