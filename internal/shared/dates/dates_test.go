package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexible_FrenchMonthAbbreviations(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		year     int
		expected time.Time
	}{
		{
			name:     "august with circumflex accent",
			raw:      "04-août",
			year:     2024,
			expected: time.Date(2024, time.August, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "august without accent",
			raw:      "04-aout",
			year:     2024,
			expected: time.Date(2024, time.August, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "february with accent uppercase",
			raw:      "15-Févr",
			year:     2023,
			expected: time.Date(2023, time.February, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "december with trailing dot",
			raw:      "1-déc.",
			year:     2024,
			expected: time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "full month name resolves by prefix",
			raw:      "25 janvier",
			year:     2024,
			expected: time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexible(tt.raw, tt.year)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFlexible_NumericFormats(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		year     int
		expected time.Time
	}{
		{
			name:     "day month with fallback year",
			raw:      "15/03",
			year:     2024,
			expected: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "day month dashed",
			raw:      "7-11",
			year:     2025,
			expected: time.Date(2025, time.November, 7, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "two digit year without fallback",
			raw:      "15/03/24",
			year:     0,
			expected: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "four digit year",
			raw:      "01-09-2023",
			year:     2024,
			expected: time.Date(2023, time.September, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexible(tt.raw, tt.year)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFlexible_ExcelSerial(t *testing.T) {
	// Serial 45385 is 2024-04-03 in the 1900 date system.
	got, ok := ParseFlexible("45385", 2020)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.April, 3, 12, 0, 0, 0, time.UTC), got)
}

func TestParseFlexible_GenericFallbackOverridesYear(t *testing.T) {
	got, ok := ParseFlexible("2019-06-21", 2024)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC), got)

	// Without a fallback year the parsed year is kept.
	got, ok = ParseFlexible("2019-06-21", 0)
	require.True(t, ok)
	assert.Equal(t, 2019, got.Year())
}

func TestParseFlexible_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		year int
	}{
		{"empty", "", 2024},
		{"garbage", "not a date", 2024},
		{"day rolls over", "31/02", 2024},
		{"month out of range", "10/13/2024", 0},
		{"unknown month token", "04-xyz", 2024},
		{"year-less without fallback", "15/03", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseFlexible(tt.raw, tt.year)
			assert.False(t, ok)
		})
	}
}

func TestDaysBetween_Ceiling(t *testing.T) {
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{"exact two days", base, base.AddDate(0, 0, 2), 2},
		{"two days three hours rounds up", base, base.Add(51 * time.Hour), 3},
		{"one hour rounds up to one day", base, base.Add(time.Hour), 1},
		{"same instant", base, base, 0},
		{"past is negative", base, base.Add(-36 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.from, tt.to))
		})
	}
}
