package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTimeUnit covers various valid and invalid cases.
func TestParseRelativeTimeUnit(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid plural months (mixed case)",
			input:    "3 MoNtHs AgO",
			expected: fixedNow.AddDate(0, -3, 0),
		},
		{
			name:     "valid singular week (capitalized)",
			input:    "1 Week Ago",
			expected: fixedNow.AddDate(0, 0, -7),
		},
		{
			name:     "valid 10 days (upper case)",
			input:    "10 DAYS AGO",
			expected: fixedNow.AddDate(0, 0, -10),
		},
		{
			name:     "valid hours",
			input:    "5 hours ago",
			expected: fixedNow.Add(-5 * time.Hour),
		},
		{
			name:        "invalid missing ago",
			input:       "2 years",
			expectError: true,
		},
		{
			name:        "invalid bad unit (decades)",
			input:       "4 decades ago",
			expectError: true,
		},
		{
			name:        "invalid non-numeric value",
			input:       "one year ago",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tResult, err := ParseRelativeTime(tt.input, fixedNow)

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, tResult, "Parsed time mismatch")
			}
		})
	}
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{"empty uses now", "", time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), false},
		{"iso date", "2024-06-15", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 truncated", "2024-02-29T18:45:00Z", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), false},
		{"relative", "2 months ago", time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "soon", time.Time{}, true},
		{"bad month", "2024-13-01", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnchor(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseEventDate(t *testing.T) {
	d, err := ParseEventDate("2024-05-31T14:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, time.May, 31, 12, 30, 0, 0, time.UTC)))

	d, err = ParseEventDate("2024-05-31 08:15:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 31, 8, 15, 0, 0, time.UTC), d)

	d, err = ParseEventDate(" 2024-05-31 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseEventDate("31/05/2024 08:15")
	assert.ErrorContains(t, err, "invalid event date")
}

func TestParseRecordDate(t *testing.T) {
	d, err := ParseRecordDate("2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 31, d.Day())

	d, err = ParseRecordDate(" 2023-12 ")
	require.NoError(t, err)
	assert.Equal(t, 2023, d.Year())
	assert.Equal(t, time.December, d.Month())

	_, err = ParseRecordDate("12/2023")
	assert.Error(t, err)
}

func TestClocks(t *testing.T) {
	assert.Equal(t, fixedNow, FixedClock{T: fixedNow}.Now())
	assert.WithinDuration(t, time.Now(), SystemClock{}.Now(), time.Minute)
}

func TestTruncateToDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2024, time.May, 31, 23, 30, 15, 99, loc)
	out := TruncateToDay(in)
	assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, loc), out)
	assert.Equal(t, loc, out.Location())

	anchor, err := ParseAnchor("2024-05-31T23:30:15+02:00", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, TruncateToDay(anchor), anchor)
	assert.Equal(t, 31, anchor.Day())
}
