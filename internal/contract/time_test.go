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
			name:     "valid minutes",
			input:    "45 minutes ago",
			expected: fixedNow.Add(-45 * time.Minute),
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
				assert.Equal(t, tt.expected, tResult)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	localNow := fixedNow.In(berlin)

	tests := []struct {
		name      string
		input     string
		now       time.Time
		want      time.Time
		expectErr bool
	}{
		{"rfc3339", "2025-10-01T08:30:00Z", fixedNow, time.Date(2025, 10, 1, 8, 30, 0, 0, time.UTC), false},
		{"date only uses location of now", "2025-10-01", localNow, time.Date(2025, 10, 1, 0, 0, 0, 0, berlin), false},
		{"relative", "2 days ago", fixedNow, fixedNow.AddDate(0, 0, -2), false},
		{"surrounding space", "  2025-10-01  ", fixedNow, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "yesterday", fixedNow, time.Time{}, true},
		{"empty", "", fixedNow, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.now)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}
