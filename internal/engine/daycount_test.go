package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysElapsed(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "ninety days",
			start:    base,
			end:      base.AddDate(0, 0, 90),
			expected: 90,
		},
		{
			name:     "same instant",
			start:    base,
			end:      base,
			expected: 0,
		},
		{
			name:     "partial day truncates",
			start:    base,
			end:      base.Add(12 * time.Hour),
			expected: 0,
		},
		{
			name:     "one and a half days truncates",
			start:    base,
			end:      base.Add(36 * time.Hour),
			expected: 1,
		},
		{
			name:     "end before start keeps sign",
			start:    base,
			end:      base.AddDate(0, 0, -3),
			expected: -3,
		},
		{
			name:     "negative partial day truncates toward zero",
			start:    base,
			end:      base.Add(-36 * time.Hour),
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysElapsed(tt.start, tt.end))
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		asOf     time.Time
		due      time.Time
		expected int
	}{
		{
			name:     "ninety days out",
			asOf:     base,
			due:      base.AddDate(0, 0, 90),
			expected: 90,
		},
		{
			name:     "partial day rounds up",
			asOf:     base,
			due:      base.Add(12 * time.Hour),
			expected: 1,
		},
		{
			name:     "due now",
			asOf:     base,
			due:      base,
			expected: 0,
		},
		{
			name:     "overdue clamps to zero",
			asOf:     base,
			due:      base.AddDate(0, 0, -5),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysRemaining(tt.asOf, tt.due))
		})
	}
}
