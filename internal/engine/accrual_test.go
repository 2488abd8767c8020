package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccrue(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		days      int
		expected  decimal.Decimal
	}{
		{
			name:      "one lakh at 12 percent for 90 days",
			principal: decimal.NewFromInt(100000),
			rate:      decimal.NewFromInt(12),
			days:      90,
			expected:  decimal.RequireFromString("2958.90"), // 100000 * 0.12 * 90/365
		},
		{
			name:      "fifty thousand at 12 percent for 90 days",
			principal: decimal.NewFromInt(50000),
			rate:      decimal.NewFromInt(12),
			days:      90,
			expected:  decimal.RequireFromString("1479.45"),
		},
		{
			name:      "full year at 10 percent",
			principal: decimal.NewFromInt(10000),
			rate:      decimal.NewFromInt(10),
			days:      365,
			expected:  decimal.NewFromInt(1000),
		},
		{
			name:      "zero principal",
			principal: decimal.Zero,
			rate:      decimal.NewFromInt(12),
			days:      30,
			expected:  decimal.Zero,
		},
		{
			name:      "zero rate",
			principal: decimal.NewFromInt(100000),
			rate:      decimal.Zero,
			days:      30,
			expected:  decimal.Zero,
		},
		{
			name:      "exact half paisa rounds up",
			principal: decimal.RequireFromString("36.5"),
			rate:      decimal.NewFromInt(5),
			days:      1,
			expected:  decimal.RequireFromString("0.01"), // 0.005 rounds half-up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Accrue(tt.principal, tt.rate, tt.days)
			assert.True(t, result.Equal(tt.expected),
				"expected %v, got %v", tt.expected, result)
		})
	}
}

func TestAccrue_DayFloor(t *testing.T) {
	principal := decimal.NewFromInt(10000)
	rate := decimal.NewFromInt(10)

	oneDay := Accrue(principal, rate, 1)

	// Zero and negative day counts accrue as one day: a funded offer has
	// always been funded for at least one day.
	assert.True(t, Accrue(principal, rate, 0).Equal(oneDay))
	assert.True(t, Accrue(principal, rate, -7).Equal(oneDay))
}

func TestAccrue_NonNegative(t *testing.T) {
	principals := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(100000)}
	rates := []decimal.Decimal{decimal.Zero, decimal.RequireFromString("0.5"), decimal.NewFromInt(25)}
	days := []int{1, 45, 365, 730}

	for _, p := range principals {
		for _, r := range rates {
			for _, d := range days {
				assert.False(t, Accrue(p, r, d).IsNegative(),
					"accrue(%v, %v, %d) went negative", p, r, d)
			}
		}
	}
}
