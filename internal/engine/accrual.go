package engine

import (
	"github.com/shopspring/decimal"
)

var (
	daysInYear = decimal.NewFromInt(365)
	hundred    = decimal.NewFromInt(100)
)

// Accrue computes simple interest on principal at the given annual percentage
// rate over the given number of days, on a fixed 365-day year:
//
//	interest = principal × (rate / 100) × (days / 365)
//
// A day count below 1 is treated as 1: a funded offer has always been funded
// for at least one day. The result is rounded half-up to 2 decimal places
// once, at the end of the chain, never at intermediate steps.
func Accrue(principal, annualRatePercent decimal.Decimal, days int) decimal.Decimal {
	if days < 1 {
		days = 1
	}
	interest := principal.
		Mul(annualRatePercent).
		Mul(decimal.NewFromInt(int64(days))).
		Div(hundred.Mul(daysInYear))
	return interest.Round(2)
}
