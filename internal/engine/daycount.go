package engine

import "time"

const day = 24 * time.Hour

// DaysElapsed returns the number of whole days between start and end,
// truncating toward zero. The sign is preserved: callers that need a signed
// duration (interest accrual) get negative values back rather than a
// silently clamped zero.
func DaysElapsed(start, end time.Time) int {
	return int(end.Sub(start) / day)
}

// DaysRemaining returns the number of whole days from asOf until due,
// rounding partial days up, clamped at zero. This is the display-side
// counterpart of DaysElapsed: "due in N days" never goes negative for an
// overdue invoice.
func DaysRemaining(asOf, due time.Time) int {
	diff := due.Sub(asOf)
	days := int(diff / day)
	if diff%day > 0 {
		days++
	}
	if days < 0 {
		return 0
	}
	return days
}
