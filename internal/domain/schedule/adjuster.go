package schedule

import (
	"fmt"
	"time"

	"paysched/internal/domain/calendar"
)

// Adjust moves a nominal date onto a valid business day. It walks one
// calendar day at a time, backward for the previous-business-day rule
// and forward for next, until the date is neither a weekend nor in the
// holiday set. The walk is bounded; exceeding it means the holiday
// data is degenerate and the batch must fail rather than guess.
func Adjust(nominal time.Time, rule string, holidays calendar.Set) (time.Time, error) {
	if rule == RuleNoAdjustment {
		return nominal, nil
	}

	var step int
	switch rule {
	case RulePreviousBusinessDay:
		step = -1
	case RuleNextBusinessDay:
		step = 1
	default:
		return time.Time{}, fmt.Errorf("%w: unknown adjustment rule %q", ErrGenerationFailed, rule)
	}

	adjusted := nominal
	for i := 0; i <= maxAdjustmentSteps; i++ {
		if isBusinessDay(adjusted, holidays) {
			return adjusted, nil
		}
		adjusted = adjusted.AddDate(0, 0, step)
	}
	return time.Time{}, fmt.Errorf("%w: no business day within %d days of %s", ErrGenerationFailed, maxAdjustmentSteps, calendar.DayKey(nominal))
}

// ProcessingDate derives the date payroll processing must complete by:
// the adjusted EFT date minus the lead time in calendar days, itself
// re-adjusted since it may land on a weekend or holiday of its own.
func ProcessingDate(adjustedEFT time.Time, leadDays int, rule string, holidays calendar.Set) (time.Time, error) {
	nominal := adjustedEFT.AddDate(0, 0, -leadDays)
	return Adjust(nominal, rule, holidays)
}

func isBusinessDay(t time.Time, holidays calendar.Set) bool {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !holidays.Contains(t)
}
