package schedule

import (
	"fmt"
	"time"

	"paysched/internal/domain/payrolls"
)

// NextNominalDate computes the next nominal period date after prev for
// the given cycle. The first period of a schedule uses the caller's
// anchor directly; this is invoked from the second period onward.
// Pure calendar math, no I/O.
func NextNominalDate(prev time.Time, cycle, dateType string, dateValue int) (time.Time, error) {
	switch cycle {
	case payrolls.CycleWeekly:
		return prev.AddDate(0, 0, 7), nil
	case payrolls.CycleFortnightly:
		return prev.AddDate(0, 0, 14), nil
	case payrolls.CycleMonthlySpecificDay:
		if dateValue < 1 || dateValue > 31 {
			return time.Time{}, fmt.Errorf("%w: dateValue %d out of range for %s", payrolls.ErrInvalidConfiguration, dateValue, cycle)
		}
		return addMonthsOnDay(prev, 1, dateValue), nil
	case payrolls.CycleMonthlyLastDay:
		return addMonthsOnDay(prev, 1, 31), nil
	case payrolls.CycleQuarterly:
		return addMonthsOnDay(prev, 3, prev.Day()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown cycle %q", payrolls.ErrInvalidConfiguration, cycle)
	}
}

// addMonthsOnDay advances by whole months and lands on the requested
// day of the target month, clamped to that month's last day. Plain
// AddDate is unsuitable here: Jan 31 + 1 month would roll over into
// March.
func addMonthsOnDay(t time.Time, months, day int) time.Time {
	year, month := t.Year(), int(t.Month())+months
	for month > 12 {
		month -= 12
		year++
	}
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
