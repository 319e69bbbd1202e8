package schedule

import (
	"fmt"
	"time"

	"paysched/internal/domain/calendar"
	"paysched/internal/domain/payrolls"
)

// Generate produces the ordered schedule for a payroll starting at
// anchor. The anchor itself is the first nominal date; subsequent
// periods step along nominal dates, never along adjusted ones, so a
// holiday roll never shifts the underlying cycle.
//
// Each candidate is computed before the bound check and an
// overshooting candidate is discarded, so the result never contains a
// date beyond the requested horizon. Any stepper or adjuster failure
// aborts the whole run; callers commit all rows or none.
func Generate(payroll payrolls.Payroll, anchor time.Time, bound Bound, rule string, holidays calendar.Set) ([]PayrollDate, error) {
	if !bound.valid() {
		return nil, fmt.Errorf("%w: generation bound must set an end date or max count", ErrGenerationFailed)
	}
	if err := payrolls.ValidateConfig(payroll); err != nil {
		return nil, err
	}

	dateValue := 0
	if payroll.DateValue != nil {
		dateValue = *payroll.DateValue
	}

	var (
		dates        []PayrollDate
		current      = truncateToDay(anchor)
		lastAdjusted time.Time
	)
	for {
		original := current
		if len(dates) > 0 {
			next, err := NextNominalDate(current, payroll.Cycle, payroll.DateType, dateValue)
			if err != nil {
				return nil, err
			}
			original = next
		}

		adjusted, err := Adjust(original, rule, holidays)
		if err != nil {
			return nil, err
		}
		processing, err := ProcessingDate(adjusted, payroll.ProcessingDaysBeforeEFT, rule, holidays)
		if err != nil {
			return nil, err
		}

		if !bound.EndDate.IsZero() && adjusted.After(bound.EndDate) {
			break
		}
		if !lastAdjusted.IsZero() && !adjusted.After(lastAdjusted) {
			return nil, fmt.Errorf("%w: adjusted EFT date %s does not advance past %s", ErrGenerationFailed, calendar.DayKey(adjusted), calendar.DayKey(lastAdjusted))
		}

		dates = append(dates, PayrollDate{
			PayrollID:       payroll.ID,
			OriginalEFTDate: original,
			AdjustedEFTDate: adjusted,
			ProcessingDate:  processing,
		})
		lastAdjusted = adjusted
		current = original

		if bound.MaxCount > 0 && len(dates) >= bound.MaxCount {
			break
		}
	}

	return dates, nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
