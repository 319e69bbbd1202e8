package payrolls

import "fmt"

// ValidateConfig rejects payroll configurations the schedule engine
// cannot act on. Unknown enum values are never defaulted.
func ValidateConfig(p Payroll) error {
	if !contains(Cycles(), p.Cycle) {
		return fmt.Errorf("%w: unknown cycle %q", ErrInvalidConfiguration, p.Cycle)
	}
	if !contains(DateTypes(), p.DateType) {
		return fmt.Errorf("%w: unknown date type %q", ErrInvalidConfiguration, p.DateType)
	}
	if !contains(Statuses(), p.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidConfiguration, p.Status)
	}
	if p.ProcessingDaysBeforeEFT < 0 {
		return fmt.Errorf("%w: processingDaysBeforeEft must be >= 0", ErrInvalidConfiguration)
	}

	// dateValue is required and meaningful only for specific-day payrolls.
	if p.DateType == DateTypeSpecificDay {
		if p.DateValue == nil {
			return fmt.Errorf("%w: dateValue is required when dateType is %s", ErrInvalidConfiguration, DateTypeSpecificDay)
		}
		if *p.DateValue < 1 || *p.DateValue > 31 {
			return fmt.Errorf("%w: dateValue must be between 1 and 31", ErrInvalidConfiguration)
		}
	} else if p.DateValue != nil {
		return fmt.Errorf("%w: dateValue is only valid when dateType is %s", ErrInvalidConfiguration, DateTypeSpecificDay)
	}

	if p.Cycle == CycleMonthlySpecificDay && p.DateType != DateTypeSpecificDay {
		return fmt.Errorf("%w: cycle %s requires dateType %s", ErrInvalidConfiguration, CycleMonthlySpecificDay, DateTypeSpecificDay)
	}
	if p.Cycle == CycleMonthlyLastDay && p.DateType != DateTypeLastDay {
		return fmt.Errorf("%w: cycle %s requires dateType %s", ErrInvalidConfiguration, CycleMonthlyLastDay, DateTypeLastDay)
	}

	return nil
}

func contains(allowed []string, value string) bool {
	for _, candidate := range allowed {
		if candidate == value {
			return true
		}
	}
	return false
}
