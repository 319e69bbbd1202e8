package schedule

import "time"

// PayrollDate is one generated schedule entry. OriginalEFTDate is the
// nominal cycle date, AdjustedEFTDate the nominal date rolled onto a
// valid business day, and ProcessingDate the adjusted date minus the
// payroll's processing lead time, itself rolled onto a business day.
type PayrollDate struct {
	ID              string    `json:"id"`
	PayrollID       string    `json:"payrollId"`
	OriginalEFTDate time.Time `json:"originalEftDate"`
	AdjustedEFTDate time.Time `json:"adjustedEftDate"`
	ProcessingDate  time.Time `json:"processingDate"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Bound limits a generation run. EndDate and MaxCount may be combined;
// generation stops at whichever is reached first. At least one must be
// set.
type Bound struct {
	EndDate  time.Time
	MaxCount int
}

func (b Bound) valid() bool {
	return !b.EndDate.IsZero() || b.MaxCount > 0
}

type AdjustmentRule struct {
	Cycle    string `json:"cycle"`
	DateType string `json:"dateType"`
	Rule     string `json:"rule"`
}

type ExtendSummary struct {
	PayrollsProcessed int `json:"payrollsProcessed"`
	DatesGenerated    int `json:"datesGenerated"`
	Skipped           int `json:"skipped"`
	Failed            int `json:"failed"`
}
