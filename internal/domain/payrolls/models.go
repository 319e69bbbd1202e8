package payrolls

import "time"

type Payroll struct {
	ID                      string    `json:"id"`
	ClientName              string    `json:"clientName"`
	Cycle                   string    `json:"cycle"`
	DateType                string    `json:"dateType"`
	DateValue               *int      `json:"dateValue,omitempty"`
	ProcessingDaysBeforeEFT int       `json:"processingDaysBeforeEft"`
	Status                  string    `json:"status"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// ScheduleConfigChanged reports whether an update touches any field the
// generated schedule depends on. Past dates are never reinterpreted; a
// change here means future dates must be recalculated.
func (p Payroll) ScheduleConfigChanged(updated Payroll) bool {
	if p.Cycle != updated.Cycle || p.DateType != updated.DateType {
		return true
	}
	if p.ProcessingDaysBeforeEFT != updated.ProcessingDaysBeforeEFT {
		return true
	}
	if (p.DateValue == nil) != (updated.DateValue == nil) {
		return true
	}
	if p.DateValue != nil && updated.DateValue != nil && *p.DateValue != *updated.DateValue {
		return true
	}
	return false
}
