package payrolls

const (
	CycleWeekly             = "weekly"
	CycleFortnightly        = "fortnightly"
	CycleMonthlySpecificDay = "monthly_specific_day"
	CycleMonthlyLastDay     = "monthly_last_day"
	CycleQuarterly          = "quarterly"

	DateTypeSpecificDay = "specific_day"
	DateTypeLastDay     = "last_day"
	DateTypeDayOfWeek   = "day_of_week"

	StatusImplementation = "Implementation"
	StatusActive         = "Active"
	StatusInactive       = "Inactive"
)

func Cycles() []string {
	return []string{CycleWeekly, CycleFortnightly, CycleMonthlySpecificDay, CycleMonthlyLastDay, CycleQuarterly}
}

func DateTypes() []string {
	return []string{DateTypeSpecificDay, DateTypeLastDay, DateTypeDayOfWeek}
}

func Statuses() []string {
	return []string{StatusImplementation, StatusActive, StatusInactive}
}
