package payrolls

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func validPayroll() Payroll {
	return Payroll{
		ClientName:              "Acme Ltd",
		Cycle:                   CycleWeekly,
		DateType:                DateTypeDayOfWeek,
		ProcessingDaysBeforeEFT: 2,
		Status:                  StatusActive,
	}
}

func TestValidateConfigAccepts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Payroll)
	}{
		{"weekly", func(*Payroll) {}},
		{"fortnightly", func(p *Payroll) { p.Cycle = CycleFortnightly }},
		{"monthly specific day", func(p *Payroll) {
			p.Cycle = CycleMonthlySpecificDay
			p.DateType = DateTypeSpecificDay
			p.DateValue = intPtr(15)
		}},
		{"monthly last day", func(p *Payroll) {
			p.Cycle = CycleMonthlyLastDay
			p.DateType = DateTypeLastDay
		}},
		{"quarterly last day", func(p *Payroll) {
			p.Cycle = CycleQuarterly
			p.DateType = DateTypeLastDay
		}},
	}
	for _, tc := range cases {
		p := validPayroll()
		tc.mutate(&p)
		if err := ValidateConfig(p); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestValidateConfigRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Payroll)
	}{
		{"unknown cycle", func(p *Payroll) { p.Cycle = "hourly" }},
		{"unknown date type", func(p *Payroll) { p.DateType = "nth_weekday" }},
		{"unknown status", func(p *Payroll) { p.Status = "Paused" }},
		{"negative lead days", func(p *Payroll) { p.ProcessingDaysBeforeEFT = -1 }},
		{"specific day without value", func(p *Payroll) {
			p.Cycle = CycleMonthlySpecificDay
			p.DateType = DateTypeSpecificDay
		}},
		{"value out of range", func(p *Payroll) {
			p.Cycle = CycleMonthlySpecificDay
			p.DateType = DateTypeSpecificDay
			p.DateValue = intPtr(32)
		}},
		{"value on non-specific type", func(p *Payroll) { p.DateValue = intPtr(15) }},
		{"monthly specific day with wrong date type", func(p *Payroll) { p.Cycle = CycleMonthlySpecificDay }},
		{"monthly last day with wrong date type", func(p *Payroll) { p.Cycle = CycleMonthlyLastDay }},
	}
	for _, tc := range cases {
		p := validPayroll()
		tc.mutate(&p)
		if err := ValidateConfig(p); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("%s: expected invalid configuration, got %v", tc.name, err)
		}
	}
}

func TestScheduleConfigChanged(t *testing.T) {
	base := validPayroll()

	same := base
	if base.ScheduleConfigChanged(same) {
		t.Fatal("identical configuration must not trigger recalculation")
	}

	renamed := base
	renamed.ClientName = "Acme Pty Ltd"
	if base.ScheduleConfigChanged(renamed) {
		t.Fatal("client name is not schedule relevant")
	}

	cycle := base
	cycle.Cycle = CycleFortnightly
	if !base.ScheduleConfigChanged(cycle) {
		t.Fatal("cycle change must trigger recalculation")
	}

	lead := base
	lead.ProcessingDaysBeforeEFT = 3
	if !base.ScheduleConfigChanged(lead) {
		t.Fatal("lead days change must trigger recalculation")
	}

	value := base
	value.DateValue = intPtr(15)
	if !base.ScheduleConfigChanged(value) {
		t.Fatal("date value change must trigger recalculation")
	}
}
