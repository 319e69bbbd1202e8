package schedule

import (
	"errors"
	"testing"
	"time"

	"paysched/internal/domain/payrolls"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextNominalDateWeekly(t *testing.T) {
	next, err := NextNominalDate(date(2025, 6, 4), payrolls.CycleWeekly, payrolls.DateTypeDayOfWeek, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2025, 6, 11)) {
		t.Fatalf("expected 2025-06-11, got %v", next)
	}
}

func TestNextNominalDateFortnightly(t *testing.T) {
	next, err := NextNominalDate(date(2025, 6, 4), payrolls.CycleFortnightly, payrolls.DateTypeDayOfWeek, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2025, 6, 18)) {
		t.Fatalf("expected 2025-06-18, got %v", next)
	}
}

func TestNextNominalDateMonthlySpecificDayClampsFebruary(t *testing.T) {
	next, err := NextNominalDate(date(2025, 1, 31), payrolls.CycleMonthlySpecificDay, payrolls.DateTypeSpecificDay, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2025, 2, 28)) {
		t.Fatalf("expected 2025-02-28, got %v", next)
	}
}

func TestNextNominalDateMonthlySpecificDayLeapYear(t *testing.T) {
	next, err := NextNominalDate(date(2024, 1, 31), payrolls.CycleMonthlySpecificDay, payrolls.DateTypeSpecificDay, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2024, 2, 29)) {
		t.Fatalf("expected 2024-02-29, got %v", next)
	}
}

func TestNextNominalDateMonthlySpecificDayRecoversAfterClamp(t *testing.T) {
	// A clamped February date must still land on the 31st in March.
	next, err := NextNominalDate(date(2025, 2, 28), payrolls.CycleMonthlySpecificDay, payrolls.DateTypeSpecificDay, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2025, 3, 31)) {
		t.Fatalf("expected 2025-03-31, got %v", next)
	}
}

func TestNextNominalDateMonthlyLastDay(t *testing.T) {
	next, err := NextNominalDate(date(2025, 1, 31), payrolls.CycleMonthlyLastDay, payrolls.DateTypeLastDay, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2025, 2, 28)) {
		t.Fatalf("expected 2025-02-28, got %v", next)
	}

	next, err = NextNominalDate(next, payrolls.CycleMonthlyLastDay, payrolls.DateTypeLastDay, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2025, 3, 31)) {
		t.Fatalf("expected 2025-03-31, got %v", next)
	}
}

func TestNextNominalDateQuarterlyClamps(t *testing.T) {
	next, err := NextNominalDate(date(2025, 1, 31), payrolls.CycleQuarterly, payrolls.DateTypeSpecificDay, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2025, 4, 30)) {
		t.Fatalf("expected 2025-04-30, got %v", next)
	}
}

func TestNextNominalDateQuarterlyYearRollover(t *testing.T) {
	next, err := NextNominalDate(date(2025, 11, 15), payrolls.CycleQuarterly, payrolls.DateTypeSpecificDay, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2026, 2, 15)) {
		t.Fatalf("expected 2026-02-15, got %v", next)
	}
}

func TestNextNominalDateUnknownCycle(t *testing.T) {
	_, err := NextNominalDate(date(2025, 1, 1), "hourly", payrolls.DateTypeSpecificDay, 1)
	if !errors.Is(err, payrolls.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}

func TestNextNominalDateSpecificDayWithoutValue(t *testing.T) {
	_, err := NextNominalDate(date(2025, 1, 1), payrolls.CycleMonthlySpecificDay, payrolls.DateTypeSpecificDay, 0)
	if !errors.Is(err, payrolls.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}
