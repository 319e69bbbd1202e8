package calendar

import (
	"context"
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeHolidayStore struct {
	fixed     []Holiday
	recurring []Holiday
	err       error
}

func (f *fakeHolidayStore) ListInRange(_ context.Context, from, to time.Time, _ string) ([]Holiday, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Holiday
	for _, h := range f.fixed {
		if h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHolidayStore) ListRecurring(context.Context, string) ([]Holiday, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recurring, nil
}

func TestHolidaysInRangeFixed(t *testing.T) {
	store := &fakeHolidayStore{fixed: []Holiday{
		{Date: date(2025, 6, 9), Name: "King's Birthday"},
		{Date: date(2026, 1, 26), Name: "Australia Day"},
	}}
	set, err := NewProvider(store).HolidaysInRange(context.Background(), date(2025, 6, 1), date(2025, 6, 30), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Contains(date(2025, 6, 9)) {
		t.Fatal("expected 2025-06-09 in set")
	}
	if set.Contains(date(2026, 1, 26)) {
		t.Fatal("2026-01-26 is outside the range")
	}
}

func TestHolidaysInRangeProjectsRecurringAcrossYears(t *testing.T) {
	store := &fakeHolidayStore{recurring: []Holiday{
		{Date: date(2000, 12, 25), Name: "Christmas Day", Recurring: true},
	}}
	set, err := NewProvider(store).HolidaysInRange(context.Background(), date(2025, 1, 1), date(2026, 12, 31), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, year := range []int{2025, 2026} {
		if !set.Contains(date(year, 12, 25)) {
			t.Fatalf("expected Christmas projected onto %d", year)
		}
	}
}

func TestHolidaysInRangeSkipsProjectionOutsideRange(t *testing.T) {
	store := &fakeHolidayStore{recurring: []Holiday{
		{Date: date(2000, 12, 25), Name: "Christmas Day", Recurring: true},
	}}
	set, err := NewProvider(store).HolidaysInRange(context.Background(), date(2025, 1, 1), date(2025, 6, 30), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Contains(date(2025, 12, 25)) {
		t.Fatal("projection past the range end must be dropped")
	}
}

func TestHolidaysInRangeLeapDayCollapses(t *testing.T) {
	store := &fakeHolidayStore{recurring: []Holiday{
		{Date: date(2024, 2, 29), Name: "Leap Day", Recurring: true},
	}}
	set, err := NewProvider(store).HolidaysInRange(context.Background(), date(2025, 1, 1), date(2025, 12, 31), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Contains(date(2025, 2, 28)) {
		t.Fatal("expected Feb 29 to collapse onto Feb 28 in a non-leap year")
	}
}

func TestHolidaysInRangeStoreFailure(t *testing.T) {
	store := &fakeHolidayStore{err: errors.New("connection refused")}
	_, err := NewProvider(store).HolidaysInRange(context.Background(), date(2025, 1, 1), date(2025, 12, 31), "")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected data unavailable, got %v", err)
	}
}

func TestHolidaysInRangeInvertedRange(t *testing.T) {
	_, err := NewProvider(&fakeHolidayStore{}).HolidaysInRange(context.Background(), date(2025, 12, 31), date(2025, 1, 1), "")
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
}
