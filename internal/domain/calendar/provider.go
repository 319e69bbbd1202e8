package calendar

import (
	"context"
	"fmt"
	"time"
)

type HolidayStore interface {
	ListInRange(ctx context.Context, from, to time.Time, region string) ([]Holiday, error)
	ListRecurring(ctx context.Context, region string) ([]Holiday, error)
}

type Provider struct {
	store HolidayStore
}

func NewProvider(store HolidayStore) *Provider {
	return &Provider{store: store}
}

// HolidaysInRange returns every non-recurring holiday inside [from, to]
// plus every recurring holiday re-projected onto each year the range
// touches. An empty region matches holidays of all regions.
func (p *Provider) HolidaysInRange(ctx context.Context, from, to time.Time, region string) (Set, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid holiday range: %s after %s", DayKey(from), DayKey(to))
	}

	fixed, err := p.store.ListInRange(ctx, from, to, region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	recurring, err := p.store.ListRecurring(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	set := make(Set, len(fixed)+len(recurring))
	for _, h := range fixed {
		set.Add(h)
	}

	for _, h := range recurring {
		for year := from.Year(); year <= to.Year(); year++ {
			projected := projectOntoYear(h.Date, year)
			if projected.Before(from) || projected.After(to) {
				continue
			}
			occurrence := h
			occurrence.Date = projected
			set.Add(occurrence)
		}
	}

	return set, nil
}

// projectOntoYear maps a stored month/day onto the given year. Feb 29
// collapses to Feb 28 in non-leap years.
func projectOntoYear(d time.Time, year int) time.Time {
	month, day := d.Month(), d.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, d.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
