package calendar

import "time"

type Holiday struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Name      string    `json:"name"`
	Recurring bool      `json:"recurring"`
	Region    string    `json:"region,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Set holds the holidays applicable to a date range, keyed by calendar
// day. Recurring holidays appear once per year the range touches.
type Set map[string]Holiday

const dayFormat = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Format(dayFormat)
}

func (s Set) Contains(t time.Time) bool {
	_, ok := s[DayKey(t)]
	return ok
}

func (s Set) Add(h Holiday) {
	s[DayKey(h.Date)] = h
}
