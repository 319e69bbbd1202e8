package shared

import (
	"testing"
	"time"
)

func TestParseDateCalendarDay(t *testing.T) {
	parsed, err := ParseDate("2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.June || parsed.Day() != 2 {
		t.Fatalf("unexpected date: %v", parsed)
	}
}

func TestParseDateRFC3339(t *testing.T) {
	parsed, err := ParseDate("2025-06-02T09:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Hour() != 9 || parsed.Minute() != 30 {
		t.Fatalf("unexpected time: %v", parsed)
	}
}

func TestParseDateEmpty(t *testing.T) {
	parsed, err := ParseDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.IsZero() {
		t.Fatalf("expected zero time, got %v", parsed)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("02/06/2025"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
