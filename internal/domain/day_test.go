package domain_test

import (
	"errors"
	"testing"
	"time"

	"habitme/internal/domain"
)

func TestValidateLedgerDay(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	lastInstant := time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, loc)
	morning := time.Date(2024, 3, 10, 0, 0, 1, 0, loc)

	tests := []struct {
		name    string
		key     string
		now     time.Time
		wantErr bool
	}{
		{"today at end of day", "2024-03-10", lastInstant, false},
		{"today early morning", "2024-03-10", morning, false},
		{"yesterday", "2024-03-09", morning, false},
		{"tomorrow late evening", "2024-03-11", lastInstant, true},
		{"tomorrow early morning", "2024-03-11", morning, true},
		{"not a date", "2024-02-30", morning, true},
		{"wrong layout", "10.03.2024", morning, true},
		{"empty", "", morning, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateLedgerDay(tc.key, tc.now, loc)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDayKeyUsesLocation(t *testing.T) {
	// 23:30 UTC is already the next day in UTC+2.
	instant := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	if got := domain.DayKey(instant, time.UTC); got != "2024-03-10" {
		t.Errorf("UTC key = %s", got)
	}
	if got := domain.DayKey(instant, time.FixedZone("EET", 2*3600)); got != "2024-03-11" {
		t.Errorf("EET key = %s", got)
	}
}

func TestAddDays(t *testing.T) {
	loc := time.UTC
	start := time.Date(2024, 3, 1, 15, 0, 0, 0, loc)
	if got := domain.DayKey(domain.AddDays(start, -1, loc), loc); got != "2024-02-29" {
		t.Errorf("AddDays(-1) = %s; want 2024-02-29", got)
	}
	if got := domain.DayKey(domain.AddDays(start, 30, loc), loc); got != "2024-03-31" {
		t.Errorf("AddDays(30) = %s; want 2024-03-31", got)
	}
}

func santiago(t *testing.T) *time.Location {
	t.Helper()
	// Chile moves clocks from 00:00 to 01:00 on 2024-09-08.
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func TestAddDaysAcrossMidnightDSTGap(t *testing.T) {
	loc := santiago(t)
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, loc)
	want := []string{"2024-09-10", "2024-09-09", "2024-09-08", "2024-09-07", "2024-09-06"}
	for i, w := range want {
		if got := domain.DayKey(domain.AddDays(now, -i, loc), loc); got != w {
			t.Errorf("AddDays(-%d) = %s; want %s", i, got, w)
		}
	}
	back := time.Date(2024, 9, 6, 22, 0, 0, 0, loc)
	if got := domain.DayKey(domain.AddDays(back, 2, loc), loc); got != "2024-09-08" {
		t.Errorf("AddDays(+2) = %s; want 2024-09-08", got)
	}
}

func TestParseDayOnMidnightDSTGap(t *testing.T) {
	loc := santiago(t)
	d, err := domain.ParseDay("2024-09-08", loc)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if d.Weekday() != time.Sunday {
		t.Errorf("weekday = %s; want Sunday", d.Weekday())
	}
	if got := domain.DayKey(d, loc); got != "2024-09-08" {
		t.Errorf("key = %s; want 2024-09-08", got)
	}
}
