package domain

import (
	"fmt"
	"time"
)

// DayLayout is the format of ledger keys.
const DayLayout = "2006-01-02"

// DayKey returns the ledger key of t's calendar day in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// ParseDay parses a ledger key as noon of that day in loc. Midnight does
// not exist on every calendar day in zones that start DST at 00:00.
func ParseDay(key string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(DayLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, key)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), nil
}

// EndOfDay returns the last representable instant of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

// ValidateLedgerDay parses key and rejects days after the end of now's day.
func ValidateLedgerDay(key string, now time.Time, loc *time.Location) error {
	d, err := ParseDay(key, loc)
	if err != nil {
		return err
	}
	if d.After(EndOfDay(now, loc)) {
		return fmt.Errorf("%w: %s is in the future; only today or past days can be edited", ErrValidation, key)
	}
	return nil
}

// AddDays returns noon of the calendar day n days after t's day in loc.
func AddDays(t time.Time, n int, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day()+n, 12, 0, 0, 0, loc)
}
