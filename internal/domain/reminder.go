package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a lowercase English weekday identifier ("monday" … "sunday").
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// DefaultReminderTime is used when a reminder omits its time of day.
const DefaultReminderTime = "09:00"

// Weekdays returns all seven weekdays, Monday first.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOf maps a time.Weekday to its identifier.
func WeekdayOf(d time.Weekday) Weekday {
	// time.Sunday == 0
	return Weekdays()[(int(d)+6)%7]
}

// Valid reports whether w is one of the seven identifiers.
func (w Weekday) Valid() bool {
	for _, d := range Weekdays() {
		if w == d {
			return true
		}
	}
	return false
}

// Reminder is a stored, never dispatched schedule attached to a habit.
type Reminder struct {
	Enabled bool      `json:"enabled"`
	Time    string    `json:"time"`
	Days    []Weekday `json:"days"`
}

// DefaultReminder is the reminder a habit gets when none is supplied.
func DefaultReminder() Reminder {
	return Reminder{Enabled: false, Time: DefaultReminderTime, Days: Weekdays()}
}

// Normalize fills defaults and validates r. Days are lowercased,
// deduplicated and returned Monday first. A nil Days slice means "every
// day"; an empty non-nil slice is kept empty.
func (r Reminder) Normalize() (Reminder, error) {
	out := Reminder{Enabled: r.Enabled, Time: strings.TrimSpace(r.Time)}
	if out.Time == "" {
		out.Time = DefaultReminderTime
	}
	if _, err := ParseClock(out.Time); err != nil {
		return Reminder{}, err
	}

	if r.Days == nil {
		out.Days = Weekdays()
		return out, nil
	}
	seen := make(map[Weekday]bool, len(r.Days))
	for _, d := range r.Days {
		d = Weekday(strings.ToLower(strings.TrimSpace(string(d))))
		if !d.Valid() {
			return Reminder{}, fmt.Errorf("%w: unknown weekday %q", ErrValidation, d)
		}
		seen[d] = true
	}
	out.Days = make([]Weekday, 0, len(seen))
	for _, d := range Weekdays() {
		if seen[d] {
			out.Days = append(out.Days, d)
		}
	}
	return out, nil
}

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: time must be HH:MM, got %q", ErrValidation, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: time must be HH:MM, got %q", ErrValidation, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Clone returns a copy of r that shares no memory with it.
func (r Reminder) Clone() Reminder {
	if r.Days != nil {
		r.Days = append(make([]Weekday, 0, len(r.Days)), r.Days...)
	}
	return r
}
