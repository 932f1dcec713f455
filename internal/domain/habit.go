// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates that the requested habit does not exist.
	ErrNotFound = errors.New("habit not found")
	// ErrValidation indicates malformed input. Callers wrap it with detail.
	ErrValidation = errors.New("validation failed")
)

// Habit is a trackable recurring activity with its per-day completion ledger.
// DailyCompletions maps a day key (YYYY-MM-DD) to whether the habit was done
// that day; a missing key means "not recorded". Completed is derived from it.
type Habit struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Completed        bool            `json:"completed"`
	DailyCompletions map[string]bool `json:"dailyCompletions"`
	Reminder         Reminder        `json:"reminder"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// HabitUpdate lists the fields replaced by a partial update. Nil fields are
// left untouched. The ledger and the derived completed flag are not
// updatable through this path.
type HabitUpdate struct {
	Title    *string
	Reminder *Reminder
}

// HabitRepository is the port for habit persistence.
type HabitRepository interface {
	CreateHabit(ctx context.Context, title string, reminder Reminder, createdAt time.Time) (*Habit, error)
	ListHabits(ctx context.Context) ([]Habit, error)
	GetHabit(ctx context.Context, id string) (*Habit, error)
	UpdateHabit(ctx context.Context, id string, upd HabitUpdate) (*Habit, error)
	// SetDayCompletion records done for day and re-derives Completed in the
	// same write.
	SetDayCompletion(ctx context.Context, id string, day string, done bool) (*Habit, error)
	// DeleteHabit removes the habit. Unknown ids are not an error.
	DeleteHabit(ctx context.Context, id string) error
}

// CompletedOn reports whether the habit was marked done on day.
func (h *Habit) CompletedOn(day string) bool {
	return h.DailyCompletions[day]
}

// HasLedger reports whether the habit carries a completion map at all.
func (h *Habit) HasLedger() bool {
	return h.DailyCompletions != nil
}

// CompletionCount returns the number of days marked done.
func (h *Habit) CompletionCount() int {
	n := 0
	for _, done := range h.DailyCompletions {
		if done {
			n++
		}
	}
	return n
}

// SetDay writes one ledger entry and re-derives Completed.
func (h *Habit) SetDay(day string, done bool) {
	if h.DailyCompletions == nil {
		h.DailyCompletions = make(map[string]bool)
	}
	h.DailyCompletions[day] = done
	h.RecomputeCompleted()
}

// RecomputeCompleted sets Completed to the OR of all ledger values.
func (h *Habit) RecomputeCompleted() {
	h.Completed = false
	for _, done := range h.DailyCompletions {
		if done {
			h.Completed = true
			return
		}
	}
}

// Clone returns a deep copy of h.
func (h Habit) Clone() Habit {
	if h.DailyCompletions != nil {
		m := make(map[string]bool, len(h.DailyCompletions))
		for k, v := range h.DailyCompletions {
			m[k] = v
		}
		h.DailyCompletions = m
	}
	h.Reminder = h.Reminder.Clone()
	return h
}

// NormalizeTitle trims title and rejects empty values.
func NormalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	return t, nil
}
