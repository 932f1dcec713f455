// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habitme/internal/domain"
)

// HabitService encapsulates habit CRUD, ledger and reminder use cases.
type HabitService struct {
	repo domain.HabitRepository
	loc  *time.Location
	now  func() time.Time
}

// NewHabitService creates a HabitService backed by repo. Day keys are
// evaluated in loc; a nil loc means time.Local.
func NewHabitService(repo domain.HabitRepository, loc *time.Location) *HabitService {
	if loc == nil {
		loc = time.Local
	}
	return &HabitService{repo: repo, loc: loc, now: time.Now}
}

// WithClock replaces the service clock. Intended for tests.
func (s *HabitService) WithClock(now func() time.Time) *HabitService {
	s.now = now
	return s
}

// Location returns the time zone used for day keys.
func (s *HabitService) Location() *time.Location {
	return s.loc
}

// List returns every habit.
func (s *HabitService) List(ctx context.Context) ([]domain.Habit, error) {
	return s.repo.ListHabits(ctx)
}

// Get returns a single habit or domain.ErrNotFound.
func (s *HabitService) Get(ctx context.Context, id string) (*domain.Habit, error) {
	return s.repo.GetHabit(ctx, id)
}

// Create validates the title and reminder and stores a new habit with an
// empty ledger. A nil reminder gets the default schedule.
func (s *HabitService) Create(ctx context.Context, title string, reminder *domain.Reminder) (*domain.Habit, error) {
	t, err := domain.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	r := domain.DefaultReminder()
	if reminder != nil {
		if r, err = reminder.Normalize(); err != nil {
			return nil, err
		}
	}
	return s.repo.CreateHabit(ctx, t, r, s.now())
}

// Update replaces the given fields of a habit. The ledger is not
// reachable from here; use SetDayCompletion.
func (s *HabitService) Update(ctx context.Context, id string, title *string, reminder *domain.Reminder) (*domain.Habit, error) {
	var upd domain.HabitUpdate
	if title != nil {
		t, err := domain.NormalizeTitle(*title)
		if err != nil {
			return nil, err
		}
		upd.Title = &t
	}
	if reminder != nil {
		r, err := reminder.Normalize()
		if err != nil {
			return nil, err
		}
		upd.Reminder = &r
	}
	if upd.Title == nil && upd.Reminder == nil {
		return s.repo.GetHabit(ctx, id)
	}
	return s.repo.UpdateHabit(ctx, id, upd)
}

// SetDayCompletion marks day done or undone for a habit. Days after today
// are rejected before the store is touched.
func (s *HabitService) SetDayCompletion(ctx context.Context, id, day string, done bool) (*domain.Habit, error) {
	if err := domain.ValidateLedgerDay(day, s.now(), s.loc); err != nil {
		return nil, err
	}
	return s.repo.SetDayCompletion(ctx, id, day, done)
}

// SetReminder replaces the habit's reminder wholesale.
func (s *HabitService) SetReminder(ctx context.Context, id string, reminder domain.Reminder) (*domain.Habit, error) {
	r, err := reminder.Normalize()
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateHabit(ctx, id, domain.HabitUpdate{Reminder: &r})
}

// Delete removes a habit. Deleting an unknown id succeeds.
func (s *HabitService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteHabit(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete habit %s: %w", id, err)
	}
	return nil
}
