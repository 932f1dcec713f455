// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"habitme/internal/domain"
)

// DB implements an in-memory habit store. Records are kept in insertion
// order and every read returns a deep copy.
type DB struct {
	mu     sync.Mutex
	habits []domain.Habit
	newID  func() string
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{newID: uuid.NewString}
}

// Ensure interfaces are met.
var _ domain.HabitRepository = (*DB)(nil)

// Close is a no-op.
func (db *DB) Close() error {
	return nil
}

func (db *DB) indexOf(id string) int {
	for i := range db.habits {
		if db.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateHabit stores a new habit with an empty ledger.
func (db *DB) CreateHabit(ctx context.Context, title string, reminder domain.Reminder, createdAt time.Time) (*domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	h := domain.Habit{
		ID:               db.newID(),
		Title:            title,
		DailyCompletions: make(map[string]bool),
		Reminder:         reminder,
		CreatedAt:        createdAt.UTC(),
	}
	db.habits = append(db.habits, h.Clone())
	return &h, nil
}

// ListHabits returns all habits in insertion order.
func (db *DB) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Habit, 0, len(db.habits))
	for _, h := range db.habits {
		out = append(out, h.Clone())
	}
	return out, nil
}

// GetHabit returns a habit by id.
func (db *DB) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	h := db.habits[i].Clone()
	return &h, nil
}

// UpdateHabit overwrites the fields set in upd.
func (db *DB) UpdateHabit(ctx context.Context, id string, upd domain.HabitUpdate) (*domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		db.habits[i].Title = *upd.Title
	}
	if upd.Reminder != nil {
		db.habits[i].Reminder = upd.Reminder.Clone()
	}
	h := db.habits[i].Clone()
	return &h, nil
}

// SetDayCompletion writes one ledger entry and re-derives Completed.
func (db *DB) SetDayCompletion(ctx context.Context, id string, day string, done bool) (*domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	db.habits[i].SetDay(day, done)
	h := db.habits[i].Clone()
	return &h, nil
}

// DeleteHabit removes a habit. Unknown ids are ignored.
func (db *DB) DeleteHabit(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if i := db.indexOf(id); i >= 0 {
		db.habits = append(db.habits[:i], db.habits[i+1:]...)
	}
	return nil
}
