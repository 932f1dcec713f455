package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"habitme/internal/domain"
)

var _ domain.HabitRepository = (*DB)(nil)

const habitColumns = "id, title, completed, daily_completions, reminder, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (*domain.Habit, error) {
	var (
		h        domain.Habit
		ledger   []byte
		reminder []byte
	)
	if err := row.Scan(&h.ID, &h.Title, &h.Completed, &ledger, &reminder, &h.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(ledger, &h.DailyCompletions); err != nil {
		return nil, fmt.Errorf("decode daily_completions of %s: %w", h.ID, err)
	}
	if err := json.Unmarshal(reminder, &h.Reminder); err != nil {
		return nil, fmt.Errorf("decode reminder of %s: %w", h.ID, err)
	}
	return &h, nil
}

// CreateHabit inserts a new habit with an empty ledger.
func (d *DB) CreateHabit(ctx context.Context, title string, reminder domain.Reminder, createdAt time.Time) (*domain.Habit, error) {
	r, err := json.Marshal(reminder)
	if err != nil {
		return nil, err
	}
	row := d.sql.QueryRowContext(ctx,
		"INSERT INTO habits(id, title, completed, daily_completions, reminder, created_at) VALUES($1, $2, FALSE, '{}'::jsonb, $3::jsonb, $4) RETURNING "+habitColumns+";",
		uuid.NewString(), title, string(r), createdAt.UTC(),
	)
	return scanHabit(row)
}

// ListHabits returns all habits in insertion order.
func (d *DB) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT "+habitColumns+" FROM habits ORDER BY seq;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// GetHabit returns a habit by id.
func (d *DB) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT "+habitColumns+" FROM habits WHERE id=$1;", id)
	return scanHabit(row)
}

// UpdateHabit overwrites the title and/or reminder columns.
func (d *DB) UpdateHabit(ctx context.Context, id string, upd domain.HabitUpdate) (*domain.Habit, error) {
	var reminder sql.NullString
	if upd.Reminder != nil {
		b, err := json.Marshal(upd.Reminder)
		if err != nil {
			return nil, err
		}
		reminder = sql.NullString{String: string(b), Valid: true}
	}
	row := d.sql.QueryRowContext(ctx,
		"UPDATE habits SET title = COALESCE($2, title), reminder = COALESCE($3::jsonb, reminder) WHERE id=$1 RETURNING "+habitColumns+";",
		id, upd.Title, reminder,
	)
	return scanHabit(row)
}

// SetDayCompletion sets one key of the JSONB ledger and recomputes the
// completed column in the same UPDATE. Both SET expressions read the
// pre-update row, so completed is the new value OR any other true entry.
func (d *DB) SetDayCompletion(ctx context.Context, id string, day string, done bool) (*domain.Habit, error) {
	row := d.sql.QueryRowContext(ctx, `
		UPDATE habits SET
			daily_completions = jsonb_set(COALESCE(daily_completions, '{}'::jsonb), ARRAY[$2::text], to_jsonb($3::boolean), true),
			completed = $3::boolean OR EXISTS (
				SELECT 1 FROM jsonb_each(COALESCE(daily_completions, '{}'::jsonb)) AS e(key, value)
				WHERE e.key <> $2::text AND e.value = 'true'::jsonb
			)
		WHERE id=$1
		RETURNING `+habitColumns+`;`,
		id, day, done,
	)
	return scanHabit(row)
}

// DeleteHabit removes a habit by id.
func (d *DB) DeleteHabit(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM habits WHERE id=$1;", id)
	return err
}
