package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"habitme/internal/domain"
)

var _ domain.HabitRepository = (*DB)(nil)

type habitDoc struct {
	Title            string          `firestore:"title"`
	Completed        bool            `firestore:"completed"`
	DailyCompletions map[string]bool `firestore:"dailyCompletions"`
	Reminder         reminderDoc     `firestore:"reminder"`
	CreatedAt        time.Time       `firestore:"createdAt"`
}

type reminderDoc struct {
	Enabled bool     `firestore:"enabled"`
	Time    string   `firestore:"time"`
	Days    []string `firestore:"days"`
}

func toReminderDoc(r domain.Reminder) reminderDoc {
	doc := reminderDoc{Enabled: r.Enabled, Time: r.Time}
	if r.Days != nil {
		doc.Days = make([]string, 0, len(r.Days))
		for _, d := range r.Days {
			doc.Days = append(doc.Days, string(d))
		}
	}
	return doc
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (*domain.Habit, error) {
	var doc habitDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal habit %s: %w", snap.Ref.ID, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// toDomain keeps a missing dailyCompletions field as a nil ledger.
func (d habitDoc) toDomain(id string) *domain.Habit {
	h := &domain.Habit{
		ID:               id,
		Title:            d.Title,
		Completed:        d.Completed,
		DailyCompletions: d.DailyCompletions,
		Reminder:         domain.Reminder{Enabled: d.Reminder.Enabled, Time: d.Reminder.Time},
		CreatedAt:        d.CreatedAt.UTC(),
	}
	if d.Reminder.Days != nil {
		h.Reminder.Days = make([]domain.Weekday, 0, len(d.Reminder.Days))
		for _, day := range d.Reminder.Days {
			h.Reminder.Days = append(h.Reminder.Days, domain.Weekday(day))
		}
	}
	return h
}

// ref returns the document reference for id, or ErrNotFound when id cannot
// name a document in the habits collection.
func (d *DB) ref(id string) (*firestore.DocumentRef, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, domain.ErrNotFound
	}
	return d.client.Collection(habitsCollection).Doc(id), nil
}

func notFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return err
}

// CreateHabit stores a new habit under a fresh UUID.
func (d *DB) CreateHabit(ctx context.Context, title string, reminder domain.Reminder, createdAt time.Time) (*domain.Habit, error) {
	id := uuid.NewString()
	doc := habitDoc{
		Title:            title,
		DailyCompletions: map[string]bool{},
		Reminder:         toReminderDoc(reminder),
		CreatedAt:        createdAt.UTC(),
	}
	if _, err := d.client.Collection(habitsCollection).Doc(id).Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return &domain.Habit{
		ID:               id,
		Title:            title,
		DailyCompletions: map[string]bool{},
		Reminder:         reminder,
		CreatedAt:        doc.CreatedAt,
	}, nil
}

// ListHabits returns all habits ordered by creation time.
func (d *DB) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	iter := d.client.Collection(habitsCollection).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Habit, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate habits: %w", err)
		}
		h, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, nil
}

// GetHabit returns a habit by id.
func (d *DB) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	ref, err := d.ref(id)
	if err != nil {
		return nil, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return fromSnapshot(snap)
}

// UpdateHabit overwrites the title and/or reminder fields.
func (d *DB) UpdateHabit(ctx context.Context, id string, upd domain.HabitUpdate) (*domain.Habit, error) {
	ref, err := d.ref(id)
	if err != nil {
		return nil, err
	}
	var updates []firestore.Update
	if upd.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *upd.Title})
	}
	if upd.Reminder != nil {
		updates = append(updates, firestore.Update{Path: "reminder", Value: toReminderDoc(*upd.Reminder)})
	}
	if len(updates) == 0 {
		return d.GetHabit(ctx, id)
	}

	var out *domain.Habit
	err = d.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return notFound(err)
		}
		h, err := fromSnapshot(snap)
		if err != nil {
			return err
		}
		if upd.Title != nil {
			h.Title = *upd.Title
		}
		if upd.Reminder != nil {
			h.Reminder = upd.Reminder.Clone()
		}
		out = h
		return tx.Update(ref, updates)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetDayCompletion updates a single ledger field and the derived completed
// flag inside a transaction, so writes to other days are never overwritten.
func (d *DB) SetDayCompletion(ctx context.Context, id string, day string, done bool) (*domain.Habit, error) {
	ref, err := d.ref(id)
	if err != nil {
		return nil, err
	}
	var out *domain.Habit
	err = d.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return notFound(err)
		}
		h, err := fromSnapshot(snap)
		if err != nil {
			return err
		}
		h.SetDay(day, done)
		out = h
		return tx.Update(ref, []firestore.Update{
			{FieldPath: firestore.FieldPath{"dailyCompletions", day}, Value: done},
			{Path: "completed", Value: h.Completed},
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteHabit removes a habit. Missing documents are not an error.
func (d *DB) DeleteHabit(ctx context.Context, id string) error {
	ref, err := d.ref(id)
	if err != nil {
		return nil
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}
