package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"habitme/internal/app"
	"habitme/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, uri, fmt.Sprintf("habitme_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = db.habits.Database().Drop(context.Background())
		_ = db.Close()
	})
	return db
}

func TestHabitRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	h, err := db.CreateHabit(ctx, "Read", domain.DefaultReminder(), now)
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	second, _ := db.CreateHabit(ctx, "Run", domain.DefaultReminder(), now)

	habits, err := db.ListHabits(ctx)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(habits) != 2 || habits[0].ID != h.ID || habits[1].ID != second.ID {
		t.Fatalf("unexpected list order: %+v", habits)
	}
	if len(habits[0].Reminder.Days) != 7 {
		t.Errorf("reminder days not stored: %+v", habits[0].Reminder)
	}

	got, err := db.SetDayCompletion(ctx, h.ID, "2024-03-10", true)
	if err != nil {
		t.Fatalf("SetDayCompletion: %v", err)
	}
	if !got.Completed || !got.DailyCompletions["2024-03-10"] {
		t.Errorf("expected completed ledger, got %+v", got)
	}
	got, _ = db.SetDayCompletion(ctx, h.ID, "2024-03-10", false)
	if got.Completed {
		t.Error("expected completed=false after undoing the only entry")
	}
	if v, ok := got.DailyCompletions["2024-03-10"]; !ok || v {
		t.Errorf("expected explicit false entry, got %v", got.DailyCompletions)
	}

	title := "Read more"
	updated, err := db.UpdateHabit(ctx, h.ID, domain.HabitUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if updated.Title != title || len(updated.DailyCompletions) != 1 {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := db.DeleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if err := db.DeleteHabit(ctx, "not-an-object-id"); err != nil {
		t.Fatalf("DeleteHabit malformed id: %v", err)
	}
	if _, err := db.GetHabit(ctx, h.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetHabit(ctx, "not-an-object-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestConcurrentDayWritesMerge(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	h, err := db.CreateHabit(ctx, "Read", domain.DefaultReminder(), time.Now())
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}

	days := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}
	var wg sync.WaitGroup
	for _, d := range days {
		wg.Add(1)
		go func(day string) {
			defer wg.Done()
			if _, err := db.SetDayCompletion(ctx, h.ID, day, true); err != nil {
				t.Errorf("SetDayCompletion(%s): %v", day, err)
			}
		}(d)
	}
	wg.Wait()

	got, _ := db.GetHabit(ctx, h.ID)
	if len(got.DailyCompletions) != len(days) || !got.Completed {
		t.Fatalf("concurrent writers lost entries: %v", got.DailyCompletions)
	}
}

func TestHabitDocWithoutLedger(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":       primitive.NewObjectID(),
		"title":     "Legacy",
		"completed": false,
		"reminder":  bson.M{"enabled": false, "time": "09:00", "days": bson.A{}},
		"createdAt": time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc habitDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	h := doc.toDomain()
	if h.HasLedger() {
		t.Fatalf("missing dailyCompletions should decode as no ledger: %+v", h.DailyCompletions)
	}
	st := app.ComputeStats([]domain.Habit{*h}, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), time.UTC)
	if p := st.HabitProgress[0]; p.TotalDays != 0 || p.Percentage != 0 {
		t.Fatalf("expected 0/0 progress for a habit without ledger, got %+v", p)
	}
}

func TestHabitRepositoryLegacyDocument(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	res, err := db.habits.InsertOne(ctx, bson.M{
		"title":     "Legacy",
		"completed": false,
		"reminder":  bson.M{"enabled": false, "time": "09:00", "days": bson.A{}},
		"createdAt": time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("InsertOne: %v", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()

	h, err := db.GetHabit(ctx, id)
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if h.HasLedger() {
		t.Fatalf("expected no ledger, got %+v", h.DailyCompletions)
	}
	h, err = db.SetDayCompletion(ctx, id, "2024-03-10", true)
	if err != nil {
		t.Fatalf("SetDayCompletion: %v", err)
	}
	if !h.HasLedger() || !h.DailyCompletions["2024-03-10"] || !h.Completed {
		t.Fatalf("expected ledger to be created on first write: %+v", h)
	}
}
