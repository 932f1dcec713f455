package domain_test

import (
	"errors"
	"testing"
	"time"

	"habitme/internal/domain"
)

func TestSetDayRecomputesCompleted(t *testing.T) {
	tests := []struct {
		name  string
		start map[string]bool
		day   string
		done  bool
		want  bool
	}{
		{"nil ledger, mark done", nil, "2024-03-10", true, true},
		{"nil ledger, mark undone", nil, "2024-03-10", false, false},
		{"undo only entry", map[string]bool{"2024-03-10": true}, "2024-03-10", false, false},
		{"undo one of two", map[string]bool{"2024-03-10": true, "2024-03-09": true}, "2024-03-10", false, true},
		{"explicit false entries", map[string]bool{"2024-03-01": false}, "2024-03-02", false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := domain.Habit{DailyCompletions: tc.start}
			h.SetDay(tc.day, tc.done)
			if h.Completed != tc.want {
				t.Fatalf("Completed = %v; want %v", h.Completed, tc.want)
			}
			if got, ok := h.DailyCompletions[tc.day]; !ok || got != tc.done {
				t.Fatalf("ledger[%s] = %v (present=%v); want %v", tc.day, got, ok, tc.done)
			}
		})
	}
}

func TestCompletionCount(t *testing.T) {
	h := domain.Habit{DailyCompletions: map[string]bool{
		"2024-03-01": true, "2024-03-02": false, "2024-03-03": true,
	}}
	if n := h.CompletionCount(); n != 2 {
		t.Fatalf("CompletionCount = %d; want 2", n)
	}
	if !h.CompletedOn("2024-03-01") || h.CompletedOn("2024-03-02") || h.CompletedOn("2024-04-01") {
		t.Fatal("CompletedOn returned unexpected values")
	}
}

func TestCloneIsDeep(t *testing.T) {
	h := domain.Habit{
		DailyCompletions: map[string]bool{"2024-03-01": true},
		Reminder:         domain.DefaultReminder(),
		CreatedAt:        time.Now(),
	}
	c := h.Clone()
	c.DailyCompletions["2024-03-02"] = true
	c.Reminder.Days[0] = domain.Sunday

	if len(h.DailyCompletions) != 1 {
		t.Errorf("clone shares ledger map with original")
	}
	if h.Reminder.Days[0] != domain.Monday {
		t.Errorf("clone shares reminder days with original")
	}
}

func TestNormalizeTitle(t *testing.T) {
	if _, err := domain.NormalizeTitle("   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	got, err := domain.NormalizeTitle("  Read  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Read" {
		t.Fatalf("got %q; want %q", got, "Read")
	}
}
