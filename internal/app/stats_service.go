package app

import (
	"context"
	"math"
	"time"

	"habitme/internal/domain"
)

const (
	// StreakWindowDays is how far back the streak and per-habit progress look.
	StreakWindowDays = 30
	// WeeklySamples is how many past occurrences of each weekday are sampled.
	WeeklySamples = 4
	// NoActiveDay is reported as MostActiveDay when no habit has an enabled reminder.
	NoActiveDay = "none"
)

// Stats is the aggregate view over all habits at a reference instant.
type Stats struct {
	Today            string            `json:"today"`
	TotalHabits      int               `json:"totalHabits"`
	CompletedToday   int               `json:"completedToday"`
	CompletionRate   int               `json:"completionRate"`
	MostActiveDay    string            `json:"mostActiveDay"`
	LongestStreak    int               `json:"longestStreak"`
	TotalCompletions int               `json:"totalCompletions"`
	WeeklyProgress   []WeekdayProgress `json:"weeklyProgress"`
	HabitProgress    []HabitProgress   `json:"habitProgress"`
}

// WeekdayProgress is the completion percentage of one weekday over its
// last WeeklySamples occurrences.
type WeekdayProgress struct {
	Day       domain.Weekday `json:"day"`
	Completed int            `json:"completed"`
	Possible  int            `json:"possible"`
	Progress  int            `json:"progress"`
}

// HabitProgress is one habit's completion percentage over the last
// StreakWindowDays days.
type HabitProgress struct {
	HabitID       string `json:"habitId"`
	Title         string `json:"title"`
	CompletedDays int    `json:"completedDays"`
	TotalDays     int    `json:"totalDays"`
	Percentage    int    `json:"percentage"`
}

// StatsService computes statistics over the full habit set.
type StatsService struct {
	repo domain.HabitRepository
	loc  *time.Location
	now  func() time.Time
}

// NewStatsService creates a StatsService backed by repo.
func NewStatsService(repo domain.HabitRepository, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{repo: repo, loc: loc, now: time.Now}
}

// WithClock replaces the service clock. Intended for tests.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// Get loads all habits and aggregates them as of now.
func (s *StatsService) Get(ctx context.Context) (Stats, error) {
	return s.GetAt(ctx, s.now())
}

// GetAt loads all habits and aggregates them as of at.
func (s *StatsService) GetAt(ctx context.Context, at time.Time) (Stats, error) {
	habits, err := s.repo.ListHabits(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(habits, at, s.loc), nil
}

// ComputeStats aggregates habits as of now, using loc for day boundaries.
// It performs no I/O.
func ComputeStats(habits []domain.Habit, now time.Time, loc *time.Location) Stats {
	today := domain.DayKey(now, loc)
	st := Stats{
		Today:          today,
		TotalHabits:    len(habits),
		MostActiveDay:  mostActiveDay(habits),
		LongestStreak:  longestStreak(habits, now, loc),
		WeeklyProgress: weeklyProgress(habits, now, loc),
		HabitProgress:  habitProgress(habits, now, loc),
	}
	for i := range habits {
		if habits[i].CompletedOn(today) {
			st.CompletedToday++
		}
		st.TotalCompletions += habits[i].CompletionCount()
	}
	st.CompletionRate = percent(st.CompletedToday, st.TotalHabits)
	return st
}

// mostActiveDay counts configured reminder days, not completions.
func mostActiveDay(habits []domain.Habit) string {
	counts := make(map[domain.Weekday]int)
	var order []domain.Weekday
	for _, h := range habits {
		if !h.Reminder.Enabled {
			continue
		}
		for _, d := range h.Reminder.Days {
			if _, ok := counts[d]; !ok {
				order = append(order, d)
			}
			counts[d]++
		}
	}
	best, bestN := NoActiveDay, 0
	for _, d := range order {
		if counts[d] > bestN {
			best, bestN = string(d), counts[d]
		}
	}
	return best
}

func longestStreak(habits []domain.Habit, now time.Time, loc *time.Location) int {
	longest, current := 0, 0
	for i := 0; i < StreakWindowDays; i++ {
		key := domain.DayKey(domain.AddDays(now, -i, loc), loc)
		if anyCompletedOn(habits, key) {
			current++
			longest = max(longest, current)
		} else {
			current = 0
		}
	}
	return longest
}

func anyCompletedOn(habits []domain.Habit, day string) bool {
	for i := range habits {
		if habits[i].CompletedOn(day) {
			return true
		}
	}
	return false
}

// weeklyProgress counts every habit toward Possible on every sampled date,
// whether or not it has a ledger.
func weeklyProgress(habits []domain.Habit, now time.Time, loc *time.Location) []WeekdayProgress {
	todayIdx := weekdayIndex(now.In(loc).Weekday())
	out := make([]WeekdayProgress, 0, 7)
	for i, wd := range domain.Weekdays() {
		back := (todayIdx - i + 7) % 7
		p := WeekdayProgress{Day: wd}
		for week := 0; week < WeeklySamples; week++ {
			key := domain.DayKey(domain.AddDays(now, -(back+7*week), loc), loc)
			for j := range habits {
				p.Possible++
				if habits[j].CompletedOn(key) {
					p.Completed++
				}
			}
		}
		p.Progress = percent(p.Completed, p.Possible)
		out = append(out, p)
	}
	return out
}

// habitProgress only counts days for habits that have a ledger, so a habit
// without one reports 0/0.
func habitProgress(habits []domain.Habit, now time.Time, loc *time.Location) []HabitProgress {
	out := make([]HabitProgress, 0, len(habits))
	for _, h := range habits {
		p := HabitProgress{HabitID: h.ID, Title: h.Title}
		if h.HasLedger() {
			for i := 0; i < StreakWindowDays; i++ {
				p.TotalDays++
				if h.CompletedOn(domain.DayKey(domain.AddDays(now, -i, loc), loc)) {
					p.CompletedDays++
				}
			}
		}
		p.Percentage = percent(p.CompletedDays, p.TotalDays)
		out = append(out, p)
	}
	return out
}

// weekdayIndex maps time.Weekday to a Monday-first index.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
