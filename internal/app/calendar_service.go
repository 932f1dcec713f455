package app

import (
	"context"
	"time"

	"habitme/internal/domain"
)

// Week is a Monday-to-Sunday completion grid.
type Week struct {
	Days      []string  `json:"days"`
	Rows      []WeekRow `json:"rows"`
	Completed int       `json:"completed"`
	Possible  int       `json:"possible"`
	Today     string    `json:"today"`
	Previous  string    `json:"previous"`
	Next      string    `json:"next"`
}

// WeekRow is one habit's completion flags for the days of a Week.
// Editable is false for days after today.
type WeekRow struct {
	HabitID  string `json:"habitId"`
	Title    string `json:"title"`
	Done     []bool `json:"done"`
	Editable []bool `json:"editable"`
}

// Today summarizes the current day's checklist.
type Today struct {
	Day       string      `json:"day"`
	Weekday   string      `json:"weekday"`
	Items     []TodayItem `json:"items"`
	Completed int         `json:"completed"`
	Total     int         `json:"total"`
	Progress  int         `json:"progress"`
}

// TodayItem is one habit in the Today checklist.
type TodayItem struct {
	HabitID string `json:"habitId"`
	Title   string `json:"title"`
	Done    bool   `json:"done"`
}

// CalendarService builds calendar views over the habit ledger.
type CalendarService struct {
	repo domain.HabitRepository
	loc  *time.Location
	now  func() time.Time
}

// NewCalendarService creates a CalendarService backed by repo.
func NewCalendarService(repo domain.HabitRepository, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{repo: repo, loc: loc, now: time.Now}
}

// WithClock replaces the service clock. Intended for tests.
func (s *CalendarService) WithClock(now func() time.Time) *CalendarService {
	s.now = now
	return s
}

// Week returns the week containing day (a YYYY-MM-DD key). An empty day
// means the current week.
func (s *CalendarService) Week(ctx context.Context, day string) (Week, error) {
	now := s.now()
	anchor := now
	if day != "" {
		d, err := domain.ParseDay(day, s.loc)
		if err != nil {
			return Week{}, err
		}
		anchor = d
	}
	habits, err := s.repo.ListHabits(ctx)
	if err != nil {
		return Week{}, err
	}

	monday := domain.AddDays(anchor, -weekdayIndex(anchor.In(s.loc).Weekday()), s.loc)
	endOfToday := domain.EndOfDay(now, s.loc)
	w := Week{
		Days:     make([]string, 7),
		Rows:     make([]WeekRow, 0, len(habits)),
		Possible: len(habits) * 7,
		Today:    domain.DayKey(now, s.loc),
		Previous: domain.DayKey(domain.AddDays(monday, -7, s.loc), s.loc),
		Next:     domain.DayKey(domain.AddDays(monday, 7, s.loc), s.loc),
	}
	editable := make([]bool, 7)
	for i := range w.Days {
		d := domain.AddDays(monday, i, s.loc)
		w.Days[i] = domain.DayKey(d, s.loc)
		editable[i] = !d.After(endOfToday)
	}
	for _, h := range habits {
		row := WeekRow{HabitID: h.ID, Title: h.Title, Done: make([]bool, 7), Editable: editable}
		for i, key := range w.Days {
			if h.CompletedOn(key) {
				row.Done[i] = true
				w.Completed++
			}
		}
		w.Rows = append(w.Rows, row)
	}
	return w, nil
}

// Today returns today's checklist and progress.
func (s *CalendarService) Today(ctx context.Context) (Today, error) {
	habits, err := s.repo.ListHabits(ctx)
	if err != nil {
		return Today{}, err
	}
	now := s.now()
	t := Today{
		Day:     domain.DayKey(now, s.loc),
		Weekday: string(domain.WeekdayOf(now.In(s.loc).Weekday())),
		Items:   make([]TodayItem, 0, len(habits)),
		Total:   len(habits),
	}
	for _, h := range habits {
		done := h.CompletedOn(t.Day)
		if done {
			t.Completed++
		}
		t.Items = append(t.Items, TodayItem{HabitID: h.ID, Title: h.Title, Done: done})
	}
	t.Progress = percent(t.Completed, t.Total)
	return t, nil
}
