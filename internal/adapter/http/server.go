// Package adapthttp is the driving HTTP adapter: JSON API under /api plus
// the single-page app served from disk.
package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"habitme/internal/app"
)

// Options configures the non-service parts of a Server.
type Options struct {
	WebDir     string
	CORSOrigin string
	Logger     *zap.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	habits   *app.HabitService
	stats    *app.StatsService
	calendar *app.CalendarService
	quotes   *app.QuoteService

	webDir     string
	corsOrigin string
	log        *zap.Logger
}

// New creates a Server wired to the given application services.
func New(hs *app.HabitService, ss *app.StatsService, cs *app.CalendarService, qs *app.QuoteService, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		habits:     hs,
		stats:      ss,
		calendar:   cs,
		quotes:     qs,
		webDir:     opts.WebDir,
		corsOrigin: opts.CORSOrigin,
		log:        log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/habits", s.handleHabits)
	api.HandleFunc("/habits/{id}", s.handleHabit)
	api.HandleFunc("/habits/{id}/daily", s.handleHabitDaily)
	api.HandleFunc("/habits/{id}/reminder", s.handleHabitReminder)

	api.HandleFunc("/stats", s.handleStats)
	api.HandleFunc("/calendar/week", s.handleCalendarWeek)
	api.HandleFunc("/today", s.handleToday)
	api.HandleFunc("/quote", s.handleQuote)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", s.corsMiddleware(api)))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
