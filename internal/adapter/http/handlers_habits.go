package adapthttp

import (
	"fmt"
	"net/http"

	"habitme/internal/domain"
)

func (s *Server) handleHabits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		habits, err := s.habits.List(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, habits)
	case http.MethodPost:
		var body struct {
			Title    string           `json:"title"`
			Reminder *domain.Reminder `json:"reminder"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		h, err := s.habits.Create(r.Context(), body.Title, body.Reminder)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, h)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleHabit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		h, err := s.habits.Get(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, h)
	case http.MethodPut:
		// completed is accepted for older clients and ignored; the flag is
		// derived from the ledger.
		var body struct {
			Title     *string          `json:"title"`
			Completed *bool            `json:"completed"`
			Reminder  *domain.Reminder `json:"reminder"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		h, err := s.habits.Update(r.Context(), id, body.Title, body.Reminder)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, h)
	case http.MethodDelete:
		if err := s.habits.Delete(r.Context(), id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Habit deleted successfully"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleHabitDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Date      string `json:"date"`
		Completed *bool  `json:"completed"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Date == "" || body.Completed == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: date and completed are required", domain.ErrValidation))
		return
	}
	h, err := s.habits.SetDayCompletion(r.Context(), r.PathValue("id"), body.Date, *body.Completed)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleHabitReminder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Reminder *domain.Reminder `json:"reminder"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Reminder == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: reminder is required", domain.ErrValidation))
		return
	}
	h, err := s.habits.SetReminder(r.Context(), r.PathValue("id"), *body.Reminder)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}
