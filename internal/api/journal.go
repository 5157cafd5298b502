package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dailycoach/internal/models"
	"dailycoach/internal/repository"
)

func (s *Server) saveCheckin(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.journalUser(w, r)
	if !ok {
		return
	}
	var state models.DailyState
	if !s.decode(w, r, &state) {
		return
	}
	saved, err := s.svc.SaveCheckin(r.Context(), userID, s.now(), state)
	if err != nil {
		s.writeJournalError(w, "save check-in", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) logWater(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.journalUser(w, r)
	if !ok {
		return
	}
	var req waterRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.LogWater(r.Context(), userID, s.now(), req.Liters); err != nil {
		s.writeJournalError(w, "log water", userID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logWeight(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.journalUser(w, r)
	if !ok {
		return
	}
	var req weightRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.LogWeight(r.Context(), userID, s.now(), req.WeightKg); err != nil {
		s.writeJournalError(w, "log weight", userID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saveSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.journalUser(w, r)
	if !ok {
		return
	}
	var req scheduleRequest
	if !s.decode(w, r, &req) {
		return
	}
	plan, err := s.svc.SaveSchedule(r.Context(), userID, s.now(), repository.WeeklySchedule{
		ScheduledDaysPerWeek: req.ScheduledDaysPerWeek,
		PreferredDays:        req.PreferredDays,
	})
	if err != nil {
		s.writeJournalError(w, "save schedule", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduleRequest{
		ScheduledDaysPerWeek: plan.ScheduledDaysPerWeek,
		PreferredDays:        plan.PreferredDays,
	})
}

func (s *Server) logSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.journalUser(w, r)
	if !ok {
		return
	}
	var session models.WorkoutSessionSummary
	if !s.decode(w, r, &session) {
		return
	}
	saved, err := s.svc.LogSession(r.Context(), userID, s.now(), session)
	if err != nil {
		s.writeJournalError(w, "log session", userID, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// journalUser checks that storage is configured and returns the user id from the path
func (s *Server) journalUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	if s.svc == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("user storage is not configured"))
		return 0, false
	}
	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid user id: %w", err))
		return 0, false
	}
	return userID, true
}

func (s *Server) writeJournalError(w http.ResponseWriter, op string, userID int, err error) {
	var verr models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Errorf("user %d not found", userID))
	default:
		s.log.Error(op, "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}
