// Package api exposes the decision engine over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"dailycoach/internal/briefing"
	"dailycoach/internal/engine"
	"dailycoach/internal/models"
	"dailycoach/internal/platform/logger"
	"dailycoach/internal/repository"
)

const maxBodyBytes = 1 << 20

// BriefingService is the store-backed part of the API
type BriefingService interface {
	Build(ctx context.Context, snap engine.Snapshot) engine.Briefing
	BuildForUser(ctx context.Context, userID int, now time.Time) (engine.Briefing, error)
	Dismiss(ctx context.Context, userID int, key string, now time.Time) error

	SaveCheckin(ctx context.Context, userID int, now time.Time, state models.DailyState) (models.DailyState, error)
	LogWater(ctx context.Context, userID int, now time.Time, liters float64) error
	LogWeight(ctx context.Context, userID int, now time.Time, weightKg float64) error
	SaveSchedule(ctx context.Context, userID int, now time.Time, plan repository.WeeklySchedule) (repository.WeeklySchedule, error)
	LogSession(ctx context.Context, userID int, now time.Time, session models.WorkoutSessionSummary) (models.WorkoutSessionSummary, error)
}

// Server holds the handlers
type Server struct {
	svc    BriefingService
	alerts *engine.AlertEngine
	log    *logger.Logger
	now    func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithAlertEngine sets the engine used by the stateless alerts endpoint
func WithAlertEngine(e *engine.AlertEngine) Option {
	return func(s *Server) { s.alerts = e }
}

// NewServer создаёт HTTP сервер. svc may be nil, then user routes answer 503.
func NewServer(svc BriefingService, log *logger.Logger, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		alerts: engine.NewAlertEngine(),
		log:    log,
		now:    time.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router registers all routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/decision", s.decision).Methods(http.MethodPost)
	api.HandleFunc("/priorities", s.priorities).Methods(http.MethodPost)
	api.HandleFunc("/alerts", s.alertsHandler).Methods(http.MethodPost)
	api.HandleFunc("/macros", s.macros).Methods(http.MethodPost)
	api.HandleFunc("/briefing", s.briefingFromSnapshot).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/briefing", s.userBriefing).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/alerts/{key}/dismiss", s.dismiss).Methods(http.MethodPost)

	// журнал пользователя
	api.HandleFunc("/users/{id:[0-9]+}/checkin", s.saveCheckin).Methods(http.MethodPut)
	api.HandleFunc("/users/{id:[0-9]+}/water", s.logWater).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/weight", s.logWeight).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/schedule", s.saveSchedule).Methods(http.MethodPut)
	api.HandleFunc("/users/{id:[0-9]+}/sessions", s.logSession).Methods(http.MethodPost)

	return r
}

// Handler wraps the router with CORS and request logging
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.logging(s.Router()))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.ExperienceLevel.Valid() {
		writeError(w, http.StatusBadRequest, models.ValidationError{
			Field:   "experience_level",
			Message: fmt.Sprintf("unknown experience level %q", req.ExperienceLevel),
		})
		return
	}
	writeJSON(w, http.StatusOK, engine.Decide(req.State, req.Schedule, req.ExperienceLevel))
}

func (s *Server) priorities(w http.ResponseWriter, r *http.Request) {
	var req prioritiesRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, engine.GeneratePriorities(req.input()))
}

func (s *Server) alertsHandler(w http.ResponseWriter, r *http.Request) {
	var req alertsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.FitnessGoal != "" && !req.FitnessGoal.Valid() {
		writeError(w, http.StatusBadRequest, models.ValidationError{
			Field:   "fitness_goal",
			Message: fmt.Sprintf("unknown fitness goal %q", req.FitnessGoal),
		})
		return
	}
	if err := models.ValidateHistory(req.Sessions, req.Progressions); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.alerts.GetAllAlerts(req.input(s.now())))
}

func (s *Server) macros(w http.ResponseWriter, r *http.Request) {
	var req macrosRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := models.ValidateProfile(req.Profile); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	profile, adj := engine.NormalizeProfile(req.Profile)
	writeJSON(w, http.StatusOK, macrosResponse{
		Macros:      engine.RecommendMacros(engine.MacroInputFromProfile(profile, req.IsTrainingDay)),
		Hydration:   engine.RecommendHydration(profile.WeightKg, profile.HeightCm, profile.FitnessGoal),
		Adjustments: adj,
	})
}

func (s *Server) briefingFromSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap engine.Snapshot
	if !s.decode(w, r, &snap) {
		return
	}
	if err := models.ValidateProfile(snap.Profile); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := models.ValidateHistory(snap.Sessions, snap.Progressions); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if snap.Now.IsZero() {
		snap.Now = s.now()
	}

	if s.svc == nil {
		writeJSON(w, http.StatusOK, engine.BuildBriefing(snap, s.alerts))
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Build(r.Context(), snap))
}

func (s *Server) userBriefing(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("user storage is not configured"))
		return
	}
	userID, _ := strconv.Atoi(mux.Vars(r)["id"])

	b, err := s.svc.BuildForUser(r.Context(), userID, s.now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Errorf("user %d not found", userID))
	case errors.Is(err, briefing.ErrNoCheckin):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		s.log.Error("build briefing", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	default:
		writeJSON(w, http.StatusOK, b)
	}
}

func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("user storage is not configured"))
		return
	}
	vars := mux.Vars(r)
	userID, _ := strconv.Atoi(vars["id"])
	key := vars["key"]

	if err := s.svc.Dismiss(r.Context(), userID, key, s.now()); err != nil {
		s.log.Error("dismiss alert", "user_id", userID, "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body strictly; on failure it writes 400 and returns false
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var verr models.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
