// Package briefing assembles a user's day from the stores and runs the engine over it.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailycoach/internal/dismissal"
	"dailycoach/internal/engine"
	"dailycoach/internal/models"
	"dailycoach/internal/platform/logger"
	"dailycoach/internal/repository"
)

// ErrNoCheckin is returned when the user has not reported today's state yet
var ErrNoCheckin = errors.New("no check-in for today")

// historyWindow is how far back sessions are loaded
const historyWindow = 28 * 24 * time.Hour

type UserStore interface {
	GetByID(ctx context.Context, id int, now time.Time) (*models.UserProfile, error)
	ListActive(ctx context.Context, now time.Time) ([]models.UserProfile, error)
	UpdateWeight(ctx context.Context, id int, weightKg float64) error
}

type CheckinStore interface {
	GetForDay(ctx context.Context, userID int, day time.Time) (*models.DailyState, error)
	Save(ctx context.Context, userID int, day time.Time, s models.DailyState) error
}

type ScheduleStore interface {
	Get(ctx context.Context, userID int) (*repository.WeeklySchedule, error)
	Save(ctx context.Context, userID int, ws repository.WeeklySchedule) error
}

type WorkoutStore interface {
	SessionsSince(ctx context.Context, userID int, since time.Time) ([]models.WorkoutSessionSummary, error)
	LastCompleted(ctx context.Context, userID int) (*time.Time, error)
	Progressions(ctx context.Context, userID int) ([]models.ExerciseProgressionRecord, error)
	SaveSession(ctx context.Context, userID int, s models.WorkoutSessionSummary) error
}

type NutritionStore interface {
	GetForDay(ctx context.Context, userID int, day time.Time) (*models.NutritionProgress, error)
	AddWater(ctx context.Context, userID int, day time.Time, liters float64) error
}

type WeightStore interface {
	Latest(ctx context.Context, userID, limit int) ([]models.WeightSample, error)
	Record(ctx context.Context, userID int, weightKg float64, at time.Time) error
}

// Stores groups the sources of a snapshot and the journals that feed them
type Stores struct {
	Users     UserStore
	Checkins  CheckinStore
	Schedules ScheduleStore
	Workouts  WorkoutStore
	Nutrition NutritionStore
	Weights   WeightStore
}

// StoresFromRepository wires the Postgres repositories
func StoresFromRepository(repo *repository.Repository) Stores {
	return Stores{
		Users:     repo.User,
		Checkins:  repo.Checkin,
		Schedules: repo.Schedule,
		Workouts:  repo.Workout,
		Nutrition: repo.Nutrition,
		Weights:   repo.Weight,
	}
}

// Service builds briefings for stored users
type Service struct {
	stores    Stores
	alerts    *engine.AlertEngine
	dismissed dismissal.Store
	log       *logger.Logger
}

// NewService создаёт сервис сводок
func NewService(stores Stores, alerts *engine.AlertEngine, dismissed dismissal.Store, log *logger.Logger) *Service {
	if alerts == nil {
		alerts = engine.NewAlertEngine()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{stores: stores, alerts: alerts, dismissed: dismissed, log: log}
}

// Snapshot loads everything the engine needs for userID on now's day
func (s *Service) Snapshot(ctx context.Context, userID int, now time.Time) (engine.Snapshot, error) {
	profile, err := s.stores.Users.GetByID(ctx, userID, now)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load profile %d: %w", userID, err)
	}
	return s.snapshotFor(ctx, *profile, now)
}

func (s *Service) snapshotFor(ctx context.Context, profile models.UserProfile, now time.Time) (engine.Snapshot, error) {
	state, err := s.stores.Checkins.GetForDay(ctx, profile.ID, now)
	if errors.Is(err, repository.ErrNotFound) {
		return engine.Snapshot{}, ErrNoCheckin
	}
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load check-in: %w", err)
	}

	plan, err := s.stores.Schedules.Get(ctx, profile.ID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load schedule: %w", err)
	}

	sessions, err := s.stores.Workouts.SessionsSince(ctx, profile.ID, now.Add(-historyWindow))
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load sessions: %w", err)
	}

	progressions, err := s.stores.Workouts.Progressions(ctx, profile.ID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load progressions: %w", err)
	}

	nutrition, err := s.stores.Nutrition.GetForDay(ctx, profile.ID, now)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load nutrition: %w", err)
	}

	schedule := DeriveSchedule(now, *plan, sessions)
	if !hasCompleted(sessions) {
		// последняя тренировка могла быть раньше окна истории
		last, err := s.stores.Workouts.LastCompleted(ctx, profile.ID)
		if err != nil {
			return engine.Snapshot{}, fmt.Errorf("load last workout: %w", err)
		}
		if last != nil {
			schedule = DeriveSchedule(now, *plan, []models.WorkoutSessionSummary{{CompletedAt: last}})
		}
	}

	weights, err := s.stores.Weights.Latest(ctx, profile.ID, 2)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load weight log: %w", err)
	}

	snap := engine.Snapshot{
		Now:          now,
		Profile:      profile,
		State:        *state,
		Schedule:     schedule,
		Nutrition:    *nutrition,
		Sessions:     sessions,
		Progressions: progressions,
	}
	if len(weights) > 0 {
		snap.Profile.WeightKg = weights[0].WeightKg
	}
	if len(weights) > 1 {
		prev := weights[1].WeightKg
		snap.PreviousWeightKg = &prev
	}
	return snap, nil
}

// Build runs the engine over snap and hides alerts the user dismissed
func (s *Service) Build(ctx context.Context, snap engine.Snapshot) engine.Briefing {
	var filters []engine.AlertFilter
	if s.dismissed != nil {
		hidden, err := s.dismissed.Active(ctx, snap.Profile.ID, snap.Now)
		if err != nil {
			// без Redis показываем все алерты
			s.log.Warn("dismissed alerts unavailable", "user_id", snap.Profile.ID, "error", err)
		} else if len(hidden) > 0 {
			filters = append(filters, func(a models.ProactiveAlert) bool { return !hidden[a.Key] })
		}
	}

	b := engine.BuildBriefing(snap, s.alerts, filters...)
	s.logAdjustments(b.UserID, b.Adjustments)
	s.log.Debug("briefing built",
		"user_id", b.UserID,
		"recommendation", b.Decision.Recommendation,
		"rule", b.Decision.Rule,
		"alerts", len(b.Alerts),
	)
	return b
}

// BuildForUser loads the snapshot of userID and builds its briefing
func (s *Service) BuildForUser(ctx context.Context, userID int, now time.Time) (engine.Briefing, error) {
	snap, err := s.Snapshot(ctx, userID, now)
	if err != nil {
		return engine.Briefing{}, err
	}
	return s.Build(ctx, snap), nil
}

// Dismiss hides an alert key for the user
func (s *Service) Dismiss(ctx context.Context, userID int, key string, now time.Time) error {
	if s.dismissed == nil {
		return errors.New("dismissal store is not configured")
	}
	return s.dismissed.Dismiss(ctx, userID, key, now)
}

// ForEachActive builds a briefing for every active user and passes it to fn.
// Users without today's check-in are skipped. Errors from fn are logged and do not stop the loop.
func (s *Service) ForEachActive(ctx context.Context, now time.Time, fn func(models.UserProfile, engine.Briefing) error) error {
	users, err := s.stores.Users.ListActive(ctx, now)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap, err := s.snapshotFor(ctx, u, now)
		if errors.Is(err, ErrNoCheckin) {
			s.log.Info("skip user without check-in", "user_id", u.ID)
			continue
		}
		if err != nil {
			s.log.Error("load snapshot", "user_id", u.ID, "error", err)
			continue
		}
		if err := fn(u, s.Build(ctx, snap)); err != nil {
			s.log.Error("handle briefing", "user_id", u.ID, "error", err)
		}
	}
	return nil
}
