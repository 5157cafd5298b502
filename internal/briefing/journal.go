package briefing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"dailycoach/internal/engine"
	"dailycoach/internal/models"
	"dailycoach/internal/repository"
)

// MaxWaterPerLog caps a single water entry
const MaxWaterPerLog = 5.0

// SaveCheckin stores today's check-in. Out-of-range values are clamped the way
// the engine would clamp them and logged.
func (s *Service) SaveCheckin(ctx context.Context, userID int, now time.Time, state models.DailyState) (models.DailyState, error) {
	if err := s.requireUser(ctx, userID, now); err != nil {
		return models.DailyState{}, err
	}

	state, adj := engine.NormalizeDailyState(state)
	s.logAdjustments(userID, adj)

	if err := s.stores.Checkins.Save(ctx, userID, now, state); err != nil {
		return models.DailyState{}, fmt.Errorf("save check-in: %w", err)
	}
	s.log.Info("check-in saved", "user_id", userID, "sleep_hours", state.SleepHours)
	return state, nil
}

// LogWater adds liters to today's hydration
func (s *Service) LogWater(ctx context.Context, userID int, now time.Time, liters float64) error {
	if !(liters > 0) || liters > MaxWaterPerLog {
		return models.ValidationError{
			Field:   "liters",
			Message: fmt.Sprintf("liters must be in (0, %.0f], got %v", MaxWaterPerLog, liters),
		}
	}
	if err := s.requireUser(ctx, userID, now); err != nil {
		return err
	}
	if err := s.stores.Nutrition.AddWater(ctx, userID, now, liters); err != nil {
		return fmt.Errorf("add water: %w", err)
	}
	return nil
}

// LogWeight records a weight sample and makes it the profile weight.
// The previous sample then drives the weight change alert.
func (s *Service) LogWeight(ctx context.Context, userID int, now time.Time, weightKg float64) error {
	if !(weightKg >= engine.MinWeightKg && weightKg <= engine.MaxWeightKg) {
		return models.ValidationError{
			Field:   "weight_kg",
			Message: fmt.Sprintf("weight must be between %.0f and %.0f kg, got %v", engine.MinWeightKg, engine.MaxWeightKg, weightKg),
		}
	}
	if err := s.requireUser(ctx, userID, now); err != nil {
		return err
	}
	if err := s.stores.Weights.Record(ctx, userID, weightKg, now); err != nil {
		return fmt.Errorf("record weight: %w", err)
	}
	if err := s.stores.Users.UpdateWeight(ctx, userID, weightKg); err != nil {
		return fmt.Errorf("update profile weight: %w", err)
	}
	s.log.Info("weight logged", "user_id", userID, "weight_kg", weightKg)
	return nil
}

// SaveSchedule replaces the weekly plan. Preferred days use time.Weekday numbering
// and are stored sorted without duplicates.
func (s *Service) SaveSchedule(ctx context.Context, userID int, now time.Time, plan repository.WeeklySchedule) (repository.WeeklySchedule, error) {
	if plan.ScheduledDaysPerWeek < 0 || plan.ScheduledDaysPerWeek > engine.MaxDaysWeek {
		return repository.WeeklySchedule{}, models.ValidationError{
			Field:   "scheduled_days_per_week",
			Message: fmt.Sprintf("scheduled_days_per_week must be 0-7, got %d", plan.ScheduledDaysPerWeek),
		}
	}

	seen := make(map[int]bool, len(plan.PreferredDays))
	days := make([]int, 0, len(plan.PreferredDays))
	for _, d := range plan.PreferredDays {
		if d < int(time.Sunday) || d > int(time.Saturday) {
			return repository.WeeklySchedule{}, models.ValidationError{
				Field:   "preferred_days",
				Message: fmt.Sprintf("preferred day %d is not a weekday (0=Sunday..6=Saturday)", d),
			}
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Ints(days)
	plan.PreferredDays = days

	if err := s.requireUser(ctx, userID, now); err != nil {
		return repository.WeeklySchedule{}, err
	}
	if err := s.stores.Schedules.Save(ctx, userID, plan); err != nil {
		return repository.WeeklySchedule{}, fmt.Errorf("save schedule: %w", err)
	}
	return plan, nil
}

// LogSession stores a planned or completed workout. A missing ID gets a UUID,
// a missing date becomes now.
func (s *Service) LogSession(ctx context.Context, userID int, now time.Time, session models.WorkoutSessionSummary) (models.WorkoutSessionSummary, error) {
	if err := models.ValidateHistory([]models.WorkoutSessionSummary{session}, nil); err != nil {
		return models.WorkoutSessionSummary{}, err
	}
	if session.CompletedAt != nil && session.CompletedAt.After(now) {
		return models.WorkoutSessionSummary{}, models.ValidationError{
			Field:   "completed_at",
			Message: "completed_at is in the future",
		}
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Date.IsZero() {
		session.Date = now
	}

	if err := s.requireUser(ctx, userID, now); err != nil {
		return models.WorkoutSessionSummary{}, err
	}
	if err := s.stores.Workouts.SaveSession(ctx, userID, session); err != nil {
		return models.WorkoutSessionSummary{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// requireUser returns repository.ErrNotFound for unknown users
func (s *Service) requireUser(ctx context.Context, userID int, now time.Time) error {
	if _, err := s.stores.Users.GetByID(ctx, userID, now); err != nil {
		return fmt.Errorf("load profile %d: %w", userID, err)
	}
	return nil
}

func (s *Service) logAdjustments(userID int, adj []engine.Adjustment) {
	for _, a := range adj {
		s.log.Warn("input clamped",
			"user_id", userID,
			"field", a.Field,
			"from", a.From,
			"to", a.To,
		)
	}
}
