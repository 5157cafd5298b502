package api

import (
	"time"

	"dailycoach/internal/engine"
	"dailycoach/internal/models"
)

type decisionRequest struct {
	State           models.DailyState      `json:"state"`
	Schedule        models.ScheduleContext `json:"schedule"`
	ExperienceLevel models.ExperienceLevel `json:"experience_level"`
}

type prioritiesRequest struct {
	IsWorkoutDay         bool    `json:"is_workout_day"`
	HydrationProgressPct float64 `json:"hydration_progress_pct"`
	MealsCompleted       int     `json:"meals_completed"`
	TotalMeals           int     `json:"total_meals"`
	SupplementsTaken     int     `json:"supplements_taken"`
	TotalSupplements     int     `json:"total_supplements"`
	SleepQuality         int     `json:"sleep_quality"`
	StressLevel          int     `json:"stress_level"`
}

func (r prioritiesRequest) input() engine.PriorityInput {
	return engine.PriorityInput{
		IsWorkoutDay:         r.IsWorkoutDay,
		HydrationProgressPct: r.HydrationProgressPct,
		MealsCompleted:       r.MealsCompleted,
		TotalMeals:           r.TotalMeals,
		SupplementsTaken:     r.SupplementsTaken,
		TotalSupplements:     r.TotalSupplements,
		SleepQuality:         r.SleepQuality,
		StressLevel:          r.StressLevel,
	}
}

type alertsRequest struct {
	Now                   time.Time                          `json:"now"`
	FitnessGoal           models.FitnessGoal                 `json:"fitness_goal"`
	ScheduledDaysPerWeek  int                                `json:"scheduled_days_per_week"`
	Sessions              []models.WorkoutSessionSummary     `json:"sessions"`
	Progressions          []models.ExerciseProgressionRecord `json:"progressions"`
	TodayProteinGrams     float64                            `json:"today_protein_grams"`
	TargetProteinGrams    float64                            `json:"target_protein_grams"`
	TodayHydrationLiters  float64                            `json:"today_hydration_liters"`
	TargetHydrationLiters float64                            `json:"target_hydration_liters"`
	CurrentWeightKg       float64                            `json:"current_weight_kg"`
	PreviousWeightKg      *float64                           `json:"previous_weight_kg,omitempty"`
}

func (r alertsRequest) input(now time.Time) engine.AlertInput {
	if r.Now.IsZero() {
		r.Now = now
	}
	return engine.AlertInput{
		Now:                   r.Now,
		Goal:                  r.FitnessGoal,
		ScheduledDaysPerWeek:  r.ScheduledDaysPerWeek,
		Sessions:              r.Sessions,
		Progressions:          r.Progressions,
		TodayProteinGrams:     r.TodayProteinGrams,
		TargetProteinGrams:    r.TargetProteinGrams,
		TodayHydrationLiters:  r.TodayHydrationLiters,
		TargetHydrationLiters: r.TargetHydrationLiters,
		CurrentWeightKg:       r.CurrentWeightKg,
		PreviousWeightKg:      r.PreviousWeightKg,
	}
}

type macrosRequest struct {
	Profile       models.UserProfile `json:"profile"`
	IsTrainingDay bool               `json:"is_training_day"`
}

type macrosResponse struct {
	Macros      models.MacroTargets    `json:"macros"`
	Hydration   models.HydrationTarget `json:"hydration"`
	Adjustments []engine.Adjustment    `json:"adjustments,omitempty"`
}

type waterRequest struct {
	Liters float64 `json:"liters"`
}

type weightRequest struct {
	WeightKg float64 `json:"weight_kg"`
}

type scheduleRequest struct {
	ScheduledDaysPerWeek int   `json:"scheduled_days_per_week"`
	PreferredDays        []int `json:"preferred_days"`
}
