package engine

import (
	"math"

	"dailycoach/internal/models"
)

// Input bounds. Out-of-range values are clamped to the nearest bound rather than
// rejected: the engine gives best-effort advice and never fails the caller.
const (
	MinSleepHours = 0.0
	MaxSleepHours = 24.0
	MinLevel      = 1
	MaxLevel      = 10
	MaxDaysWeek   = 7
	MinWeightKg   = 30.0
	MaxWeightKg   = 300.0
	MinHeightCm   = 120.0
	MaxHeightCm   = 230.0
	MinAge        = 14
	MaxAge        = 90
)

// Adjustment records one clamped input field
type Adjustment struct {
	Field string  `json:"field"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
}

type adjustments []Adjustment

func (a *adjustments) clampFloat(field string, v, lo, hi float64) float64 {
	out := v
	switch {
	case math.IsNaN(v) || v < lo:
		out = lo
	case v > hi:
		out = hi
	}
	if out != v {
		*a = append(*a, Adjustment{Field: field, From: v, To: out})
	}
	return out
}

func (a *adjustments) clampInt(field string, v, lo, hi int) int {
	out := v
	if v < lo {
		out = lo
	} else if v > hi {
		out = hi
	}
	if out != v {
		*a = append(*a, Adjustment{Field: field, From: float64(v), To: float64(out)})
	}
	return out
}

// NormalizeDailyState clamps every field of s into its valid range
func NormalizeDailyState(s models.DailyState) (models.DailyState, []Adjustment) {
	var adj adjustments
	s.SleepHours = adj.clampFloat("sleep_hours", s.SleepHours, MinSleepHours, MaxSleepHours)
	s.SleepQuality = adj.clampInt("sleep_quality", s.SleepQuality, MinLevel, MaxLevel)
	s.StressLevel = adj.clampInt("stress_level", s.StressLevel, MinLevel, MaxLevel)
	s.SorenessLevel = adj.clampInt("soreness_level", s.SorenessLevel, MinLevel, MaxLevel)
	s.EnergyLevel = adj.clampInt("energy_level", s.EnergyLevel, MinLevel, MaxLevel)
	return s, adj
}

// NormalizeSchedule clamps counters to be non-negative and days per week to 0-7
func NormalizeSchedule(c models.ScheduleContext) (models.ScheduleContext, []Adjustment) {
	var adj adjustments
	c.DaysSinceLastWorkout = adj.clampInt("days_since_last_workout", c.DaysSinceLastWorkout, 0, math.MaxInt32)
	c.ConsecutiveWorkoutDays = adj.clampInt("consecutive_workout_days", c.ConsecutiveWorkoutDays, 0, math.MaxInt32)
	c.ScheduledDaysPerWeek = adj.clampInt("scheduled_days_per_week", c.ScheduledDaysPerWeek, 0, MaxDaysWeek)
	return c, adj
}

// NormalizeWeight clamps a body weight into the supported range
func NormalizeWeight(weightKg float64) (float64, []Adjustment) {
	var adj adjustments
	w := adj.clampFloat("weight_kg", weightKg, MinWeightKg, MaxWeightKg)
	return w, adj
}

// NormalizeProfile clamps the numeric body fields of a profile.
// Enum fields are left alone; unknown values fall back to neutral behavior.
func NormalizeProfile(p models.UserProfile) (models.UserProfile, []Adjustment) {
	var adj adjustments
	p.WeightKg = adj.clampFloat("weight_kg", p.WeightKg, MinWeightKg, MaxWeightKg)
	p.HeightCm = adj.clampFloat("height_cm", p.HeightCm, MinHeightCm, MaxHeightCm)
	p.Age = adj.clampInt("age", p.Age, MinAge, MaxAge)
	if p.BodyFatPercent != nil {
		bf := adj.clampFloat("body_fat_percent", *p.BodyFatPercent, 3, 60)
		p.BodyFatPercent = &bf
	}
	return p, adj
}

// NormalizeNutrition clamps today's counters to be non-negative
func NormalizeNutrition(n models.NutritionProgress) (models.NutritionProgress, []Adjustment) {
	var adj adjustments
	n.ProteinGrams = adj.clampFloat("protein_grams", n.ProteinGrams, 0, math.MaxFloat64)
	n.TargetProteinGrams = adj.clampFloat("target_protein_grams", n.TargetProteinGrams, 0, math.MaxFloat64)
	n.HydrationLiters = adj.clampFloat("hydration_liters", n.HydrationLiters, 0, math.MaxFloat64)
	n.TargetLiters = adj.clampFloat("target_liters", n.TargetLiters, 0, math.MaxFloat64)
	n.MealsCompleted = adj.clampInt("meals_completed", n.MealsCompleted, 0, math.MaxInt32)
	n.TotalMeals = adj.clampInt("total_meals", n.TotalMeals, 0, math.MaxInt32)
	n.SupplementsTaken = adj.clampInt("supplements_taken", n.SupplementsTaken, 0, math.MaxInt32)
	n.TotalSupplements = adj.clampInt("total_supplements", n.TotalSupplements, 0, math.MaxInt32)
	return n, adj
}

// normalizeAlertInput clamps the numeric fields detectors read.
// A non-positive weight means "unknown": the current weight stays 0 and the
// previous sample is dropped, so no weight change is reported.
func normalizeAlertInput(in AlertInput) (AlertInput, []Adjustment) {
	var adj adjustments
	in.ScheduledDaysPerWeek = adj.clampInt("scheduled_days_per_week", in.ScheduledDaysPerWeek, 0, MaxDaysWeek)
	in.TodayProteinGrams = adj.clampFloat("protein_grams", in.TodayProteinGrams, 0, math.MaxFloat64)
	in.TargetProteinGrams = adj.clampFloat("target_protein_grams", in.TargetProteinGrams, 0, math.MaxFloat64)
	in.TodayHydrationLiters = adj.clampFloat("hydration_liters", in.TodayHydrationLiters, 0, math.MaxFloat64)
	in.TargetHydrationLiters = adj.clampFloat("target_liters", in.TargetHydrationLiters, 0, math.MaxFloat64)

	if in.CurrentWeightKg > 0 {
		in.CurrentWeightKg = adj.clampFloat("weight_kg", in.CurrentWeightKg, MinWeightKg, MaxWeightKg)
	} else {
		in.CurrentWeightKg = 0
	}
	if in.PreviousWeightKg != nil {
		if prev := *in.PreviousWeightKg; prev > 0 {
			prev = adj.clampFloat("previous_weight_kg", prev, MinWeightKg, MaxWeightKg)
			in.PreviousWeightKg = &prev
		} else {
			in.PreviousWeightKg = nil
		}
	}
	return in, adj
}

// ratio returns part/whole, or 0 when whole is not positive
func ratio(part, whole float64) float64 {
	if whole <= 0 || math.IsNaN(part) {
		return 0
	}
	return part / whole
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
