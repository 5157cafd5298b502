package models

import "time"

// DailyState is the user's self-reported check-in for the day
type DailyState struct {
	SleepHours    float64 `json:"sleep_hours" yaml:"sleep_hours"`
	SleepQuality  int     `json:"sleep_quality" yaml:"sleep_quality"`   // 1-10
	StressLevel   int     `json:"stress_level" yaml:"stress_level"`     // 1-10
	SorenessLevel int     `json:"soreness_level" yaml:"soreness_level"` // 1-10
	EnergyLevel   int     `json:"energy_level" yaml:"energy_level"`     // 1-10, not used by decisions yet
}

// ScheduleContext describes where today sits in the user's training week
type ScheduleContext struct {
	IsScheduledWorkoutDay  bool `json:"is_scheduled_workout_day" yaml:"is_scheduled_workout_day"`
	DaysSinceLastWorkout   int  `json:"days_since_last_workout" yaml:"days_since_last_workout"`
	ConsecutiveWorkoutDays int  `json:"consecutive_workout_days" yaml:"consecutive_workout_days"`
	ScheduledDaysPerWeek   int  `json:"scheduled_days_per_week" yaml:"scheduled_days_per_week"` // 0-7
}

// UserProfile holds the body and goal data the engine needs
type UserProfile struct {
	ID              int             `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	TelegramChatID  int64           `json:"telegram_chat_id,omitempty" yaml:"telegram_chat_id,omitempty"`
	WeightKg        float64         `json:"weight_kg" yaml:"weight_kg"`
	HeightCm        float64         `json:"height_cm" yaml:"height_cm"`
	Age             int             `json:"age" yaml:"age"`
	Gender          Gender          `json:"gender" yaml:"gender"`
	FitnessGoal     FitnessGoal     `json:"fitness_goal" yaml:"fitness_goal"`
	ExperienceLevel ExperienceLevel `json:"experience_level" yaml:"experience_level"`
	BodyFatPercent  *float64        `json:"body_fat_percent,omitempty" yaml:"body_fat_percent,omitempty"`
	Language        string          `json:"language,omitempty" yaml:"language,omitempty"` // "en" or "ru"
}

// TrainingDecision is the engine's recommendation for today's training
type TrainingDecision struct {
	ShouldTrain       bool           `json:"should_train"`
	Recommendation    Recommendation `json:"recommendation"`
	Reason            string         `json:"reason"`
	IntensityModifier float64        `json:"intensity_modifier"` // 0.0-1.2
	SuggestedFocus    string         `json:"suggested_focus,omitempty"`
	Readiness         float64        `json:"readiness"`
	Rule              string         `json:"rule"` // name of the rule that fired
}

// DailyPriority is one row of the three-slot checklist
type DailyPriority struct {
	Order       int              `json:"order"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    PriorityCategory `json:"category"`
	Icon        string           `json:"icon"`
	Completed   bool             `json:"completed"`
}

// MacroTargets are daily calorie and macro-nutrient targets
type MacroTargets struct {
	Calories     int `json:"calories"`
	ProteinGrams int `json:"protein_grams"`
	CarbsGrams   int `json:"carbs_grams"`
	FatGrams     int `json:"fat_grams"`
}

// HydrationTarget is the daily water target
type HydrationTarget struct {
	DailyLiters float64 `json:"daily_liters"`
}

// ExerciseProgressionRecord is per-exercise load history owned by the workout store
type ExerciseProgressionRecord struct {
	ExerciseID                    int      `json:"exercise_id" yaml:"exercise_id"`
	ExerciseName                  string   `json:"exercise_name" yaml:"exercise_name"`
	FunctionalMaxKg               float64  `json:"functional_max_kg" yaml:"functional_max_kg"`
	ConsecutiveSuccessfulSessions int      `json:"consecutive_successful_sessions" yaml:"consecutive_successful_sessions"`
	LastFeeling                   *Feeling `json:"last_feeling,omitempty" yaml:"last_feeling,omitempty"`
	ShouldProgress                bool     `json:"should_progress" yaml:"should_progress"`
}

// WorkoutSessionSummary is a single planned or completed workout
type WorkoutSessionSummary struct {
	ID          string     `json:"id" yaml:"id"`
	Date        time.Time  `json:"date" yaml:"date"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Feeling     *Feeling   `json:"feeling,omitempty" yaml:"feeling,omitempty"`
}

// NutritionProgress is today's intake against targets
type NutritionProgress struct {
	ProteinGrams       float64 `json:"protein_grams" yaml:"protein_grams"`
	TargetProteinGrams float64 `json:"target_protein_grams" yaml:"target_protein_grams"`
	HydrationLiters    float64 `json:"hydration_liters" yaml:"hydration_liters"`
	TargetLiters       float64 `json:"target_liters" yaml:"target_liters"`
	MealsCompleted     int     `json:"meals_completed" yaml:"meals_completed"`
	TotalMeals         int     `json:"total_meals" yaml:"total_meals"`
	SupplementsTaken   int     `json:"supplements_taken" yaml:"supplements_taken"`
	TotalSupplements   int     `json:"total_supplements" yaml:"total_supplements"`
}

// WeightSample is one entry of the weight log
type WeightSample struct {
	WeightKg   float64   `json:"weight_kg" yaml:"weight_kg"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}
