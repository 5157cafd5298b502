package models

// FitnessGoal is the user's long-term body composition goal
type FitnessGoal string

const (
	GoalMuscleGain    FitnessGoal = "muscle_gain"
	GoalFatLoss       FitnessGoal = "fat_loss"
	GoalRecomposition FitnessGoal = "recomposition"
	GoalMaintenance   FitnessGoal = "maintenance"
)

// Valid reports whether g is one of the known goals
func (g FitnessGoal) Valid() bool {
	switch g {
	case GoalMuscleGain, GoalFatLoss, GoalRecomposition, GoalMaintenance:
		return true
	}
	return false
}

// ExperienceLevel is the user's training experience
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Valid reports whether e is one of the known levels
func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Recommendation is the training outcome for the day
type Recommendation string

const (
	RecommendFullWorkout    Recommendation = "full_workout"
	RecommendLightWorkout   Recommendation = "light_workout"
	RecommendActiveRecovery Recommendation = "active_recovery"
	RecommendRest           Recommendation = "rest"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendFullWorkout, RecommendLightWorkout, RecommendActiveRecovery, RecommendRest:
		return true
	}
	return false
}

// IsTraining reports whether the recommendation involves an actual workout
func (r Recommendation) IsTraining() bool {
	switch r {
	case RecommendFullWorkout, RecommendLightWorkout:
		return true
	case RecommendActiveRecovery, RecommendRest:
		return false
	}
	return false
}

// PriorityCategory groups daily priorities for the checklist widget
type PriorityCategory string

const (
	CategoryTraining    PriorityCategory = "training"
	CategoryNutrition   PriorityCategory = "nutrition"
	CategoryHydration   PriorityCategory = "hydration"
	CategorySupplements PriorityCategory = "supplements"
	CategoryRecovery    PriorityCategory = "recovery"
	CategoryMindset     PriorityCategory = "mindset"
)

func (c PriorityCategory) Valid() bool {
	switch c {
	case CategoryTraining, CategoryNutrition, CategoryHydration,
		CategorySupplements, CategoryRecovery, CategoryMindset:
		return true
	}
	return false
}

// Feeling is how a session or exercise felt to the user
type Feeling string

const (
	FeelingEasy    Feeling = "easy"
	FeelingCorrect Feeling = "correct"
	FeelingHard    Feeling = "hard"
)

func (f Feeling) Valid() bool {
	switch f {
	case FeelingEasy, FeelingCorrect, FeelingHard:
		return true
	}
	return false
}

// FeelingPtr returns a pointer to f, handy for optional fields
func FeelingPtr(f Feeling) *Feeling {
	return &f
}

// AlertType identifies which detector produced an alert
type AlertType string

const (
	AlertStagnation   AlertType = "stagnation"
	AlertConsistency  AlertType = "consistency"
	AlertFatigue      AlertType = "fatigue"
	AlertNutrition    AlertType = "nutrition"
	AlertProgress     AlertType = "progress"
	AlertHydration    AlertType = "hydration"
	AlertWeightChange AlertType = "weight_change"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertStagnation, AlertConsistency, AlertFatigue, AlertNutrition,
		AlertProgress, AlertHydration, AlertWeightChange:
		return true
	}
	return false
}

// AlertPriority orders alerts in the banner list
type AlertPriority string

const (
	PriorityHigh   AlertPriority = "high"
	PriorityMedium AlertPriority = "medium"
	PriorityLow    AlertPriority = "low"
)

func (p AlertPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort key of p: high sorts first.
// Unknown priorities sort after low.
func (p AlertPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// AlertColor is the banner color hint for the UI
type AlertColor string

const (
	ColorRed    AlertColor = "red"
	ColorOrange AlertColor = "orange"
	ColorYellow AlertColor = "yellow"
	ColorGreen  AlertColor = "green"
	ColorBlue   AlertColor = "blue"
	ColorPurple AlertColor = "purple"
)

func (c AlertColor) Valid() bool {
	switch c {
	case ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple:
		return true
	}
	return false
}
