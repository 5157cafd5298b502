package engine

import (
	"time"

	"dailycoach/internal/models"
)

// Snapshot is everything known about a user for one day
type Snapshot struct {
	Now              time.Time                          `json:"now" yaml:"now"`
	Profile          models.UserProfile                 `json:"profile" yaml:"profile"`
	State            models.DailyState                  `json:"state" yaml:"state"`
	Schedule         models.ScheduleContext             `json:"schedule" yaml:"schedule"`
	Nutrition        models.NutritionProgress           `json:"nutrition" yaml:"nutrition"`
	Sessions         []models.WorkoutSessionSummary     `json:"sessions" yaml:"sessions"`
	Progressions     []models.ExerciseProgressionRecord `json:"progressions" yaml:"progressions"`
	PreviousWeightKg *float64                           `json:"previous_weight_kg,omitempty" yaml:"previous_weight_kg,omitempty"`
}

// Briefing is the full daily output for one user
type Briefing struct {
	UserID      int                     `json:"user_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Decision    models.TrainingDecision `json:"decision"`
	Macros      models.MacroTargets     `json:"macros"`
	Hydration   models.HydrationTarget  `json:"hydration"`
	Priorities  [3]models.DailyPriority `json:"priorities"`
	Alerts      []models.ProactiveAlert `json:"alerts"`
	Adjustments []Adjustment            `json:"adjustments,omitempty"`
}

// AlertFilter reports whether an alert should be kept
type AlertFilter func(models.ProactiveAlert) bool

// BuildBriefing runs the whole engine over one snapshot.
// Filters are applied to the ranked alerts before they are cut to MaxAlerts.
func BuildBriefing(snap Snapshot, alerts *AlertEngine, filters ...AlertFilter) Briefing {
	if alerts == nil {
		alerts = NewAlertEngine()
	}

	var adj []Adjustment
	profile, a := NormalizeProfile(snap.Profile)
	adj = append(adj, a...)
	state, a := NormalizeDailyState(snap.State)
	adj = append(adj, a...)
	schedule, a := NormalizeSchedule(snap.Schedule)
	adj = append(adj, a...)
	nutrition, a := NormalizeNutrition(snap.Nutrition)
	adj = append(adj, a...)

	decision := Decide(state, schedule, profile.ExperienceLevel)
	macros := RecommendMacros(MacroInputFromProfile(profile, decision.ShouldTrain))
	hydration := RecommendHydration(profile.WeightKg, profile.HeightCm, profile.FitnessGoal)

	targetProtein := nutrition.TargetProteinGrams
	if targetProtein <= 0 {
		targetProtein = float64(macros.ProteinGrams)
	}
	targetLiters := nutrition.TargetLiters
	if targetLiters <= 0 {
		targetLiters = hydration.DailyLiters
	}

	priorities := GeneratePriorities(PriorityInput{
		IsWorkoutDay:         decision.ShouldTrain,
		HydrationProgressPct: ratio(nutrition.HydrationLiters, targetLiters) * 100,
		MealsCompleted:       nutrition.MealsCompleted,
		TotalMeals:           nutrition.TotalMeals,
		SupplementsTaken:     nutrition.SupplementsTaken,
		TotalSupplements:     nutrition.TotalSupplements,
		SleepQuality:         state.SleepQuality,
		StressLevel:          state.StressLevel,
	})

	alertIn, a := normalizeAlertInput(AlertInput{
		Now:                   snap.Now,
		Goal:                  profile.FitnessGoal,
		ScheduledDaysPerWeek:  schedule.ScheduledDaysPerWeek,
		Sessions:              snap.Sessions,
		Progressions:          snap.Progressions,
		TodayProteinGrams:     nutrition.ProteinGrams,
		TargetProteinGrams:    targetProtein,
		TodayHydrationLiters:  nutrition.HydrationLiters,
		TargetHydrationLiters: targetLiters,
		CurrentWeightKg:       profile.WeightKg,
		PreviousWeightKg:      snap.PreviousWeightKg,
	})
	adj = append(adj, a...)
	ranked := alerts.CollectAlerts(alertIn)

	return Briefing{
		UserID:      snap.Profile.ID,
		GeneratedAt: snap.Now,
		Decision:    decision,
		Macros:      macros,
		Hydration:   hydration,
		Priorities:  priorities,
		Alerts:      TopAlerts(filterAlerts(ranked, filters), MaxAlerts),
		Adjustments: adj,
	}
}

func filterAlerts(alerts []models.ProactiveAlert, filters []AlertFilter) []models.ProactiveAlert {
	if len(filters) == 0 {
		return alerts
	}
	kept := make([]models.ProactiveAlert, 0, len(alerts))
next:
	for _, a := range alerts {
		for _, keep := range filters {
			if !keep(a) {
				continue next
			}
		}
		kept = append(kept, a)
	}
	return kept
}
