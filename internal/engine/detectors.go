package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"dailycoach/internal/models"
	"dailycoach/internal/training"
)

// Detector thresholds
const (
	consistencyWindow       = 7 * 24 * time.Hour
	behindScheduleRatio     = 0.5
	minStalledExercises     = 2
	maxNamedExercises       = 3
	nutritionCheckHour      = 12
	nutritionAlertHour      = 14
	proteinBehindRatio      = 0.5
	hydrationCheckHour      = 10
	hydrationAlertHour      = 12
	hydrationBehindRatio    = 0.6
	weightChangeThresholdKg = 0.5
	weightEpsilon           = 1e-9
	fatigueWindow           = 3
	minHardSessionsInWindow = 2
	dayStartHour            = 7
	activeDayHours          = 14
)

// expectedProgress is the share of a daily target that should be reached by hour:
// 0 at 07:00, rising linearly to 1 at 21:00.
func expectedProgress(hour int) float64 {
	return clamp(float64(hour-dayStartHour)/activeDayHours, 0, 1)
}

// DetectConsistency compares completed workouts in the trailing week with the plan
func (e *AlertEngine) DetectConsistency(in AlertInput) []models.ProactiveAlert {
	in, _ = normalizeAlertInput(in)
	if in.ScheduledDaysPerWeek <= 0 {
		return nil
	}

	windowStart := in.Now.Add(-consistencyWindow)
	completed := 0
	for _, s := range in.Sessions {
		if s.CompletedAt == nil {
			continue
		}
		if s.CompletedAt.After(windowStart) && !s.CompletedAt.After(in.Now) {
			completed++
		}
	}

	scheduled := in.ScheduledDaysPerWeek
	r := ratio(float64(completed), float64(scheduled))
	meta := map[string]any{"completed": completed, "scheduled": scheduled, "ratio": r}

	switch {
	case r < behindScheduleRatio:
		return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
			Key:         "consistency-behind",
			Type:        models.AlertConsistency,
			Priority:    models.PriorityHigh,
			Title:       "You're falling behind schedule",
			Description: fmt.Sprintf("You completed %d of %d scheduled workouts this week. A short session today will get you back on track.", completed, scheduled),
			ActionLabel: "Start workout",
			ActionPath:  "/workout",
			Icon:        "calendar-x",
			Color:       models.ColorRed,
			Metadata:    meta,
		})}
	case r >= 1 && completed >= scheduled:
		return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
			Key:         "consistency-perfect",
			Type:        models.AlertConsistency,
			Priority:    models.PriorityLow,
			Title:       "Perfect week!",
			Description: fmt.Sprintf("You completed %d of %d scheduled workouts this week. Keep it up!", completed, scheduled),
			Icon:        "trophy",
			Color:       models.ColorGreen,
			Metadata:    meta,
		})}
	}
	return nil
}

// DetectStagnation flags exercises that keep feeling hard without a successful session
func (e *AlertEngine) DetectStagnation(in AlertInput) []models.ProactiveAlert {
	var stalled []models.ExerciseProgressionRecord
	for _, p := range in.Progressions {
		if p.ConsecutiveSuccessfulSessions == 0 && p.LastFeeling != nil && *p.LastFeeling == models.FeelingHard {
			stalled = append(stalled, p)
		}
	}
	if len(stalled) < minStalledExercises {
		return nil
	}

	names := exerciseNames(stalled)
	return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
		Key:         "stagnation-plateau",
		Type:        models.AlertStagnation,
		Priority:    models.PriorityMedium,
		Title:       "Possible plateau detected",
		Description: fmt.Sprintf("%s felt hard with no successful sessions lately. Consider a lighter week or a technique check.", strings.Join(names, ", ")),
		ActionLabel: "Review progression",
		ActionPath:  "/progress",
		Icon:        "trending-down",
		Color:       models.ColorOrange,
		Metadata:    map[string]any{"exercises": names, "count": len(stalled)},
	})}
}

// DetectProgression flags exercises the history marked as ready for more load
func (e *AlertEngine) DetectProgression(in AlertInput) []models.ProactiveAlert {
	var ready []models.ExerciseProgressionRecord
	for _, p := range in.Progressions {
		if p.ShouldProgress {
			ready = append(ready, p)
		}
	}
	if len(ready) == 0 {
		return nil
	}

	names := exerciseNames(ready)
	nextLoads := make(map[string]float64, len(ready))
	for _, p := range ready {
		if load := training.NextLoad(p.FunctionalMaxKg, training.DefaultStepPercent, training.DefaultIncrementKg); load > 0 {
			nextLoads[p.ExerciseName] = load
		}
	}
	return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
		Key:         "progress-ready",
		Type:        models.AlertProgress,
		Priority:    models.PriorityLow,
		Title:       "Ready to increase the load",
		Description: fmt.Sprintf("%s: you have been consistent. Time to add weight.", strings.Join(names, ", ")),
		ActionLabel: "Open workout",
		ActionPath:  "/workout",
		Icon:        "trending-up",
		Color:       models.ColorGreen,
		Metadata:    map[string]any{"exercises": names, "count": len(ready), "next_loads": nextLoads},
	})}
}

// DetectNutrition warns when protein intake lags behind the time of day.
// Runs from 12:00, alerts from 14:00.
func (e *AlertEngine) DetectNutrition(in AlertInput) []models.ProactiveAlert {
	in, _ = normalizeAlertInput(in)
	hour := in.Now.Hour()
	if hour < nutritionCheckHour || in.TargetProteinGrams <= 0 {
		return nil
	}

	expected := expectedProgress(hour)
	actual := ratio(in.TodayProteinGrams, in.TargetProteinGrams)
	if actual >= expected*proteinBehindRatio || hour < nutritionAlertHour {
		return nil
	}

	deficit := int(math.Round(in.TargetProteinGrams*expected - in.TodayProteinGrams))
	return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
		Key:         "nutrition-protein",
		Type:        models.AlertNutrition,
		Priority:    models.PriorityMedium,
		Title:       "Protein intake is behind",
		Description: fmt.Sprintf("You have had %.0fg of %.0fg protein, about %dg behind for this time of day.", in.TodayProteinGrams, in.TargetProteinGrams, deficit),
		ActionLabel: "Log a meal",
		ActionPath:  "/nutrition",
		Icon:        "utensils",
		Color:       models.ColorYellow,
		Metadata: map[string]any{
			"today_grams":   in.TodayProteinGrams,
			"target_grams":  in.TargetProteinGrams,
			"deficit_grams": deficit,
			"expected":      expected,
		},
	})}
}

// DetectHydration warns when water intake lags behind the time of day.
// Runs from 10:00, alerts from 12:00.
func (e *AlertEngine) DetectHydration(in AlertInput) []models.ProactiveAlert {
	in, _ = normalizeAlertInput(in)
	hour := in.Now.Hour()
	if hour < hydrationCheckHour || in.TargetHydrationLiters <= 0 {
		return nil
	}

	expected := expectedProgress(hour)
	actual := ratio(in.TodayHydrationLiters, in.TargetHydrationLiters)
	if actual >= expected*hydrationBehindRatio || hour < hydrationAlertHour {
		return nil
	}

	remaining := math.Round(math.Max(in.TargetHydrationLiters-in.TodayHydrationLiters, 0)*10) / 10
	return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
		Key:         "hydration-behind",
		Type:        models.AlertHydration,
		Priority:    models.PriorityMedium,
		Title:       "Time to drink water",
		Description: fmt.Sprintf("You still need %.1f L to reach today's goal of %.1f L.", remaining, in.TargetHydrationLiters),
		ActionLabel: "Log water",
		ActionPath:  "/hydration",
		Icon:        "droplet",
		Color:       models.ColorBlue,
		Metadata: map[string]any{
			"today_liters":     in.TodayHydrationLiters,
			"target_liters":    in.TargetHydrationLiters,
			"remaining_liters": remaining,
		},
	})}
}

// DetectWeightChange reports a body weight change of at least 0.5 kg.
// A change in the direction of the goal is low priority, anything else medium.
func (e *AlertEngine) DetectWeightChange(in AlertInput) []models.ProactiveAlert {
	in, _ = normalizeAlertInput(in)
	if in.PreviousWeightKg == nil || *in.PreviousWeightKg <= 0 || in.CurrentWeightKg <= 0 {
		return nil
	}

	previous := *in.PreviousWeightKg
	raw := in.CurrentWeightKg - previous
	if math.Abs(raw) < weightChangeThresholdKg-weightEpsilon {
		return nil
	}
	delta := math.Round(raw*100) / 100

	matchesGoal := (in.Goal == models.GoalMuscleGain && delta > 0) ||
		(in.Goal == models.GoalFatLoss && delta < 0)

	priority, color := models.PriorityMedium, models.ColorOrange
	if matchesGoal {
		priority, color = models.PriorityLow, models.ColorPurple
	}

	direction, title := "gain", fmt.Sprintf("Weight up %.1f kg", delta)
	if delta < 0 {
		direction, title = "loss", fmt.Sprintf("Weight down %.1f kg", -delta)
	}

	return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
		Key:         "weight_change-" + direction,
		Type:        models.AlertWeightChange,
		Priority:    priority,
		Title:       title,
		Description: fmt.Sprintf("Your weight changed from %.1f kg to %.1f kg. Your macro targets were recalculated for the new weight.", previous, in.CurrentWeightKg),
		ActionLabel: "View macros",
		ActionPath:  "/nutrition/macros",
		Icon:        "scale",
		Color:       color,
		Metadata: map[string]any{
			"previous_kg":  previous,
			"current_kg":   in.CurrentWeightKg,
			"delta_kg":     delta,
			"matches_goal": matchesGoal,
		},
	})}
}

// DetectFatigue looks at the three most recent sessions for repeated hard feelings
func (e *AlertEngine) DetectFatigue(in AlertInput) []models.ProactiveAlert {
	if len(in.Sessions) == 0 {
		return nil
	}

	recent := make([]models.WorkoutSessionSummary, len(in.Sessions))
	copy(recent, in.Sessions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > fatigueWindow {
		recent = recent[:fatigueWindow]
	}

	hard := 0
	for _, s := range recent {
		if s.Feeling != nil && *s.Feeling == models.FeelingHard {
			hard++
		}
	}
	if hard < minHardSessionsInWindow {
		return nil
	}

	return []models.ProactiveAlert{e.newAlert(in, models.ProactiveAlert{
		Key:         "fatigue-hard",
		Type:        models.AlertFatigue,
		Priority:    models.PriorityMedium,
		Title:       "Signs of fatigue",
		Description: fmt.Sprintf("%d of your last %d workouts felt hard. Consider adding an extra rest day this week.", hard, len(recent)),
		ActionLabel: "Adjust schedule",
		ActionPath:  "/schedule",
		Icon:        "battery-low",
		Color:       models.ColorOrange,
		Metadata:    map[string]any{"hard_sessions": hard, "window": len(recent)},
	})}
}

func exerciseNames(records []models.ExerciseProgressionRecord) []string {
	n := len(records)
	if n > maxNamedExercises {
		n = maxNamedExercises
	}
	names := make([]string, 0, n)
	for _, r := range records[:n] {
		name := r.ExerciseName
		if name == "" {
			name = fmt.Sprintf("exercise #%d", r.ExerciseID)
		}
		names = append(names, name)
	}
	return names
}
