package engine

import (
	"fmt"
	"math"

	"dailycoach/internal/models"
)

// PriorityInput is today's completion state used to fill the checklist
type PriorityInput struct {
	IsWorkoutDay         bool
	HydrationProgressPct float64
	MealsCompleted       int
	TotalMeals           int
	SupplementsTaken     int
	TotalSupplements     int
	SleepQuality         int
	StressLevel          int
}

// Thresholds for the checklist
const (
	PoorSleepQuality      = 6
	LowHydrationPct       = 50.0
	HighStressForPriority = 7
)

// FocusRule is one candidate for the third checklist slot
type FocusRule struct {
	Name  string
	When  func(in PriorityInput) bool
	Build func(in PriorityInput) models.DailyPriority
}

// FocusRules fills slot 3. First match wins; the last rule always matches.
var FocusRules = []FocusRule{
	{
		Name: "hydration",
		When: func(in PriorityInput) bool { return in.HydrationProgressPct < LowHydrationPct },
		Build: func(in PriorityInput) models.DailyPriority {
			return models.DailyPriority{
				Title:       "Drink more water",
				Description: fmt.Sprintf("You are at %.0f%% of your hydration goal. Have a glass of water now.", in.HydrationProgressPct),
				Category:    models.CategoryHydration,
				Icon:        "droplet",
			}
		},
	},
	{
		Name: "supplements",
		When: func(in PriorityInput) bool { return in.SupplementsTaken < in.TotalSupplements },
		Build: func(in PriorityInput) models.DailyPriority {
			return models.DailyPriority{
				Title:       "Take your supplements",
				Description: fmt.Sprintf("%d of %d supplements taken today.", in.SupplementsTaken, in.TotalSupplements),
				Category:    models.CategorySupplements,
				Icon:        "pill",
			}
		},
	},
	{
		Name: "stress",
		When: func(in PriorityInput) bool { return in.StressLevel >= HighStressForPriority },
		Build: func(PriorityInput) models.DailyPriority {
			return models.DailyPriority{
				Title:       "Manage your stress",
				Description: "Your stress is high today. Take 10 minutes for breathing exercises or a short walk.",
				Category:    models.CategoryMindset,
				Icon:        "brain",
			}
		},
	},
	{
		Name: "consistency",
		When: func(PriorityInput) bool { return true },
		Build: func(PriorityInput) models.DailyPriority {
			return models.DailyPriority{
				Title:       "Stay consistent",
				Description: "Everything is on track today. Showing up every day is what builds results.",
				Category:    models.CategoryMindset,
				Icon:        "trophy",
				Completed:   true,
			}
		},
	},
}

func normalizePriorityInput(in PriorityInput) PriorityInput {
	var adj adjustments
	in.HydrationProgressPct = adj.clampFloat("hydration_progress_pct", in.HydrationProgressPct, 0, math.MaxFloat64)
	in.MealsCompleted = adj.clampInt("meals_completed", in.MealsCompleted, 0, math.MaxInt32)
	in.TotalMeals = adj.clampInt("total_meals", in.TotalMeals, 0, math.MaxInt32)
	in.SupplementsTaken = adj.clampInt("supplements_taken", in.SupplementsTaken, 0, math.MaxInt32)
	in.TotalSupplements = adj.clampInt("total_supplements", in.TotalSupplements, 0, math.MaxInt32)
	in.SleepQuality = adj.clampInt("sleep_quality", in.SleepQuality, MinLevel, MaxLevel)
	in.StressLevel = adj.clampInt("stress_level", in.StressLevel, MinLevel, MaxLevel)
	return in
}

// GeneratePriorities returns the three checklist items for today:
// training or recovery, nutrition, and one focus item from FocusRules.
func GeneratePriorities(in PriorityInput) [3]models.DailyPriority {
	in = normalizePriorityInput(in)

	priorities := [3]models.DailyPriority{
		trainingPriority(in),
		nutritionPriority(in),
		focusPriority(in),
	}
	for i := range priorities {
		priorities[i].Order = i + 1
	}
	return priorities
}

func trainingPriority(in PriorityInput) models.DailyPriority {
	if in.IsWorkoutDay {
		return models.DailyPriority{
			Title:       "Complete today's workout",
			Description: "Follow your plan and log every set.",
			Category:    models.CategoryTraining,
			Icon:        "dumbbell",
		}
	}

	desc := "Go for a walk, stretch and let your body recover."
	if in.SleepQuality < PoorSleepQuality {
		desc = "Your sleep was poor. Prioritize an early night and aim for 8 hours."
	}
	return models.DailyPriority{
		Title:       "Recovery day",
		Description: desc,
		Category:    models.CategoryRecovery,
		Icon:        "bed",
	}
}

func nutritionPriority(in PriorityInput) models.DailyPriority {
	progress := ratio(float64(in.MealsCompleted), float64(in.TotalMeals))
	if progress < 1 {
		return models.DailyPriority{
			Title:       "Hit your nutrition targets",
			Description: fmt.Sprintf("%d of %d meals logged. Keep going.", in.MealsCompleted, in.TotalMeals),
			Category:    models.CategoryNutrition,
			Icon:        "utensils",
		}
	}
	return models.DailyPriority{
		Title:       "Nutrition on track",
		Description: fmt.Sprintf("All %d meals logged today. Great job!", in.TotalMeals),
		Category:    models.CategoryNutrition,
		Icon:        "check-circle",
		Completed:   true,
	}
}

func focusPriority(in PriorityInput) models.DailyPriority {
	for _, rule := range FocusRules {
		if rule.When(in) {
			return rule.Build(in)
		}
	}
	return FocusRules[len(FocusRules)-1].Build(in)
}
