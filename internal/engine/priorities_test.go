package engine

import (
	"reflect"
	"testing"

	"dailycoach/internal/models"
)

func TestGeneratePriorities_WorkoutDayLowHydration(t *testing.T) {
	got := GeneratePriorities(PriorityInput{
		IsWorkoutDay:         true,
		HydrationProgressPct: 30,
		MealsCompleted:       2,
		TotalMeals:           4,
		SupplementsTaken:     2,
		TotalSupplements:     2,
		SleepQuality:         7,
		StressLevel:          8,
	})

	if got[0].Category != models.CategoryTraining || got[0].Title != "Complete today's workout" {
		t.Errorf("slot 1 = %+v, want training", got[0])
	}
	if got[1].Category != models.CategoryNutrition || got[1].Completed {
		t.Errorf("slot 2 = %+v, want incomplete nutrition", got[1])
	}
	if got[1].Description != "2 of 4 meals logged. Keep going." {
		t.Errorf("slot 2 description = %q", got[1].Description)
	}
	if got[2].Category != models.CategoryHydration {
		t.Errorf("slot 3 category = %v, want hydration", got[2].Category)
	}
}

func TestGeneratePriorities_FocusCascade(t *testing.T) {
	tests := []struct {
		name          string
		in            PriorityInput
		wantCategory  models.PriorityCategory
		wantTitle     string
		wantCompleted bool
	}{
		{
			name:         "hydration first",
			in:           PriorityInput{HydrationProgressPct: 49.9, SupplementsTaken: 0, TotalSupplements: 3, StressLevel: 9},
			wantCategory: models.CategoryHydration, wantTitle: "Drink more water",
		},
		{
			name:         "supplements when hydrated",
			in:           PriorityInput{HydrationProgressPct: 50, SupplementsTaken: 1, TotalSupplements: 3, StressLevel: 9},
			wantCategory: models.CategorySupplements, wantTitle: "Take your supplements",
		},
		{
			name:         "stress when supplements done",
			in:           PriorityInput{HydrationProgressPct: 80, SupplementsTaken: 3, TotalSupplements: 3, StressLevel: 7},
			wantCategory: models.CategoryMindset, wantTitle: "Manage your stress",
		},
		{
			name:         "consistency otherwise",
			in:           PriorityInput{HydrationProgressPct: 100, SupplementsTaken: 0, TotalSupplements: 0, StressLevel: 6},
			wantCategory: models.CategoryMindset, wantTitle: "Stay consistent", wantCompleted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GeneratePriorities(tt.in)[2]
			if got.Category != tt.wantCategory || got.Title != tt.wantTitle || got.Completed != tt.wantCompleted {
				t.Errorf("slot 3 = %+v, want %v %q completed=%v", got, tt.wantCategory, tt.wantTitle, tt.wantCompleted)
			}
		})
	}
}

func TestGeneratePriorities_RecoveryDay(t *testing.T) {
	poor := GeneratePriorities(PriorityInput{IsWorkoutDay: false, SleepQuality: 5, HydrationProgressPct: 100})[0]
	fine := GeneratePriorities(PriorityInput{IsWorkoutDay: false, SleepQuality: 6, HydrationProgressPct: 100})[0]

	for _, p := range []models.DailyPriority{poor, fine} {
		if p.Category != models.CategoryRecovery || p.Title != "Recovery day" {
			t.Errorf("slot 1 = %+v, want recovery day", p)
		}
	}
	if poor.Description == fine.Description {
		t.Error("poor sleep should change the recovery description")
	}
}

func TestGeneratePriorities_Nutrition(t *testing.T) {
	tests := []struct {
		name      string
		meals     int
		total     int
		completed bool
	}{
		{"all meals", 4, 4, true},
		{"more than planned", 5, 4, true},
		{"partial", 3, 4, false},
		{"no meals planned", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GeneratePriorities(PriorityInput{MealsCompleted: tt.meals, TotalMeals: tt.total})[1]
			if got.Completed != tt.completed {
				t.Errorf("Completed = %v, want %v", got.Completed, tt.completed)
			}
		})
	}
}

func TestGeneratePriorities_Cardinality(t *testing.T) {
	for _, workout := range []bool{true, false} {
		for _, hydration := range []float64{-10, 0, 49, 50, 120} {
			for meals := 0; meals <= 4; meals += 2 {
				for supps := 0; supps <= 2; supps++ {
					for level := 1; level <= 10; level += 3 {
						got := GeneratePriorities(PriorityInput{
							IsWorkoutDay:         workout,
							HydrationProgressPct: hydration,
							MealsCompleted:       meals,
							TotalMeals:           4,
							SupplementsTaken:     supps,
							TotalSupplements:     2,
							SleepQuality:         level,
							StressLevel:          level,
						})
						if len(got) != 3 {
							t.Fatalf("got %d priorities", len(got))
						}
						for i, p := range got {
							if p.Order != i+1 {
								t.Fatalf("priority %d has order %d", i, p.Order)
							}
							if !p.Category.Valid() {
								t.Fatalf("priority %d has invalid category %q", i, p.Category)
							}
						}
					}
				}
			}
		}
	}
}

func TestGeneratePriorities_Idempotent(t *testing.T) {
	in := PriorityInput{IsWorkoutDay: true, HydrationProgressPct: 70, MealsCompleted: 1, TotalMeals: 3, SupplementsTaken: 1, TotalSupplements: 2, SleepQuality: 8, StressLevel: 3}
	if !reflect.DeepEqual(GeneratePriorities(in), GeneratePriorities(in)) {
		t.Error("GeneratePriorities is not idempotent")
	}
}
