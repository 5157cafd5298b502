package engine

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"dailycoach/internal/models"

	"github.com/google/uuid"
)

var testNow = time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("alert-%d", n)
	}
}

func completedSession(id string, daysAgo int, feeling models.Feeling) models.WorkoutSessionSummary {
	date := testNow.AddDate(0, 0, -daysAgo)
	done := date.Add(-time.Hour)
	s := models.WorkoutSessionSummary{ID: id, Date: date, CompletedAt: &done}
	if feeling != "" {
		s.Feeling = models.FeelingPtr(feeling)
	}
	return s
}

func TestDetectConsistency(t *testing.T) {
	e := NewAlertEngine(WithIDGenerator(counterIDs()))

	t.Run("behind schedule", func(t *testing.T) {
		got := e.DetectConsistency(AlertInput{
			Now:                  testNow,
			ScheduledDaysPerWeek: 4,
			Sessions:             []models.WorkoutSessionSummary{completedSession("s1", 2, "")},
		})
		if len(got) != 1 {
			t.Fatalf("got %d alerts, want 1", len(got))
		}
		a := got[0]
		if a.Priority != models.PriorityHigh || a.Type != models.AlertConsistency {
			t.Errorf("alert = %v/%v, want high consistency", a.Priority, a.Type)
		}
		if !strings.Contains(a.Description, "1 of 4") {
			t.Errorf("description %q must contain the literal counts", a.Description)
		}
		if a.Metadata["completed"] != 1 || a.Metadata["scheduled"] != 4 {
			t.Errorf("metadata = %v", a.Metadata)
		}
	})

	t.Run("perfect week", func(t *testing.T) {
		var sessions []models.WorkoutSessionSummary
		for i := 0; i < 4; i++ {
			sessions = append(sessions, completedSession(fmt.Sprintf("s%d", i), i, models.FeelingCorrect))
		}
		got := e.DetectConsistency(AlertInput{Now: testNow, ScheduledDaysPerWeek: 4, Sessions: sessions})
		if len(got) != 1 || got[0].Priority != models.PriorityLow || got[0].Key != "consistency-perfect" {
			t.Fatalf("got %+v, want one low perfect-week alert", got)
		}
	})

	t.Run("on track emits nothing", func(t *testing.T) {
		sessions := []models.WorkoutSessionSummary{
			completedSession("a", 1, ""), completedSession("b", 3, ""), completedSession("c", 5, ""),
		}
		if got := e.DetectConsistency(AlertInput{Now: testNow, ScheduledDaysPerWeek: 4, Sessions: sessions}); len(got) != 0 {
			t.Errorf("got %d alerts, want none", len(got))
		}
	})

	t.Run("old and unfinished sessions do not count", func(t *testing.T) {
		sessions := []models.WorkoutSessionSummary{
			completedSession("old1", 8, ""),
			completedSession("old2", 10, ""),
			{ID: "planned", Date: testNow.AddDate(0, 0, -1)},
			completedSession("recent", 1, ""),
		}
		got := e.DetectConsistency(AlertInput{Now: testNow, ScheduledDaysPerWeek: 3, Sessions: sessions})
		if len(got) != 1 || !strings.Contains(got[0].Description, "1 of 3") {
			t.Fatalf("got %+v, want behind-schedule alert with 1 of 3", got)
		}
	})

	t.Run("days per week above seven is clamped", func(t *testing.T) {
		var sessions []models.WorkoutSessionSummary
		for i := 0; i < 7; i++ {
			sessions = append(sessions, completedSession(fmt.Sprintf("s%d", i), i, ""))
		}
		got := e.DetectConsistency(AlertInput{Now: testNow, ScheduledDaysPerWeek: 10, Sessions: sessions})
		if len(got) != 1 || got[0].Key != "consistency-perfect" {
			t.Fatalf("got %+v, want perfect week for 7 of 7", got)
		}
		if got[0].Metadata["scheduled"] != 7 {
			t.Errorf("scheduled = %v, want 7", got[0].Metadata["scheduled"])
		}
	})

	t.Run("no schedule emits nothing", func(t *testing.T) {
		if got := e.DetectConsistency(AlertInput{Now: testNow}); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestDetectStagnationAndProgression(t *testing.T) {
	e := NewAlertEngine(WithIDGenerator(counterIDs()))
	hard := models.FeelingPtr(models.FeelingHard)

	stalled := func(name string) models.ExerciseProgressionRecord {
		return models.ExerciseProgressionRecord{ExerciseName: name, LastFeeling: hard}
	}

	if got := e.DetectStagnation(AlertInput{Progressions: []models.ExerciseProgressionRecord{stalled("Squat")}}); got != nil {
		t.Errorf("one stalled exercise should not alert, got %v", got)
	}

	records := []models.ExerciseProgressionRecord{
		stalled("Squat"), stalled("Bench press"),
		{ExerciseName: "Deadlift", LastFeeling: hard, ConsecutiveSuccessfulSessions: 2},
		stalled("Overhead press"), stalled("Row"),
		{ExerciseName: "Pull-up", ShouldProgress: true},
	}
	got := e.DetectStagnation(AlertInput{Progressions: records})
	if len(got) != 1 {
		t.Fatalf("got %d stagnation alerts, want 1", len(got))
	}
	if got[0].Priority != models.PriorityMedium {
		t.Errorf("priority = %v, want medium", got[0].Priority)
	}
	names := got[0].Metadata["exercises"].([]string)
	if !reflect.DeepEqual(names, []string{"Squat", "Bench press", "Overhead press"}) {
		t.Errorf("named exercises = %v", names)
	}
	if got[0].Metadata["count"] != 4 {
		t.Errorf("count = %v, want 4", got[0].Metadata["count"])
	}
	if strings.Contains(got[0].Description, "Deadlift") || strings.Contains(got[0].Description, "Row") {
		t.Errorf("description %q names the wrong exercises", got[0].Description)
	}

	progress := e.DetectProgression(AlertInput{Progressions: records})
	if len(progress) != 1 || progress[0].Priority != models.PriorityLow || progress[0].Type != models.AlertProgress {
		t.Fatalf("progression = %+v, want one low progress alert", progress)
	}
	if !strings.Contains(progress[0].Description, "Pull-up") {
		t.Errorf("description %q should name Pull-up", progress[0].Description)
	}

	loaded := e.DetectProgression(AlertInput{Progressions: []models.ExerciseProgressionRecord{
		{ExerciseName: "Squat", FunctionalMaxKg: 140, ShouldProgress: true},
		{ExerciseName: "Pull-up", ShouldProgress: true},
	}})
	nextLoads := loaded[0].Metadata["next_loads"].(map[string]float64)
	if len(nextLoads) != 1 || nextLoads["Squat"] != 142.5 {
		t.Errorf("next_loads = %v, want Squat 142.5 only", nextLoads)
	}

	if got := e.DetectProgression(AlertInput{}); got != nil {
		t.Errorf("no records should emit nothing, got %v", got)
	}
}

func atHour(h int) time.Time {
	return time.Date(2026, 10, 18, h, 30, 0, 0, time.UTC)
}

func TestDetectNutrition(t *testing.T) {
	e := NewAlertEngine(WithIDGenerator(counterIDs()))

	tests := []struct {
		name        string
		hour        int
		today       float64
		target      float64
		wantAlert   bool
		wantDeficit int
	}{
		{"morning is skipped", 11, 0, 160, false, 0},
		{"checked but too early to alert", 13, 0, 160, false, 0},
		{"behind in the afternoon", 15, 40, 160, true, 51},
		{"on track", 15, 80, 160, false, 0},
		{"no target", 18, 0, 0, false, 0},
		{"negative intake counts as zero", 14, -50, 150, true, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DetectNutrition(AlertInput{Now: atHour(tt.hour), TodayProteinGrams: tt.today, TargetProteinGrams: tt.target})
			if (len(got) == 1) != tt.wantAlert {
				t.Fatalf("got %d alerts, wantAlert %v", len(got), tt.wantAlert)
			}
			if !tt.wantAlert {
				return
			}
			if got[0].Priority != models.PriorityMedium {
				t.Errorf("priority = %v, want medium", got[0].Priority)
			}
			if got[0].Metadata["deficit_grams"] != tt.wantDeficit {
				t.Errorf("deficit = %v, want %d", got[0].Metadata["deficit_grams"], tt.wantDeficit)
			}
			if strings.Contains(got[0].Description, "-") {
				t.Errorf("description %q shows a negative amount", got[0].Description)
			}
		})
	}
}

func TestDetectHydration(t *testing.T) {
	e := NewAlertEngine(WithIDGenerator(counterIDs()))

	tests := []struct {
		name          string
		hour          int
		today         float64
		target        float64
		wantAlert     bool
		wantRemaining float64
	}{
		{"before ten", 9, 0, 3, false, 0},
		{"checked but too early to alert", 11, 0, 3, false, 0},
		{"behind at noon", 12, 0.5, 3, true, 2.5},
		{"on track", 16, 1.8, 3, false, 0},
		{"no target", 16, 0, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DetectHydration(AlertInput{Now: atHour(tt.hour), TodayHydrationLiters: tt.today, TargetHydrationLiters: tt.target})
			if (len(got) == 1) != tt.wantAlert {
				t.Fatalf("got %d alerts, wantAlert %v", len(got), tt.wantAlert)
			}
			if !tt.wantAlert {
				return
			}
			if got[0].Metadata["remaining_liters"] != tt.wantRemaining {
				t.Errorf("remaining = %v, want %v", got[0].Metadata["remaining_liters"], tt.wantRemaining)
			}
			if !strings.Contains(got[0].Description, "2.5 L") {
				t.Errorf("description %q should state the remaining liters", got[0].Description)
			}
		})
	}
}

func TestDetectWeightChange(t *testing.T) {
	e := NewAlertEngine(WithIDGenerator(counterIDs()))

	tests := []struct {
		name         string
		goal         models.FitnessGoal
		previous     *float64
		current      float64
		wantPriority models.AlertPriority
		wantKey      string
	}{
		{"no previous sample", models.GoalFatLoss, nil, 80, "", ""},
		{"small change", models.GoalFatLoss, floatPtr(80), 80.4, "", ""},
		{"just under half a kilo", models.GoalFatLoss, floatPtr(80), 80.496, "", ""},
		{"exactly half a kilo", models.GoalFatLoss, floatPtr(80), 80.5, models.PriorityMedium, "weight_change-gain"},
		{"both weights below range clamp to the same value", models.GoalFatLoss, floatPtr(25), 29, "", ""},
		{"non-positive previous sample is ignored", models.GoalFatLoss, floatPtr(0), 80, "", ""},
		{"gain on muscle gain", models.GoalMuscleGain, floatPtr(80), 81, models.PriorityLow, "weight_change-gain"},
		{"loss on fat loss", models.GoalFatLoss, floatPtr(80), 79.5, models.PriorityLow, "weight_change-loss"},
		{"gain on fat loss", models.GoalFatLoss, floatPtr(80), 81, models.PriorityMedium, "weight_change-gain"},
		{"loss on muscle gain", models.GoalMuscleGain, floatPtr(80), 79, models.PriorityMedium, "weight_change-loss"},
		{"maintenance always medium", models.GoalMaintenance, floatPtr(80), 79.5, models.PriorityMedium, "weight_change-loss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DetectWeightChange(AlertInput{Now: testNow, Goal: tt.goal, PreviousWeightKg: tt.previous, CurrentWeightKg: tt.current})
			if tt.wantPriority == "" {
				if len(got) != 0 {
					t.Fatalf("got %v, want no alert", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("got %d alerts, want 1", len(got))
			}
			if got[0].Priority != tt.wantPriority || got[0].Key != tt.wantKey {
				t.Errorf("alert = %v %q, want %v %q", got[0].Priority, got[0].Key, tt.wantPriority, tt.wantKey)
			}
			if !strings.Contains(got[0].Description, "recalculated") {
				t.Errorf("description %q should mention macro recalculation", got[0].Description)
			}
		})
	}
}

func TestDetectFatigue(t *testing.T) {
	e := NewAlertEngine(WithIDGenerator(counterIDs()))

	recentHard := []models.WorkoutSessionSummary{
		completedSession("d", 5, models.FeelingEasy),
		completedSession("a", 1, models.FeelingHard),
		completedSession("c", 3, models.FeelingHard),
		completedSession("b", 2, models.FeelingCorrect),
	}
	got := e.DetectFatigue(AlertInput{Now: testNow, Sessions: recentHard})
	if len(got) != 1 || got[0].Type != models.AlertFatigue || got[0].Priority != models.PriorityMedium {
		t.Fatalf("got %+v, want one medium fatigue alert", got)
	}
	if got[0].Metadata["hard_sessions"] != 2 {
		t.Errorf("hard_sessions = %v, want 2", got[0].Metadata["hard_sessions"])
	}

	olderHard := []models.WorkoutSessionSummary{
		completedSession("a", 1, models.FeelingEasy),
		completedSession("b", 2, models.FeelingCorrect),
		completedSession("c", 3, models.FeelingHard),
		completedSession("d", 4, models.FeelingHard),
		completedSession("e", 5, models.FeelingHard),
	}
	if got := e.DetectFatigue(AlertInput{Now: testNow, Sessions: olderHard}); len(got) != 0 {
		t.Errorf("hard sessions outside the last three should not alert, got %v", got)
	}

	if got := e.DetectFatigue(AlertInput{Now: testNow}); got != nil {
		t.Errorf("no sessions should emit nothing, got %v", got)
	}

	if recentHard[0].ID != "d" {
		t.Error("DetectFatigue must not reorder the caller's slice")
	}
}

func busyInput() AlertInput {
	hard := models.FeelingPtr(models.FeelingHard)
	return AlertInput{
		Now:                  testNow,
		Goal:                 models.GoalFatLoss,
		ScheduledDaysPerWeek: 5,
		Sessions: []models.WorkoutSessionSummary{
			completedSession("a", 1, models.FeelingHard),
			completedSession("b", 9, models.FeelingHard),
		},
		Progressions: []models.ExerciseProgressionRecord{
			{ExerciseName: "Squat", LastFeeling: hard},
			{ExerciseName: "Bench press", LastFeeling: hard},
			{ExerciseName: "Row", ShouldProgress: true},
		},
		TodayProteinGrams:     10,
		TargetProteinGrams:    150,
		TodayHydrationLiters:  0.2,
		TargetHydrationLiters: 3,
		CurrentWeightKg:       82,
		PreviousWeightKg:      floatPtr(81),
	}
}

func TestGetAllAlerts_CapAndOrder(t *testing.T) {
	e := NewAlertEngine(WithIDGenerator(counterIDs()))
	in := busyInput()

	all := e.CollectAlerts(in)
	if len(all) != 7 {
		t.Fatalf("CollectAlerts returned %d alerts, want 7", len(all))
	}

	got := e.GetAllAlerts(in)
	if len(got) != MaxAlerts {
		t.Fatalf("GetAllAlerts returned %d alerts, want %d", len(got), MaxAlerts)
	}

	wantKeys := []string{"consistency-behind", "stagnation-plateau", "nutrition-protein"}
	for i, key := range wantKeys {
		if got[i].Key != key {
			t.Errorf("alert %d = %q, want %q", i, got[i].Key, key)
		}
	}

	for i := 1; i < len(all); i++ {
		if all[i-1].Priority.Rank() > all[i].Priority.Rank() {
			t.Fatalf("alert %d (%v) sorted before %d (%v)", i-1, all[i-1].Priority, i, all[i].Priority)
		}
	}
}

func TestGetAllAlerts_Empty(t *testing.T) {
	e := NewAlertEngine()
	got := e.GetAllAlerts(AlertInput{Now: atHour(8)})
	if len(got) != 0 {
		t.Errorf("got %d alerts for empty input, want 0", len(got))
	}
}

func TestGetAllAlerts_UniqueUUIDs(t *testing.T) {
	e := NewAlertEngine()
	all := e.CollectAlerts(busyInput())

	seen := make(map[string]bool)
	for _, a := range all {
		if _, err := uuid.Parse(a.ID); err != nil {
			t.Errorf("alert id %q is not a UUID: %v", a.ID, err)
		}
		if seen[a.ID] {
			t.Errorf("duplicate alert id %q", a.ID)
		}
		seen[a.ID] = true
		if !a.CreatedAt.Equal(testNow) {
			t.Errorf("CreatedAt = %v, want %v", a.CreatedAt, testNow)
		}
	}
}

func TestGetAllAlerts_IdempotentExceptIDs(t *testing.T) {
	e := NewAlertEngine()
	first := e.GetAllAlerts(busyInput())
	second := e.GetAllAlerts(busyInput())
	for i := range first {
		first[i].ID, second[i].ID = "", ""
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("alerts differ between identical runs")
	}
}

func TestMergeAlerts_StableTies(t *testing.T) {
	a := models.ProactiveAlert{Key: "a", Priority: models.PriorityMedium}
	b := models.ProactiveAlert{Key: "b", Priority: models.PriorityLow}
	c := models.ProactiveAlert{Key: "c", Priority: models.PriorityMedium}
	d := models.ProactiveAlert{Key: "d", Priority: models.PriorityHigh}

	got := MergeAlerts([]models.ProactiveAlert{a, b}, nil, []models.ProactiveAlert{c, d})
	var keys []string
	for _, x := range got {
		keys = append(keys, x.Key)
	}
	if !reflect.DeepEqual(keys, []string{"d", "a", "c", "b"}) {
		t.Errorf("merged order = %v", keys)
	}

	if got := TopAlerts(got, -1); len(got) != 0 {
		t.Errorf("TopAlerts(-1) returned %d alerts", len(got))
	}
}
