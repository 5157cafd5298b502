package briefing

import (
	"testing"
	"time"

	"dailycoach/internal/models"
	"dailycoach/internal/repository"
)

// 2026-10-18 is a Sunday
var testNow = time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

func completedOn(day int, hour int) models.WorkoutSessionSummary {
	at := time.Date(2026, 10, day, hour, 0, 0, 0, time.UTC)
	return models.WorkoutSessionSummary{ID: at.Format(time.RFC3339), Date: at, CompletedAt: &at}
}

func TestDeriveSchedule(t *testing.T) {
	planned := models.WorkoutSessionSummary{ID: "planned", Date: testNow}
	tests := []struct {
		name     string
		plan     repository.WeeklySchedule
		sessions []models.WorkoutSessionSummary
		want     models.ScheduleContext
	}{
		{
			name: "no history, not a preferred day",
			plan: repository.WeeklySchedule{ScheduledDaysPerWeek: 3, PreferredDays: []int{1, 3, 5}},
			want: models.ScheduleContext{DaysSinceLastWorkout: NoHistoryDays, ScheduledDaysPerWeek: 3},
		},
		{
			name: "preferred day",
			plan: repository.WeeklySchedule{ScheduledDaysPerWeek: 3, PreferredDays: []int{0, 2, 4}},
			want: models.ScheduleContext{IsScheduledWorkoutDay: true, DaysSinceLastWorkout: NoHistoryDays, ScheduledDaysPerWeek: 3},
		},
		{
			name:     "streak ending yesterday",
			plan:     repository.WeeklySchedule{ScheduledDaysPerWeek: 5, PreferredDays: []int{1, 2, 3, 4, 5}},
			sessions: []models.WorkoutSessionSummary{completedOn(17, 18), completedOn(16, 9), completedOn(15, 19), completedOn(13, 7)},
			want:     models.ScheduleContext{DaysSinceLastWorkout: 1, ConsecutiveWorkoutDays: 3, ScheduledDaysPerWeek: 5},
		},
		{
			name:     "old streak does not count",
			plan:     repository.WeeklySchedule{ScheduledDaysPerWeek: 3},
			sessions: []models.WorkoutSessionSummary{completedOn(15, 10), completedOn(14, 10)},
			want:     models.ScheduleContext{IsScheduledWorkoutDay: true, DaysSinceLastWorkout: 3, ScheduledDaysPerWeek: 3},
		},
		{
			name:     "trained today",
			plan:     repository.WeeklySchedule{ScheduledDaysPerWeek: 7},
			sessions: []models.WorkoutSessionSummary{completedOn(18, 10), completedOn(17, 10)},
			want:     models.ScheduleContext{DaysSinceLastWorkout: 0, ConsecutiveWorkoutDays: 2, ScheduledDaysPerWeek: 7},
		},
		{
			name:     "incomplete and future sessions ignored",
			plan:     repository.WeeklySchedule{ScheduledDaysPerWeek: 2, PreferredDays: []int{6}},
			sessions: []models.WorkoutSessionSummary{planned, completedOn(19, 8), completedOn(16, 8)},
			want:     models.ScheduleContext{DaysSinceLastWorkout: 2, ScheduledDaysPerWeek: 2},
		},
		{
			name: "days per week from preferred days",
			plan: repository.WeeklySchedule{PreferredDays: []int{1, 4}},
			want: models.ScheduleContext{DaysSinceLastWorkout: NoHistoryDays, ScheduledDaysPerWeek: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSchedule(testNow, tt.plan, tt.sessions)
			if got != tt.want {
				t.Errorf("DeriveSchedule() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDeriveScheduleUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 21:00 UTC on the 17th is already the 18th in UTC+5
	at := time.Date(2026, 10, 17, 21, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSessionSummary{{ID: "late", Date: at, CompletedAt: &at}}

	got := DeriveSchedule(testNow.In(loc), repository.WeeklySchedule{ScheduledDaysPerWeek: 3}, sessions)
	if got.DaysSinceLastWorkout != 0 {
		t.Errorf("DaysSinceLastWorkout = %d, want 0 in UTC+5", got.DaysSinceLastWorkout)
	}
}
