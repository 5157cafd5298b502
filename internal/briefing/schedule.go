package briefing

import (
	"time"

	"dailycoach/internal/models"
	"dailycoach/internal/repository"
)

// NoHistoryDays is used as days-since-last-workout for users who never trained
const NoHistoryDays = 30

// DeriveSchedule builds today's schedule context from the weekly plan and history.
// Calendar days are counted in now's location.
func DeriveSchedule(now time.Time, plan repository.WeeklySchedule, sessions []models.WorkoutSessionSummary) models.ScheduleContext {
	today := dayIndex(now, now.Location())

	done := make(map[int]bool)
	last := -1
	for _, s := range sessions {
		if s.CompletedAt == nil {
			continue
		}
		d := dayIndex(*s.CompletedAt, now.Location())
		if d > today {
			continue
		}
		done[d] = true
		if last < 0 || d > last {
			last = d
		}
	}

	sc := models.ScheduleContext{
		ScheduledDaysPerWeek: plan.ScheduledDaysPerWeek,
		DaysSinceLastWorkout: NoHistoryDays,
	}
	if sc.ScheduledDaysPerWeek == 0 {
		sc.ScheduledDaysPerWeek = len(plan.PreferredDays)
	}
	if sc.ScheduledDaysPerWeek > 7 {
		sc.ScheduledDaysPerWeek = 7
	}

	if last >= 0 {
		sc.DaysSinceLastWorkout = today - last
		// серия считается, только если последняя тренировка была сегодня или вчера
		if today-last <= 1 {
			for d := last; done[d]; d-- {
				sc.ConsecutiveWorkoutDays++
			}
		}
	}

	sc.IsScheduledWorkoutDay = isScheduled(now.Weekday(), plan.PreferredDays, sc)
	return sc
}

func hasCompleted(sessions []models.WorkoutSessionSummary) bool {
	for _, s := range sessions {
		if s.CompletedAt != nil {
			return true
		}
	}
	return false
}

func isScheduled(today time.Weekday, preferred []int, sc models.ScheduleContext) bool {
	if len(preferred) > 0 {
		for _, d := range preferred {
			if time.Weekday(d) == today {
				return true
			}
		}
		return false
	}
	// без конкретных дней: тренировка, если с прошлой прошло достаточно
	if sc.ScheduledDaysPerWeek <= 0 {
		return false
	}
	return sc.DaysSinceLastWorkout >= 7/sc.ScheduledDaysPerWeek
}

// dayIndex returns the number of calendar days since the unix epoch in loc
func dayIndex(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
