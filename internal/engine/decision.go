package engine

import "dailycoach/internal/models"

// FocusMobility is the suggested focus for active recovery days
const FocusMobility = "stretching/mobility"

// Reasons shown next to the start/skip workout button
const (
	ReasonInsufficientSleep = "You slept less than 5 hours. Your body needs rest more than training today."
	ReasonHighStress        = "Your stress level is very high. Gentle mobility work will help more than a hard session."
	ReasonHighSoreness      = "Your muscles are very sore. Take a full rest day to recover."
	ReasonMandatoryDeload   = "You have trained 5 or more days in a row. A rest day is mandatory to avoid overtraining."
	ReasonOffDayBonus       = "Not a scheduled training day, but you are well recovered. An optional light session is fine."
	ReasonOffDayRest        = "Rest day as planned. Recovery is part of the program."
	ReasonPeakReadiness     = "Excellent readiness. You can push a little harder today."
	ReasonGoodReadiness     = "Good readiness. Train as planned."
	ReasonModerateReadiness = "Moderate readiness. Reduce the load and keep the session light."
	ReasonLowReadiness      = "Low readiness. Swap the workout for active recovery."
)

// Thresholds for the decision rules
const (
	CriticalSleepHours      = 5.0
	CriticalStressLevel     = 9
	CriticalSorenessLevel   = 9
	MaxConsecutiveDays      = 5
	HighReadiness           = 8.0
	GoodReadiness           = 6.0
	ModerateReadiness       = 4.0
	OffDayMinDaysSinceTrain = 2
)

// DecisionInput is everything a decision rule may look at
type DecisionInput struct {
	State     models.DailyState
	Schedule  models.ScheduleContext
	Readiness float64
}

// Outcome is the result attached to a decision rule
type Outcome struct {
	Recommendation    models.Recommendation
	IntensityModifier float64
	SuggestedFocus    string
	Reason            string
}

// DecisionRule is one row of the decision table
type DecisionRule struct {
	Name    string
	When    func(in DecisionInput) bool
	Outcome Outcome
}

func always(DecisionInput) bool { return true }

// DecisionRules is the ordered decision table. The first rule whose predicate
// holds decides the day; the last rule always matches.
var DecisionRules = []DecisionRule{
	{
		Name:    "insufficient_sleep",
		When:    func(in DecisionInput) bool { return in.State.SleepHours < CriticalSleepHours },
		Outcome: Outcome{Recommendation: models.RecommendRest, Reason: ReasonInsufficientSleep},
	},
	{
		Name: "high_stress",
		When: func(in DecisionInput) bool { return in.State.StressLevel >= CriticalStressLevel },
		Outcome: Outcome{
			Recommendation:    models.RecommendActiveRecovery,
			IntensityModifier: 0.3,
			SuggestedFocus:    FocusMobility,
			Reason:            ReasonHighStress,
		},
	},
	{
		Name:    "high_soreness",
		When:    func(in DecisionInput) bool { return in.State.SorenessLevel >= CriticalSorenessLevel },
		Outcome: Outcome{Recommendation: models.RecommendRest, Reason: ReasonHighSoreness},
	},
	{
		Name:    "mandatory_deload",
		When:    func(in DecisionInput) bool { return in.Schedule.ConsecutiveWorkoutDays >= MaxConsecutiveDays },
		Outcome: Outcome{Recommendation: models.RecommendRest, Reason: ReasonMandatoryDeload},
	},
	{
		Name: "off_day_bonus",
		When: func(in DecisionInput) bool {
			return !in.Schedule.IsScheduledWorkoutDay &&
				in.Readiness >= HighReadiness &&
				in.Schedule.DaysSinceLastWorkout >= OffDayMinDaysSinceTrain
		},
		Outcome: Outcome{Recommendation: models.RecommendLightWorkout, IntensityModifier: 0.6, Reason: ReasonOffDayBonus},
	},
	{
		Name:    "off_day_rest",
		When:    func(in DecisionInput) bool { return !in.Schedule.IsScheduledWorkoutDay },
		Outcome: Outcome{Recommendation: models.RecommendRest, Reason: ReasonOffDayRest},
	},
	{
		Name:    "peak_readiness",
		When:    func(in DecisionInput) bool { return in.Readiness >= HighReadiness },
		Outcome: Outcome{Recommendation: models.RecommendFullWorkout, IntensityModifier: 1.1, Reason: ReasonPeakReadiness},
	},
	{
		Name:    "good_readiness",
		When:    func(in DecisionInput) bool { return in.Readiness >= GoodReadiness },
		Outcome: Outcome{Recommendation: models.RecommendFullWorkout, IntensityModifier: 1.0, Reason: ReasonGoodReadiness},
	},
	{
		Name:    "moderate_readiness",
		When:    func(in DecisionInput) bool { return in.Readiness >= ModerateReadiness },
		Outcome: Outcome{Recommendation: models.RecommendLightWorkout, IntensityModifier: 0.7, Reason: ReasonModerateReadiness},
	},
	{
		Name: "low_readiness",
		When: always,
		Outcome: Outcome{
			Recommendation:    models.RecommendActiveRecovery,
			IntensityModifier: 0.3,
			SuggestedFocus:    FocusMobility,
			Reason:            ReasonLowReadiness,
		},
	},
}

// Decide picks today's training recommendation.
// Inputs are clamped into range first; the call never fails.
func Decide(state models.DailyState, schedule models.ScheduleContext, experience models.ExperienceLevel) models.TrainingDecision {
	state, _ = NormalizeDailyState(state)
	schedule, _ = NormalizeSchedule(schedule)

	in := DecisionInput{
		State:     state,
		Schedule:  schedule,
		Readiness: ReadinessForState(state, experience),
	}
	return evaluate(DecisionRules, in)
}

func evaluate(rules []DecisionRule, in DecisionInput) models.TrainingDecision {
	for _, rule := range rules {
		if rule.When(in) {
			return newDecision(rule, in.Readiness)
		}
	}
	// unreachable with DecisionRules, the last rule always matches
	return newDecision(DecisionRule{
		Name:    "fallback",
		Outcome: Outcome{Recommendation: models.RecommendRest, Reason: ReasonOffDayRest},
	}, in.Readiness)
}

func newDecision(rule DecisionRule, readiness float64) models.TrainingDecision {
	modifier := rule.Outcome.IntensityModifier
	if rule.Outcome.Recommendation == models.RecommendRest {
		modifier = 0
	}
	return models.TrainingDecision{
		ShouldTrain:       rule.Outcome.Recommendation.IsTraining(),
		Recommendation:    rule.Outcome.Recommendation,
		Reason:            rule.Outcome.Reason,
		IntensityModifier: modifier,
		SuggestedFocus:    rule.Outcome.SuggestedFocus,
		Readiness:         readiness,
		Rule:              rule.Name,
	}
}
