package engine

import (
	"math"

	"dailycoach/internal/models"
)

// Readiness weights
const (
	sleepWeight    = 0.40
	stressWeight   = 0.35
	sorenessWeight = 0.25
	targetSleep    = 8.0
	MaxReadiness   = 10.0
)

// experienceMultiplier scales readiness by training age
func experienceMultiplier(level models.ExperienceLevel) float64 {
	switch level {
	case models.ExperienceBeginner:
		return 0.9
	case models.ExperienceIntermediate:
		return 1.0
	case models.ExperienceAdvanced:
		return 1.1
	}
	return 1.0
}

// ReadinessScore combines sleep, stress and soreness into a 0-10 score.
//
//	sleep    = min(hours/8, 1) * quality/10     weight 0.40
//	stress   = (10 - stress)/10                 weight 0.35
//	soreness = (10 - soreness)/10               weight 0.25
//
// The weighted sum is scaled to 10, multiplied by the experience factor
// (beginner 0.9, intermediate 1.0, advanced 1.1) and clamped to [0, 10].
func ReadinessScore(sleepHours float64, sleepQuality, stressLevel, sorenessLevel int, experience models.ExperienceLevel) float64 {
	state, _ := NormalizeDailyState(models.DailyState{
		SleepHours:    sleepHours,
		SleepQuality:  sleepQuality,
		StressLevel:   stressLevel,
		SorenessLevel: sorenessLevel,
		EnergyLevel:   MinLevel,
	})

	sleepScore := math.Min(state.SleepHours/targetSleep, 1) * (float64(state.SleepQuality) / 10)
	stressScore := float64(10-state.StressLevel) / 10
	sorenessScore := float64(10-state.SorenessLevel) / 10

	raw := (sleepScore*sleepWeight + stressScore*stressWeight + sorenessScore*sorenessWeight) * 10
	return clamp(raw*experienceMultiplier(experience), 0, MaxReadiness)
}

// ReadinessForState is ReadinessScore over a DailyState
func ReadinessForState(s models.DailyState, experience models.ExperienceLevel) float64 {
	return ReadinessScore(s.SleepHours, s.SleepQuality, s.StressLevel, s.SorenessLevel, experience)
}
