package models

import "fmt"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidateProfile checks the enum fields of a profile coming from outside.
// Numeric ranges are not checked here: the engine clamps them.
func ValidateProfile(p UserProfile) error {
	if !p.FitnessGoal.Valid() {
		return ValidationError{Field: "fitness_goal", Message: fmt.Sprintf("unknown fitness goal %q", p.FitnessGoal)}
	}
	if !p.ExperienceLevel.Valid() {
		return ValidationError{Field: "experience_level", Message: fmt.Sprintf("unknown experience level %q", p.ExperienceLevel)}
	}
	if p.Gender != "" && !p.Gender.Valid() {
		return ValidationError{Field: "gender", Message: fmt.Sprintf("unknown gender %q", p.Gender)}
	}
	return nil
}

// ValidateHistory checks the optional feeling values of sessions and progression records
func ValidateHistory(sessions []WorkoutSessionSummary, progressions []ExerciseProgressionRecord) error {
	for _, s := range sessions {
		if s.Feeling != nil && !s.Feeling.Valid() {
			return ValidationError{Field: "sessions.feeling", Message: fmt.Sprintf("unknown feeling %q in session %s", *s.Feeling, s.ID)}
		}
	}
	for _, p := range progressions {
		if p.LastFeeling != nil && !p.LastFeeling.Valid() {
			return ValidationError{Field: "progressions.last_feeling", Message: fmt.Sprintf("unknown feeling %q for %s", *p.LastFeeling, p.ExerciseName)}
		}
	}
	return nil
}
