package engine

import (
	"math"

	"dailycoach/internal/models"
)

// MacroInput is the body data used for macro targets
type MacroInput struct {
	WeightKg       float64
	HeightCm       float64
	Age            int
	Gender         models.Gender
	Goal           models.FitnessGoal
	BodyFatPercent *float64
	IsTrainingDay  bool
}

// MacroInputFromProfile builds a MacroInput from a stored profile
func MacroInputFromProfile(p models.UserProfile, isTrainingDay bool) MacroInput {
	return MacroInput{
		WeightKg:       p.WeightKg,
		HeightCm:       p.HeightCm,
		Age:            p.Age,
		Gender:         p.Gender,
		Goal:           p.FitnessGoal,
		BodyFatPercent: p.BodyFatPercent,
		IsTrainingDay:  isTrainingDay,
	}
}

const (
	trainingDayActivity = 1.55
	restDayActivity     = 1.3
	fatCalorieShare     = 0.25
	kcalPerGramProtein  = 4.0
	kcalPerGramCarbs    = 4.0
	kcalPerGramFat      = 9.0
)

// calorieAdjustment returns the goal multiplier applied to TDEE
func calorieAdjustment(goal models.FitnessGoal) float64 {
	switch goal {
	case models.GoalMuscleGain:
		return 1.10
	case models.GoalFatLoss:
		return 0.80
	case models.GoalRecomposition:
		return 0.95
	case models.GoalMaintenance:
		return 1.0
	}
	return 1.0
}

// proteinPerKg returns grams of protein per kg of body weight
func proteinPerKg(goal models.FitnessGoal) float64 {
	switch goal {
	case models.GoalMuscleGain:
		return 2.0
	case models.GoalFatLoss, models.GoalRecomposition:
		return 2.2
	case models.GoalMaintenance:
		return 1.6
	}
	return 1.6
}

// BMR returns basal metabolic rate in kcal.
// Katch-McArdle when body fat is known, Mifflin-St Jeor otherwise.
func BMR(weightKg, heightCm float64, age int, gender models.Gender, bodyFatPercent *float64) float64 {
	if bodyFatPercent != nil {
		lbm := weightKg * (1 - *bodyFatPercent/100)
		return 370 + 21.6*lbm
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case models.GenderFemale:
		return base - 161
	case models.GenderMale:
		return base + 5
	}
	// неизвестный пол: среднее между формулами
	return base - 78
}

// RecommendMacros computes daily calorie and macro targets
func RecommendMacros(in MacroInput) models.MacroTargets {
	p, _ := NormalizeProfile(models.UserProfile{
		WeightKg:       in.WeightKg,
		HeightCm:       in.HeightCm,
		Age:            in.Age,
		BodyFatPercent: in.BodyFatPercent,
	})

	activity := restDayActivity
	if in.IsTrainingDay {
		activity = trainingDayActivity
	}
	tdee := BMR(p.WeightKg, p.HeightCm, p.Age, in.Gender, p.BodyFatPercent) * activity
	calories := tdee * calorieAdjustment(in.Goal)

	protein := p.WeightKg * proteinPerKg(in.Goal)
	fat := calories * fatCalorieShare / kcalPerGramFat
	carbs := (calories - protein*kcalPerGramProtein - fat*kcalPerGramFat) / kcalPerGramCarbs
	if carbs < 0 {
		carbs = 0
	}

	return models.MacroTargets{
		Calories:     int(math.Round(calories/10) * 10),
		ProteinGrams: int(math.Round(protein)),
		CarbsGrams:   int(math.Round(carbs)),
		FatGrams:     int(math.Round(fat)),
	}
}

// RecommendHydration computes the daily water target in liters
func RecommendHydration(weightKg, heightCm float64, goal models.FitnessGoal) models.HydrationTarget {
	p, _ := NormalizeProfile(models.UserProfile{WeightKg: weightKg, HeightCm: heightCm, Age: MinAge})
	liters := 0.035*p.WeightKg + 0.01*math.Max(0, p.HeightCm-170)

	switch goal {
	case models.GoalMuscleGain:
		liters += 0.5
	case models.GoalFatLoss:
		liters += 0.3
	case models.GoalRecomposition, models.GoalMaintenance:
	}

	return models.HydrationTarget{DailyLiters: math.Round(liters*10) / 10}
}
