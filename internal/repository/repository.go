package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// Repository содержит все репозитории
type Repository struct {
	User      *UserRepository
	Checkin   *CheckinRepository
	Schedule  *ScheduleRepository
	Workout   *WorkoutRepository
	Nutrition *NutritionRepository
	Weight    *WeightRepository
}

// New создаёт новый экземпляр Repository
func New(db *sql.DB) *Repository {
	return &Repository{
		User:      NewUserRepository(db),
		Checkin:   NewCheckinRepository(db),
		Schedule:  NewScheduleRepository(db),
		Workout:   NewWorkoutRepository(db),
		Nutrition: NewNutritionRepository(db),
		Weight:    NewWeightRepository(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const dateLayout = "2006-01-02"
