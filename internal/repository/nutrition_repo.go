package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dailycoach/internal/models"
)

// NutritionRepository хранит дневной прогресс питания и воды
type NutritionRepository struct {
	db *sql.DB
}

// NewNutritionRepository создаёт репозиторий питания
func NewNutritionRepository(db *sql.DB) *NutritionRepository {
	return &NutritionRepository{db: db}
}

// GetForDay возвращает прогресс за день; если записей нет, возвращает нулевой прогресс
func (r *NutritionRepository) GetForDay(ctx context.Context, userID int, day time.Time) (*models.NutritionProgress, error) {
	var n models.NutritionProgress
	err := r.db.QueryRowContext(ctx, `
		SELECT protein_grams, target_protein_grams, hydration_liters, target_liters,
		       meals_completed, total_meals, supplements_taken, total_supplements
		FROM public.nutrition_days
		WHERE user_id = $1 AND day = $2`,
		userID, day.Format(dateLayout),
	).Scan(&n.ProteinGrams, &n.TargetProteinGrams, &n.HydrationLiters, &n.TargetLiters,
		&n.MealsCompleted, &n.TotalMeals, &n.SupplementsTaken, &n.TotalSupplements)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.NutritionProgress{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// AddWater прибавляет выпитую воду к дню
func (r *NutritionRepository) AddWater(ctx context.Context, userID int, day time.Time, liters float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.nutrition_days (user_id, day, hydration_liters)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO UPDATE SET
			hydration_liters = public.nutrition_days.hydration_liters + EXCLUDED.hydration_liters`,
		userID, day.Format(dateLayout), liters,
	)
	return err
}
