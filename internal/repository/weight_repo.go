package repository

import (
	"context"
	"database/sql"
	"time"

	"dailycoach/internal/models"
)

// WeightRepository работает с журналом веса
type WeightRepository struct {
	db *sql.DB
}

// NewWeightRepository создаёт репозиторий веса
func NewWeightRepository(db *sql.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

// Latest возвращает не более limit последних замеров, новые первыми
func (r *WeightRepository) Latest(ctx context.Context, userID, limit int) ([]models.WeightSample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT weight_kg, recorded_at
		FROM public.weight_logs
		WHERE user_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.WeightSample
	for rows.Next() {
		var s models.WeightSample
		if err := rows.Scan(&s.WeightKg, &s.RecordedAt); err != nil {
			continue
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// Record добавляет замер веса
func (r *WeightRepository) Record(ctx context.Context, userID int, weightKg float64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.weight_logs (user_id, weight_kg, recorded_at)
		VALUES ($1, $2, $3)`, userID, weightKg, at)
	return err
}
