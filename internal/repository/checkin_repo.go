package repository

import (
	"context"
	"database/sql"
	"time"

	"dailycoach/internal/models"
)

// CheckinRepository хранит ежедневные отметки самочувствия
type CheckinRepository struct {
	db *sql.DB
}

// NewCheckinRepository создаёт репозиторий отметок
func NewCheckinRepository(db *sql.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// GetForDay возвращает отметку за день или ErrNotFound
func (r *CheckinRepository) GetForDay(ctx context.Context, userID int, day time.Time) (*models.DailyState, error) {
	var s models.DailyState
	err := r.db.QueryRowContext(ctx, `
		SELECT sleep_hours, sleep_quality, stress_level, soreness_level, energy_level
		FROM public.daily_checkins
		WHERE user_id = $1 AND checkin_date = $2`,
		userID, day.Format(dateLayout),
	).Scan(&s.SleepHours, &s.SleepQuality, &s.StressLevel, &s.SorenessLevel, &s.EnergyLevel)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// Save создаёт или обновляет отметку за день
func (r *CheckinRepository) Save(ctx context.Context, userID int, day time.Time, s models.DailyState) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.daily_checkins
			(user_id, checkin_date, sleep_hours, sleep_quality, stress_level, soreness_level, energy_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, checkin_date) DO UPDATE SET
			sleep_hours = EXCLUDED.sleep_hours,
			sleep_quality = EXCLUDED.sleep_quality,
			stress_level = EXCLUDED.stress_level,
			soreness_level = EXCLUDED.soreness_level,
			energy_level = EXCLUDED.energy_level`,
		userID, day.Format(dateLayout), s.SleepHours, s.SleepQuality, s.StressLevel, s.SorenessLevel, s.EnergyLevel,
	)
	return err
}
