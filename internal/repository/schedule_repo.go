package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// WeeklySchedule is the stored training plan of a user.
// PreferredDays uses time.Weekday numbering (0 = Sunday).
type WeeklySchedule struct {
	ScheduledDaysPerWeek int
	PreferredDays        []int
}

// ScheduleRepository работает с расписанием тренировок
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository создаёт репозиторий расписания
func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Get возвращает расписание пользователя; без записи возвращается пустое расписание
func (r *ScheduleRepository) Get(ctx context.Context, userID int) (*WeeklySchedule, error) {
	var (
		ws   WeeklySchedule
		days pq.Int64Array
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT scheduled_days_per_week, preferred_days
		FROM public.user_schedules
		WHERE user_id = $1`, userID,
	).Scan(&ws.ScheduledDaysPerWeek, &days)
	if errors.Is(err, sql.ErrNoRows) {
		return &WeeklySchedule{}, nil
	}
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		ws.PreferredDays = append(ws.PreferredDays, int(d))
	}
	return &ws, nil
}

// Save сохраняет расписание
func (r *ScheduleRepository) Save(ctx context.Context, userID int, ws WeeklySchedule) error {
	days := make(pq.Int64Array, 0, len(ws.PreferredDays))
	for _, d := range ws.PreferredDays {
		days = append(days, int64(d))
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.user_schedules (user_id, scheduled_days_per_week, preferred_days)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			scheduled_days_per_week = EXCLUDED.scheduled_days_per_week,
			preferred_days = EXCLUDED.preferred_days`,
		userID, ws.ScheduledDaysPerWeek, days,
	)
	return err
}
