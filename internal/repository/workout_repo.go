package repository

import (
	"context"
	"database/sql"
	"time"

	"dailycoach/internal/models"
)

// WorkoutRepository работает с тренировками и прогрессией упражнений
type WorkoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository создаёт репозиторий тренировок
func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// SessionsSince возвращает тренировки начиная с since, новые первыми
func (r *WorkoutRepository) SessionsSince(ctx context.Context, userID int, since time.Time) ([]models.WorkoutSessionSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_date, completed_at, COALESCE(feeling, '')
		FROM public.workout_sessions
		WHERE user_id = $1 AND session_date >= $2
		ORDER BY session_date DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.WorkoutSessionSummary
	for rows.Next() {
		var (
			s         models.WorkoutSessionSummary
			completed sql.NullTime
			feeling   string
		)
		if err := rows.Scan(&s.ID, &s.Date, &completed, &feeling); err != nil {
			continue
		}
		if completed.Valid {
			t := completed.Time
			s.CompletedAt = &t
		}
		if feeling != "" {
			s.Feeling = models.FeelingPtr(models.Feeling(feeling))
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// LastCompleted возвращает дату последней завершённой тренировки или nil
func (r *WorkoutRepository) LastCompleted(ctx context.Context, userID int) (*time.Time, error) {
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(completed_at) FROM public.workout_sessions
		WHERE user_id = $1 AND completed_at IS NOT NULL`, userID,
	).Scan(&last)
	if err != nil {
		return nil, err
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

// Progressions возвращает записи прогрессии по всем упражнениям пользователя
func (r *WorkoutRepository) Progressions(ctx context.Context, userID int) ([]models.ExerciseProgressionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT exercise_id, exercise_name, functional_max_kg,
		       consecutive_successful_sessions, COALESCE(last_feeling, ''), should_progress
		FROM public.exercise_progressions
		WHERE user_id = $1
		ORDER BY exercise_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ExerciseProgressionRecord
	for rows.Next() {
		var (
			p       models.ExerciseProgressionRecord
			feeling string
		)
		if err := rows.Scan(&p.ExerciseID, &p.ExerciseName, &p.FunctionalMaxKg,
			&p.ConsecutiveSuccessfulSessions, &feeling, &p.ShouldProgress); err != nil {
			continue
		}
		if feeling != "" {
			p.LastFeeling = models.FeelingPtr(models.Feeling(feeling))
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// SaveSession записывает тренировку
func (r *WorkoutRepository) SaveSession(ctx context.Context, userID int, s models.WorkoutSessionSummary) error {
	var feeling *string
	if s.Feeling != nil {
		f := string(*s.Feeling)
		feeling = &f
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.workout_sessions (id, user_id, session_date, completed_at, feeling)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			completed_at = EXCLUDED.completed_at,
			feeling = EXCLUDED.feeling`,
		s.ID, userID, s.Date, s.CompletedAt, feeling,
	)
	return err
}
