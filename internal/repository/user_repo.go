package repository

import (
	"context"
	"database/sql"
	"time"

	"dailycoach/internal/models"
)

// UserRepository работает с профилями пользователей
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт репозиторий пользователей
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, name, COALESCE(telegram_chat_id, 0), weight_kg, height_cm, birth_date,
	COALESCE(gender, ''), fitness_goal, experience_level, body_fat_percent, language`

func scanUser(row interface{ Scan(...any) error }, now time.Time) (*models.UserProfile, error) {
	var (
		u         models.UserProfile
		birthDate sql.NullTime
		bodyFat   sql.NullFloat64
		gender    string
		goal      string
		level     string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.TelegramChatID, &u.WeightKg, &u.HeightCm, &birthDate,
		&gender, &goal, &level, &bodyFat, &u.Language); err != nil {
		return nil, err
	}
	u.Gender = models.Gender(gender)
	u.FitnessGoal = models.FitnessGoal(goal)
	u.ExperienceLevel = models.ExperienceLevel(level)
	if birthDate.Valid {
		u.Age = AgeAt(birthDate.Time, now)
	}
	if bodyFat.Valid {
		bf := bodyFat.Float64
		u.BodyFatPercent = &bf
	}
	return &u, nil
}

// GetByID возвращает профиль по ID
func (r *UserRepository) GetByID(ctx context.Context, id int, now time.Time) (*models.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM public.users WHERE id = $1`, id)
	u, err := scanUser(row, now)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ListActive возвращает активных пользователей
func (r *UserRepository) ListActive(ctx context.Context, now time.Time) ([]models.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM public.users WHERE is_active = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserProfile
	for rows.Next() {
		u, err := scanUser(rows, now)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateWeight сохраняет новый вес в профиле
func (r *UserRepository) UpdateWeight(ctx context.Context, id int, weightKg float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE public.users SET weight_kg = $1 WHERE id = $2`, weightKg, id)
	return err
}

// AgeAt returns full years between birth and now
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
