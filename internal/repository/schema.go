package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the tables the snapshot stores read from
const schema = `
CREATE TABLE IF NOT EXISTS public.users (
	id                SERIAL PRIMARY KEY,
	name              TEXT NOT NULL,
	telegram_chat_id  BIGINT,
	weight_kg         NUMERIC(5,2) NOT NULL,
	height_cm         NUMERIC(5,1) NOT NULL,
	birth_date        DATE,
	gender            TEXT,
	fitness_goal      TEXT NOT NULL DEFAULT 'maintenance',
	experience_level  TEXT NOT NULL DEFAULT 'beginner',
	body_fat_percent  NUMERIC(4,1),
	language          TEXT NOT NULL DEFAULT 'en',
	is_active         BOOLEAN NOT NULL DEFAULT true,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS public.daily_checkins (
	user_id         INT NOT NULL REFERENCES public.users(id),
	checkin_date    DATE NOT NULL,
	sleep_hours     NUMERIC(4,2) NOT NULL,
	sleep_quality   SMALLINT NOT NULL,
	stress_level    SMALLINT NOT NULL,
	soreness_level  SMALLINT NOT NULL,
	energy_level    SMALLINT NOT NULL,
	PRIMARY KEY (user_id, checkin_date)
);

CREATE TABLE IF NOT EXISTS public.user_schedules (
	user_id                  INT PRIMARY KEY REFERENCES public.users(id),
	scheduled_days_per_week  SMALLINT NOT NULL DEFAULT 3,
	preferred_days           SMALLINT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS public.workout_sessions (
	id            TEXT PRIMARY KEY,
	user_id       INT NOT NULL REFERENCES public.users(id),
	session_date  TIMESTAMPTZ NOT NULL,
	completed_at  TIMESTAMPTZ,
	feeling       TEXT
);

CREATE TABLE IF NOT EXISTS public.exercise_progressions (
	user_id                          INT NOT NULL REFERENCES public.users(id),
	exercise_id                      INT NOT NULL,
	exercise_name                    TEXT NOT NULL,
	functional_max_kg                NUMERIC(6,2) NOT NULL DEFAULT 0,
	consecutive_successful_sessions  INT NOT NULL DEFAULT 0,
	last_feeling                     TEXT,
	should_progress                  BOOLEAN NOT NULL DEFAULT false,
	updated_at                       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, exercise_id)
);

CREATE TABLE IF NOT EXISTS public.nutrition_days (
	user_id               INT NOT NULL REFERENCES public.users(id),
	day                   DATE NOT NULL,
	protein_grams         NUMERIC(6,1) NOT NULL DEFAULT 0,
	target_protein_grams  NUMERIC(6,1) NOT NULL DEFAULT 0,
	hydration_liters      NUMERIC(4,2) NOT NULL DEFAULT 0,
	target_liters         NUMERIC(4,2) NOT NULL DEFAULT 0,
	meals_completed       SMALLINT NOT NULL DEFAULT 0,
	total_meals           SMALLINT NOT NULL DEFAULT 0,
	supplements_taken     SMALLINT NOT NULL DEFAULT 0,
	total_supplements     SMALLINT NOT NULL DEFAULT 0,
	PRIMARY KEY (user_id, day)
);

CREATE TABLE IF NOT EXISTS public.weight_logs (
	id           SERIAL PRIMARY KEY,
	user_id      INT NOT NULL REFERENCES public.users(id),
	weight_kg    NUMERIC(5,2) NOT NULL,
	recorded_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate creates missing tables
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
