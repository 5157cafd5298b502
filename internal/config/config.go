package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения
type Config struct {
	AppEnv   string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis для скрытых алертов
	RedisAddr   string
	DismissTTL  time.Duration
	CORSOrigins []string

	// Telegram (пустой токен = доставка отключена)
	BotToken string

	// Ежедневная сводка
	BriefingCron     string // cron с секундами, например "0 0 8 * * *"
	BriefingTimezone *time.Location

	ExportDir string
}

// Load загружает конфигурацию из переменных окружения или .env файла
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. A missing file is not an error;
// variables already set in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		env = make(map[string]string)
	}

	getEnv := func(key, defaultValue string) string {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
		if value, ok := env[key]; ok && value != "" {
			return value
		}
		return defaultValue
	}

	ttl, err := time.ParseDuration(getEnv("REDIS_DISMISS_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DISMISS_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("REDIS_DISMISS_TTL must be positive, got %s", ttl)
	}

	tzName := getEnv("BRIEFING_TIMEZONE", "UTC")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("BRIEFING_TIMEZONE %q: %w", tzName, err)
	}

	port := getEnv("HTTP_PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("HTTP_PORT %q is not a number", port)
	}

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		HTTPPort: port,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "postgres"),

		RedisAddr:   getEnv("REDIS_ADDR", ""),
		DismissTTL:  ttl,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		BotToken: getEnv("BOT_TOKEN", ""),

		BriefingCron:     getEnv("BRIEFING_CRON", "0 0 8 * * *"),
		BriefingTimezone: tz,

		ExportDir: getEnv("EXPORT_DIR", ""),
	}

	return cfg, nil
}

// DSN возвращает строку подключения к базе данных
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// DeliveryEnabled reports whether briefings should be sent to Telegram
func (c *Config) DeliveryEnabled() bool {
	return c.BotToken != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
