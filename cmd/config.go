package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	DBStatementTimeout time.Duration

	OutboxRelaySchedule string
	OutboxRelayBatch    int
	OutboxMaxAttempts   int
	OutboxGracePeriod   time.Duration

	OpenAPIValidation bool
	LogLevel          slog.Level
}

// LoadConfig reads the environment. Values from envFile fill in variables
// that are not already set; a missing file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:            getenv("HTTP_PORT", "8080"),
		DBHost:              getenv("DB_HOST", "localhost"),
		DBPort:              getenv("DB_PORT", "5432"),
		DBUser:              getenv("DB_USER", "postgres"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME", "freight"),
		DBSslMode:           getenv("DB_SSLMODE", "disable"),
		OutboxRelaySchedule: os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		OutboxGracePeriod:   time.Minute,
	}

	var err error
	if cfg.DBStatementTimeout, err = durationEnv("DB_STATEMENT_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OutboxRelayBatch, err = intEnv("OUTBOX_RELAY_BATCH", 100); err != nil {
		return Config{}, err
	}
	if cfg.OutboxMaxAttempts, err = intEnv("OUTBOX_MAX_ATTEMPTS", 10); err != nil {
		return Config{}, err
	}
	if cfg.OpenAPIValidation, err = boolEnv("OPENAPI_VALIDATION", true); err != nil {
		return Config{}, err
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string. Sessions run in UTC so calendar
// dates compare the same way they are written.
func (c Config) DSN() string {
	parts := []string{
		"host=" + c.DBHost,
		"port=" + c.DBPort,
		"user=" + c.DBUser,
		"password=" + c.DBPassword,
		"dbname=" + c.DBName,
		"sslmode=" + c.DBSslMode,
		"TimeZone=UTC",
	}
	if c.DBStatementTimeout > 0 {
		parts = append(parts, fmt.Sprintf("statement_timeout=%d", c.DBStatementTimeout.Milliseconds()))
	}
	return strings.Join(parts, " ")
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
