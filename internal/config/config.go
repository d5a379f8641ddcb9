package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Timesheet TimesheetConfig
	Export    ExportConfig
	Cron      CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// TimesheetConfig holds aggregation defaults. The overtime threshold is
// per local calendar day; requests may override it per run.
type TimesheetConfig struct {
	OvertimeThresholdMinutes int
	HoursPrecision           int
	StaleSessionAfterDays    int
}

// ExportConfig holds export renderer defaults
type ExportConfig struct {
	DefaultFields []string
}

// CronConfig controls the background job scheduler
type CronConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Timesheet aggregation configuration
	overtimeThreshold, err := strconv.Atoi(getEnv("TIMESHEET_OVERTIME_THRESHOLD_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_OVERTIME_THRESHOLD_MINUTES: %w", err)
	}
	hoursPrecision, err := strconv.Atoi(getEnv("TIMESHEET_HOURS_PRECISION", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_HOURS_PRECISION: %w", err)
	}
	staleAfterDays, err := strconv.Atoi(getEnv("TIMESHEET_STALE_SESSION_AFTER_DAYS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_STALE_SESSION_AFTER_DAYS: %w", err)
	}

	config.Timesheet = TimesheetConfig{
		OvertimeThresholdMinutes: overtimeThreshold,
		HoursPrecision:           hoursPrecision,
		StaleSessionAfterDays:    staleAfterDays,
	}

	// Export configuration
	config.Export = ExportConfig{
		DefaultFields: getEnvSlice("EXPORT_DEFAULT_FIELDS"),
	}

	// Cron configuration
	config.Cron = CronConfig{
		Enabled: getEnv("CRON_ENABLED", "true") == "true",
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Timesheet.OvertimeThresholdMinutes <= 0 {
		return fmt.Errorf("TIMESHEET_OVERTIME_THRESHOLD_MINUTES must be positive")
	}
	if c.Timesheet.HoursPrecision < 0 {
		return fmt.Errorf("TIMESHEET_HOURS_PRECISION must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
