package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Workday      WorkdayConfig
	OAuth2Google OAuth2GoogleConfig
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
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// WorkdayConfig holds the attendance and payroll schedule defaults.
// The legacy system hard-coded these; here they are configuration.
type WorkdayConfig struct {
	StartHour           int
	EndHour             int
	GraceMinutes        int
	WorkingDaysPerMonth int
	HoursPerDay         int
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments.
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
		Name:     getEnv("DB_NAME", "sitehr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Workday schedule configuration
	workday, err := loadWorkday()
	if err != nil {
		return nil, err
	}
	config.Workday = workday

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadWorkday() (WorkdayConfig, error) {
	workday := WorkdayConfig{}
	fields := []struct {
		env      string
		fallback string
		dst      *int
	}{
		{"WORKDAY_START_HOUR", "9", &workday.StartHour},
		{"WORKDAY_END_HOUR", "17", &workday.EndHour},
		{"GRACE_MINUTES", "15", &workday.GraceMinutes},
		{"WORKING_DAYS_PER_MONTH", "22", &workday.WorkingDaysPerMonth},
		{"HOURS_PER_DAY", "8", &workday.HoursPerDay},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(getEnv(f.env, f.fallback))
		if err != nil {
			return WorkdayConfig{}, fmt.Errorf("invalid %s: %w", f.env, err)
		}
		*f.dst = v
	}
	return workday, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Workday.StartHour < 0 || c.Workday.StartHour > 23 {
		return fmt.Errorf("WORKDAY_START_HOUR must be between 0 and 23")
	}
	if c.Workday.EndHour <= c.Workday.StartHour || c.Workday.EndHour > 23 {
		return fmt.Errorf("WORKDAY_END_HOUR must be after WORKDAY_START_HOUR")
	}
	if c.Workday.GraceMinutes < 0 {
		return fmt.Errorf("GRACE_MINUTES must not be negative")
	}
	if c.Workday.WorkingDaysPerMonth <= 0 {
		return fmt.Errorf("WORKING_DAYS_PER_MONTH must be positive")
	}
	if c.Workday.HoursPerDay <= 0 {
		return fmt.Errorf("HOURS_PER_DAY must be positive")
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
		return []string{}
	}
	return strings.Split(value, ",")
}
