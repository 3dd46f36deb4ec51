package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultJWTSecret     = "your-very-strong-jwt-secret"
	defaultDBPassword    = "password"
	defaultAdminPassword = ""
)

type Config struct {
	App struct {
		Env      string `env:"APP_ENV"   envDefault:"development"`
		Port     string `env:"PORT"      envDefault:"8088"`
		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"leaguehub_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		Secret      string `env:"JWT_SECRET"       envDefault:"your-very-strong-jwt-secret"`
		ExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24"`
	}
	Blacklist struct {
		RetentionDays        int `env:"BLACKLIST_RETENTION_DAYS"         envDefault:"7"`
		SweepIntervalMinutes int `env:"BLACKLIST_SWEEP_INTERVAL_MINUTES" envDefault:"60"`
	}
	Payment struct {
		SuccessRate              float64 `env:"PAYMENT_SUCCESS_RATE"       envDefault:"0.9"`
		SubscriptionDurationDays int     `env:"SUBSCRIPTION_DURATION_DAYS" envDefault:"365"`
	}
	Admin struct {
		Email    string `env:"ADMIN_EMAIL"`
		Password string `env:"ADMIN_PASSWORD"`
	}
}

// IsProduction reports whether internal error details must be withheld from clients.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpiryHours) * time.Hour
}

func (c *Config) BlacklistRetention() time.Duration {
	return time.Duration(c.Blacklist.RetentionDays) * 24 * time.Hour
}

func (c *Config) SubscriptionDuration() time.Duration {
	return time.Duration(c.Payment.SubscriptionDurationDays) * 24 * time.Hour
}

// LoadConfig loads configuration from environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	// --- Database Configuration ---
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", defaultDBPassword)
	cfg.DB.Name = getEnv("DB_NAME", "leaguehub_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// --- JWT Configuration ---
	cfg.JWT.Secret = getEnv("JWT_SECRET", defaultJWTSecret)

	// --- Admin bootstrap ---
	cfg.Admin.Email = getEnv("ADMIN_EMAIL", "")
	cfg.Admin.Password = getEnv("ADMIN_PASSWORD", defaultAdminPassword)

	var err error
	if cfg.JWT.ExpiryHours, err = getEnvAsInt("JWT_EXPIRY_HOURS", 24); err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}
	if cfg.Blacklist.RetentionDays, err = getEnvAsInt("BLACKLIST_RETENTION_DAYS", 7); err != nil {
		return nil, fmt.Errorf("invalid BLACKLIST_RETENTION_DAYS: %w", err)
	}
	if cfg.Blacklist.SweepIntervalMinutes, err = getEnvAsInt("BLACKLIST_SWEEP_INTERVAL_MINUTES", 60); err != nil {
		return nil, fmt.Errorf("invalid BLACKLIST_SWEEP_INTERVAL_MINUTES: %w", err)
	}
	if cfg.Payment.SuccessRate, err = getEnvAsFloat("PAYMENT_SUCCESS_RATE", 0.9); err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_SUCCESS_RATE: %w", err)
	}
	if cfg.Payment.SubscriptionDurationDays, err = getEnvAsInt("SUBSCRIPTION_DURATION_DAYS", 365); err != nil {
		return nil, fmt.Errorf("invalid SUBSCRIPTION_DURATION_DAYS: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JWT.Secret == defaultJWTSecret {
		log.Println("WARNING: Using default JWT secret. Please set JWT_SECRET for production.")
	}
	if cfg.DB.Password == defaultDBPassword && cfg.IsProduction() {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	return cfg, nil
}

// Validate rejects settings that would break token revocation or payments.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive, got %d", c.JWT.ExpiryHours)
	}
	// A blacklisted token must stay blacklisted for as long as its signature is valid.
	if c.BlacklistRetention() < c.TokenTTL() {
		return fmt.Errorf("BLACKLIST_RETENTION_DAYS (%d) must cover JWT_EXPIRY_HOURS (%d)",
			c.Blacklist.RetentionDays, c.JWT.ExpiryHours)
	}
	if c.Blacklist.SweepIntervalMinutes <= 0 {
		return fmt.Errorf("BLACKLIST_SWEEP_INTERVAL_MINUTES must be positive")
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("PAYMENT_SUCCESS_RATE must be within [0,1], got %v", c.Payment.SuccessRate)
	}
	if c.Payment.SubscriptionDurationDays <= 0 {
		return fmt.Errorf("SUBSCRIPTION_DURATION_DAYS must be positive")
	}
	return nil
}

// ConnectDB opens a postgres connection pool. The caller owns the returned handle
// and must close it at shutdown.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{TranslateError: true}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// CloseDB releases the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected number, got '%s'", key, valueStr)
	}
	return value, nil
}
