package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DB    DBConfig
	Log   LogConfig
	S3    S3Config
	Email EmailConfig
	Admin AdminConfig
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	Name         string        `mapstructure:"name"`
	SSLMode      string        `mapstructure:"sslmode"`
	MaxOpen      int           `mapstructure:"max_open"`
	MaxIdle      int           `mapstructure:"max_idle"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// S3Config holds the report archive bucket settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// AdminConfig holds limits and defaults of the admin operations.
type AdminConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
	SearchLimit     int `mapstructure:"search_limit"`
	ScanWindowDays  int `mapstructure:"scan_window_days"`
	ExpiryDaysAhead int `mapstructure:"expiry_days_ahead"`
}

// Load reads configuration from an optional .env file and environment
// variables with the PETTAG_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PETTAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "pettag")
	v.SetDefault("db.password", "pettag_secret")
	v.SetDefault("db.name", "pettag_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.query_timeout", "10s")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "pettag-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@pettag.in")
	v.SetDefault("email.from_name", "PetTag")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Admin defaults
	v.SetDefault("admin.default_page_size", 50)
	v.SetDefault("admin.max_page_size", 100)
	v.SetDefault("admin.search_limit", 20)
	v.SetDefault("admin.scan_window_days", 30)
	v.SetDefault("admin.expiry_days_ahead", 30)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"db.host":                 "PETTAG_DB_HOST",
		"db.port":                 "PETTAG_DB_PORT",
		"db.user":                 "PETTAG_DB_USER",
		"db.password":             "PETTAG_DB_PASSWORD",
		"db.name":                 "PETTAG_DB_NAME",
		"db.sslmode":              "PETTAG_DB_SSLMODE",
		"db.max_open":             "PETTAG_DB_MAX_OPEN",
		"db.max_idle":             "PETTAG_DB_MAX_IDLE",
		"db.query_timeout":        "PETTAG_DB_QUERY_TIMEOUT",
		"log.level":               "PETTAG_LOG_LEVEL",
		"log.format":              "PETTAG_LOG_FORMAT",
		"s3.region":               "PETTAG_S3_REGION",
		"s3.bucket":               "PETTAG_S3_BUCKET",
		"s3.endpoint":             "PETTAG_S3_ENDPOINT",
		"s3.access_key":           "PETTAG_S3_ACCESS_KEY",
		"s3.secret_key":           "PETTAG_S3_SECRET_KEY",
		"s3.presign_expiry":       "PETTAG_S3_PRESIGN_EXPIRY",
		"email.provider":          "PETTAG_EMAIL_PROVIDER",
		"email.region":            "PETTAG_EMAIL_REGION",
		"email.from_address":      "PETTAG_EMAIL_FROM_ADDRESS",
		"email.from_name":         "PETTAG_EMAIL_FROM_NAME",
		"email.frontend_url":      "PETTAG_EMAIL_FRONTEND_URL",
		"admin.default_page_size": "PETTAG_ADMIN_DEFAULT_PAGE_SIZE",
		"admin.max_page_size":     "PETTAG_ADMIN_MAX_PAGE_SIZE",
		"admin.search_limit":      "PETTAG_ADMIN_SEARCH_LIMIT",
		"admin.scan_window_days":  "PETTAG_ADMIN_SCAN_WINDOW_DAYS",
		"admin.expiry_days_ahead": "PETTAG_ADMIN_EXPIRY_DAYS_AHEAD",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.DB = DBConfig{
		Host:         v.GetString("db.host"),
		Port:         v.GetInt("db.port"),
		User:         v.GetString("db.user"),
		Password:     v.GetString("db.password"),
		Name:         v.GetString("db.name"),
		SSLMode:      v.GetString("db.sslmode"),
		MaxOpen:      v.GetInt("db.max_open"),
		MaxIdle:      v.GetInt("db.max_idle"),
		QueryTimeout: v.GetDuration("db.query_timeout"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Admin = AdminConfig{
		DefaultPageSize: v.GetInt("admin.default_page_size"),
		MaxPageSize:     v.GetInt("admin.max_page_size"),
		SearchLimit:     v.GetInt("admin.search_limit"),
		ScanWindowDays:  v.GetInt("admin.scan_window_days"),
		ExpiryDaysAhead: v.GetInt("admin.expiry_days_ahead"),
	}

	if err := cfg.Admin.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *AdminConfig) validate() error {
	if a.MaxPageSize < 1 {
		return fmt.Errorf("admin.max_page_size must be positive, got %d", a.MaxPageSize)
	}
	if a.DefaultPageSize < 1 || a.DefaultPageSize > a.MaxPageSize {
		return fmt.Errorf("admin.default_page_size must be in [1, %d], got %d", a.MaxPageSize, a.DefaultPageSize)
	}
	if a.SearchLimit < 1 {
		return fmt.Errorf("admin.search_limit must be positive, got %d", a.SearchLimit)
	}
	if a.ScanWindowDays < 1 {
		return fmt.Errorf("admin.scan_window_days must be positive, got %d", a.ScanWindowDays)
	}
	return nil
}

// DefaultAdmin returns the admin limits with the built-in defaults.
func DefaultAdmin() AdminConfig {
	return AdminConfig{
		DefaultPageSize: 50,
		MaxPageSize:     100,
		SearchLimit:     20,
		ScanWindowDays:  30,
		ExpiryDaysAhead: 30,
	}
}
