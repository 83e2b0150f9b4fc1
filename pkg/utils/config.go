package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RabbitMQ  RabbitMQConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// LogConfig drives InitLogger. Empty Level and Format follow App.Debug.
type LogConfig struct {
	Path       string
	Level      string // debug, info, warn, error
	Format     string // json or console
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	DraftTTL time.Duration
}

// CacheConfig controls the response cache for public catalog reads.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type SchedulerConfig struct {
	Enabled           bool
	ReconcileInterval time.Duration
	SessionCleanup    time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinebook")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("LOG_FORMAT", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 10)
	viper.SetDefault("LOG_MAX_BACKUPS", 7)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 28)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DRAFT_TTL", "30m")
	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("CACHE_TTL", "1m")
	viper.SetDefault("CACHE_PREFIX", "cinebook:cache")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("RABBITMQ_EXCHANGE", "cinebook.bookings")
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("SEAT_RECONCILE_INTERVAL", "5m")
	viper.SetDefault("SESSION_CLEANUP_INTERVAL", "1h")

	// A missing .env is fine, the environment alone can configure the service.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
			AllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Path:       viper.GetString("LOG_PATH"),
			Level:      viper.GetString("LOG_LEVEL"),
			Format:     viper.GetString("LOG_FORMAT"),
			MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			DraftTTL: viper.GetDuration("DRAFT_TTL"),
		},
		Cache: CacheConfig{
			Enabled: viper.GetBool("CACHE_ENABLED"),
			TTL:     viper.GetDuration("CACHE_TTL"),
			Prefix:  viper.GetString("CACHE_PREFIX"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      viper.GetString("RABBITMQ_URL"),
			Exchange: viper.GetString("RABBITMQ_EXCHANGE"),
		},
		Scheduler: SchedulerConfig{
			Enabled:           viper.GetBool("SCHEDULER_ENABLED"),
			ReconcileInterval: viper.GetDuration("SEAT_RECONCILE_INTERVAL"),
			SessionCleanup:    viper.GetDuration("SESSION_CLEANUP_INTERVAL"),
		},
	}

	return config, nil
}

// splitList reads a comma separated setting, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
