// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers accepted by StorageConfig.Driver.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Report   ReportConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
	Enabled      bool
	// ReportRateLimit caps report requests per caller per minute; 0 disables it.
	ReportRateLimit int
}

// StorageConfig selects and configures the OKR storage backend.
type StorageConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration. An empty URL disables Redis.
type RedisConfig struct {
	URL        string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// TelegramConfig holds chat bot configuration. An empty token disables the bot.
type TelegramConfig struct {
	Token        string
	AllowedUsers []string
	PollTimeout  int
}

// ReportConfig holds the scheduled report configuration.
type ReportConfig struct {
	Enabled bool
	Cron    string
	ChatID  int64
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables.
func Load() *Config {
	reportCron := getEnv("REPORT_CRON", "")
	reportChatID := getEnvAsInt64("REPORT_CHAT_ID", 0)

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
			Enabled:      getEnvAsBool("HTTP_ENABLED", true),

			ReportRateLimit: getEnvAsInt("REPORT_RATE_LIMIT", 30),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverMemory)),
			DSN:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 15*time.Minute),
		},
		Telegram: TelegramConfig{
			Token:        getEnv("TELEGRAM_BOT_TOKEN", ""),
			AllowedUsers: getEnvAsList("TELEGRAM_ALLOWED_USERS"),
			PollTimeout:  getEnvAsInt("TELEGRAM_POLL_TIMEOUT", 30),
		},
		Report: ReportConfig{
			Enabled: getEnvAsBool("REPORT_ENABLED", reportCron != "" && reportChatID != 0),
			Cron:    reportCron,
			ChatID:  reportChatID,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// SlogLevel maps the configured level name to a slog level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
