package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORAGE_DRIVER", "REPORT_CRON", "REPORT_CHAT_ID", "REPORT_ENABLED", "TELEGRAM_ALLOWED_USERS", "SESSION_TTL"} {
		t.Setenv(key, "")
	}
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg := Load()

	if cfg.Storage.Driver != StorageDriverMemory {
		t.Errorf("expected memory driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Report.Enabled {
		t.Error("expected report scheduler disabled without cron and chat id")
	}
	if len(cfg.Telegram.AllowedUsers) != 0 {
		t.Errorf("expected no allowed users, got %v", cfg.Telegram.AllowedUsers)
	}
	if cfg.Redis.SessionTTL != 15*time.Minute {
		t.Errorf("expected default session ttl, got %v", cfg.Redis.SessionTTL)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "okr.db")
	t.Setenv("REPORT_CRON", "0 0 9 * * MON")
	t.Setenv("REPORT_CHAT_ID", "-100123")
	t.Setenv("REPORT_ENABLED", "")
	t.Setenv("TELEGRAM_ALLOWED_USERS", " 42, 7 ,,")
	t.Setenv("SESSION_TTL", "5m")

	cfg := Load()

	if cfg.Storage.Driver != StorageDriverSQLite || cfg.Storage.DSN != "okr.db" {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
	if !cfg.Report.Enabled || cfg.Report.ChatID != -100123 {
		t.Errorf("unexpected report config: %+v", cfg.Report)
	}
	if len(cfg.Telegram.AllowedUsers) != 2 || cfg.Telegram.AllowedUsers[0] != "42" || cfg.Telegram.AllowedUsers[1] != "7" {
		t.Errorf("unexpected allowed users: %v", cfg.Telegram.AllowedUsers)
	}
	if cfg.Redis.SessionTTL != 5*time.Minute {
		t.Errorf("unexpected session ttl: %v", cfg.Redis.SessionTTL)
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "WARN", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "", want: slog.LevelInfo},
		{level: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := (LogConfig{Level: tt.level}).SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
