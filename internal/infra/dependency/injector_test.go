package dependency

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/okr-bot/backend/config"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Environment: "test", ReportRateLimit: 30},
		Storage: config.StorageConfig{Driver: driver, MaxOpenConns: 5, MaxIdleConns: 1},
	}
}

func openInjector(t *testing.T, cfg *config.Config) *Injector {
	t.Helper()

	infra, closeInfra, err := OpenInfrastructure(cfg)
	if err != nil {
		t.Fatalf("OpenInfrastructure error: %v", err)
	}
	t.Cleanup(func() { _ = closeInfra() })

	injector, err := NewInjector(cfg, infra)
	if err != nil {
		t.Fatalf("NewInjector error: %v", err)
	}
	return injector
}

func TestNewInjector_ServesHTTP(t *testing.T) {
	for _, driver := range []string{config.StorageDriverMemory, config.StorageDriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(driver)
			if driver == config.StorageDriverSQLite {
				cfg.Storage.DSN = filepath.Join(t.TempDir(), "okr.db")
			}

			injector := openInjector(t, cfg)
			if injector.Bot != nil || injector.ReportJob != nil {
				t.Fatal("expected chat components disabled without a token")
			}
			engine := injector.Router.Setup(cfg.Server.Environment)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/objectives", strings.NewReader(`{"title":"Grow revenue","description":"Q3"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", "@alice")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
			}
			var created map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if created["owner"] != "alice" {
				t.Errorf("expected caller as owner, got %v", created["owner"])
			}

			rec = httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"database":"connected"`) {
				t.Errorf("unexpected health response %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestNewInjector_ChatComponents(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(config.StorageDriverMemory)
	cfg.Redis.URL = "redis://" + mr.Addr()
	cfg.Telegram.Token = "fake-token"
	cfg.Report = config.ReportConfig{Enabled: true, Cron: "0 0 9 * * MON", ChatID: -100}

	injector := openInjector(t, cfg)
	if injector.Bot == nil {
		t.Error("expected bot to be created")
	}
	if injector.ReportJob == nil {
		t.Error("expected report job to be created")
	}

	rec := httptest.NewRecorder()
	injector.Router.Setup(cfg.Server.Environment).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if !strings.Contains(rec.Body.String(), `"redis":"connected"`) {
		t.Errorf("expected redis connected, got %s", rec.Body.String())
	}
}

func TestNewInjector_ReportWithoutBot(t *testing.T) {
	cfg := testConfig(config.StorageDriverMemory)
	cfg.Report = config.ReportConfig{Enabled: true, Cron: "0 0 9 * * MON", ChatID: -100}

	if injector := openInjector(t, cfg); injector.ReportJob != nil {
		t.Error("expected report job to be skipped without a bot")
	}
}

func TestOpenInfrastructure_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "unsupported driver", cfg: testConfig("mongo")},
		{name: "postgres without dsn", cfg: testConfig(config.StorageDriverPostgres)},
		{
			name: "bad redis url",
			cfg: func() *config.Config {
				cfg := testConfig(config.StorageDriverMemory)
				cfg.Redis.URL = "not-a-url"
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, closeInfra, err := OpenInfrastructure(tt.cfg); err == nil {
				_ = closeInfra()
				t.Error("expected error")
			}
		})
	}
}
