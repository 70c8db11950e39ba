package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/infra/dependency"
	"github.com/okr-bot/backend/internal/integration/persistence/memory"
)

func seededUseCases(t *testing.T) *dependency.UseCases {
	t.Helper()
	useCases := dependency.NewUseCases(memory.NewStorage(), nil)
	_, err := useCases.Objective.Create.Execute(context.Background(), objective.CreateObjectiveInput{
		Title: "Grow revenue",
		Owner: "alice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return useCases
}

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name      string
		owner     string
		timeframe string
		wantKey   string
	}{
		{name: "overall", wantKey: "summary"},
		{name: "team", owner: "@alice", wantKey: "owner"},
		{name: "progress", timeframe: "30d", wantKey: "timeframe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := printReport(context.Background(), &out, seededUseCases(t), tt.owner, tt.timeframe); err != nil {
				t.Fatalf("printReport error: %v", err)
			}

			var decoded map[string]any
			if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out.String())
			}
			if _, ok := decoded[tt.wantKey]; !ok {
				t.Errorf("expected key %q in %s", tt.wantKey, out.String())
			}
		})
	}
}

func TestPrintReport_InvalidTimeframe(t *testing.T) {
	var out bytes.Buffer
	if err := printReport(context.Background(), &out, seededUseCases(t), "", "soon"); err == nil {
		t.Error("expected error for invalid timeframe")
	}
}

func TestReportCommand(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REDIS_URL", "")

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"report"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(out.String(), `"empty": true`) {
		t.Errorf("expected empty report, got %s", out.String())
	}
}

func TestServe_NothingToRun(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REDIS_URL", "")
	t.Setenv("HTTP_ENABLED", "false")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	root := newRootCmd(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "nothing to run") {
		t.Errorf("expected nothing to run error, got %v", err)
	}
}
