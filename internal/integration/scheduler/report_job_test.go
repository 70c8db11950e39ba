package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/okr-bot/backend/config"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/integration/adapters"
	"github.com/okr-bot/backend/internal/integration/persistence/memory"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[int64][]string
	err      error
	signal   chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		messages: make(map[int64][]string),
		signal:   make(chan struct{}, 10),
	}
}

func (n *recordingNotifier) Send(_ context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages[chatID] = append(n.messages[chatID], text)
	select {
	case n.signal <- struct{}{}:
	default:
	}
	return nil
}

func newOverallReport(t *testing.T) *report.GenerateOverallReportUseCase {
	t.Helper()
	storage := memory.NewStorage()
	_, err := objective.NewCreateObjectiveUseCase(storage).Execute(context.Background(), objective.CreateObjectiveInput{
		Title: "Grow revenue",
		Owner: "alice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return report.NewGenerateOverallReportUseCase(storage, adapters.NewSystemClock())
}

func TestReportJob_RunOnce(t *testing.T) {
	notifier := newRecordingNotifier()
	job := NewReportJob(config.ReportConfig{Cron: "0 0 9 * * MON", ChatID: -100}, newOverallReport(t), notifier)

	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := notifier.messages[-100]
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	for _, want := range []string{"OKR REPORT", "Grow revenue", "Health Score"} {
		if !strings.Contains(sent[0], want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, sent[0])
		}
	}
}

func TestReportJob_RunOnceNotifierError(t *testing.T) {
	notifier := newRecordingNotifier()
	notifier.err = errors.New("chat unavailable")
	job := NewReportJob(config.ReportConfig{Cron: "0 0 9 * * MON", ChatID: -100}, newOverallReport(t), notifier)

	if err := job.RunOnce(context.Background()); err == nil || !strings.Contains(err.Error(), "chat unavailable") {
		t.Errorf("expected notifier error, got %v", err)
	}
}

func TestReportJob_StartValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ReportConfig
	}{
		{name: "invalid schedule", cfg: config.ReportConfig{Cron: "every monday", ChatID: 1}},
		{name: "missing chat", cfg: config.ReportConfig{Cron: "0 0 9 * * MON"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewReportJob(tt.cfg, newOverallReport(t), newRecordingNotifier())
			if err := job.Start(context.Background()); err == nil {
				job.Stop()
				t.Error("expected error")
			}
		})
	}
}

func TestReportJob_PostsOnSchedule(t *testing.T) {
	notifier := newRecordingNotifier()
	job := NewReportJob(config.ReportConfig{Cron: "* * * * * *", ChatID: 7}, newOverallReport(t), notifier)

	if err := job.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer job.Stop()

	select {
	case <-notifier.signal:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for scheduled report")
	}
}

func TestReportJob_StopWithoutStart(t *testing.T) {
	job := NewReportJob(config.ReportConfig{}, nil, nil)
	job.Stop()
}
