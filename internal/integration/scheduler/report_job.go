// Package scheduler posts the overall OKR report to a chat on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"

	"github.com/okr-bot/backend/config"
	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/integration/telegram"
)

const (
	// runTimeout bounds a single report run.
	runTimeout = 30 * time.Second
	// stopTimeout bounds how long Stop waits for a running job.
	stopTimeout = 5 * time.Second
)

// Notifier delivers a formatted message to a chat.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// ReportJob generates the overall report and posts it to the configured chat.
type ReportJob struct {
	schedule string
	chatID   int64
	report   *report.GenerateOverallReportUseCase
	notifier Notifier

	mu     sync.Mutex
	cron   *rcron.Cron
	cancel context.CancelFunc
}

// NewReportJob creates a new ReportJob. The schedule uses the six field cron format with seconds.
func NewReportJob(cfg config.ReportConfig, overall *report.GenerateOverallReportUseCase, notifier Notifier) *ReportJob {
	return &ReportJob{
		schedule: cfg.Cron,
		chatID:   cfg.ChatID,
		report:   overall,
		notifier: notifier,
	}
}

// Start registers the job and starts the cron runner.
func (j *ReportJob) Start(ctx context.Context) error {
	if j.chatID == 0 {
		return fmt.Errorf("report chat id is required")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := rcron.New(rcron.WithSeconds())
	if _, err := c.AddFunc(j.schedule, func() {
		if err := j.RunOnce(runCtx); err != nil {
			slog.Error("Scheduled report failed", "chat_id", j.chatID, "error", err)
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("invalid report schedule %q: %w", j.schedule, err)
	}

	j.mu.Lock()
	j.cron = c
	j.cancel = cancel
	j.mu.Unlock()

	c.Start()
	slog.Info("Report scheduler started", "schedule", j.schedule, "chat_id", j.chatID)
	return nil
}

// Stop halts the runner and waits for a running report to finish.
func (j *ReportJob) Stop() {
	j.mu.Lock()
	c, cancel := j.cron, j.cancel
	j.cron, j.cancel = nil, nil
	j.mu.Unlock()

	if c == nil {
		return
	}

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(stopTimeout):
		slog.Warn("Report scheduler stop timed out waiting for running job")
	}
	cancel()
	slog.Info("Report scheduler stopped")
}

// RunOnce generates the report and sends it immediately.
func (j *ReportJob) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	out, err := j.report.Execute(ctx, report.OverallReportInput{})
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if err := j.notifier.Send(ctx, j.chatID, telegram.FormatOverallReport(out)); err != nil {
		return fmt.Errorf("failed to post report: %w", err)
	}

	slog.Info("Scheduled report posted", "chat_id", j.chatID, "empty", out.Empty)
	return nil
}
