// Package main is the entry point for the OKR bot.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okr-bot/backend/config"
	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/infra/dependency"
	"github.com/okr-bot/backend/internal/integration/entrypoint/dto"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "okrbot",
		Short:        "okrbot - track objectives and key results from chat",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger(cmd.ErrOrStderr(), config.Load().Log.SlogLevel())
		},
	}
	root.SetOut(out)

	root.AddCommand(newServeCmd(), newReportCmd())
	return root
}

func setupLogger(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, the Telegram bot and the report scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("Starting OKR bot",
		"environment", cfg.Server.Environment,
		"storage", cfg.Storage.Driver,
		"http", cfg.Server.Enabled,
		"telegram", cfg.Telegram.Token != "",
	)

	infra, closeInfra, err := dependency.OpenInfrastructure(cfg)
	if err != nil {
		return fmt.Errorf("failed to open infrastructure: %w", err)
	}
	defer func() {
		if err := closeInfra(); err != nil {
			slog.Error("Failed to close infrastructure", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, infra)
	if err != nil {
		return err
	}

	var srv *http.Server
	serverErr := make(chan error, 1)
	if cfg.Server.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv = &http.Server{
			Addr:         addr,
			Handler:      injector.Router.Setup(cfg.Server.Environment),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
		go func() {
			slog.Info("Server listening", "address", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	if injector.Bot != nil {
		if err := injector.Bot.Start(ctx); err != nil {
			return fmt.Errorf("failed to start telegram bot: %w", err)
		}
		defer injector.Bot.Stop()
	}

	if injector.ReportJob != nil {
		if err := injector.ReportJob.Start(ctx); err != nil {
			return fmt.Errorf("failed to start report scheduler: %w", err)
		}
		defer injector.ReportJob.Stop()
	}

	if srv == nil && injector.Bot == nil {
		return errors.New("nothing to run: enable HTTP or set TELEGRAM_BOT_TOKEN")
	}

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	slog.Info("Shutting down...")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
	}

	slog.Info("Shutdown complete")
	return nil
}

func newReportCmd() *cobra.Command {
	var owner, timeframe string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print an OKR report as JSON",
		Long: "Print the overall report. With --owner the report is scoped to one owner, " +
			"with --timeframe a progress snapshot is printed instead.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			infra, closeInfra, err := dependency.OpenInfrastructure(cfg)
			if err != nil {
				return fmt.Errorf("failed to open infrastructure: %w", err)
			}
			defer func() { _ = closeInfra() }()

			useCases := dependency.NewUseCases(infra.Storage, infra.Clock)
			return printReport(cmd.Context(), cmd.OutOrStdout(), useCases, owner, timeframe)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "scope the report to one owner")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "print a progress snapshot for the timeframe, e.g. 30d or 2w")
	return cmd
}

func printReport(ctx context.Context, out io.Writer, useCases *dependency.UseCases, owner, timeframe string) error {
	var (
		result any
		err    error
	)

	switch {
	case timeframe != "":
		result, err = useCases.ProgressReport.Execute(ctx, report.ProgressReportInput{Timeframe: timeframe})
	case owner != "":
		var team *report.TeamReportOutput
		team, err = useCases.TeamReport.Execute(ctx, report.TeamReportInput{Owner: owner})
		if err == nil {
			result = dto.ToTeamReportResponse(team)
		}
	default:
		result, err = useCases.OverallReport.Execute(ctx, report.OverallReportInput{})
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
