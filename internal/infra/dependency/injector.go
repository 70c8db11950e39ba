// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okr-bot/backend/config"
	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/application/usecase/search"
	"github.com/okr-bot/backend/internal/infra/cache"
	"github.com/okr-bot/backend/internal/infra/server/router"
	"github.com/okr-bot/backend/internal/integration/adapters"
	"github.com/okr-bot/backend/internal/integration/entrypoint/controller"
	"github.com/okr-bot/backend/internal/integration/entrypoint/middleware"
	"github.com/okr-bot/backend/internal/integration/scheduler"
	"github.com/okr-bot/backend/internal/integration/session"
	"github.com/okr-bot/backend/internal/integration/telegram"
)

// Infrastructure holds the connections the application is built on.
type Infrastructure struct {
	Storage       adapter.OKRStorage
	StorageHealth controller.HealthChecker
	// Redis is optional; without it chat sessions are kept in memory.
	Redis *redis.Client
	// Clock defaults to the system clock.
	Clock adapter.Clock
}

// UseCases groups every use case of the application.
type UseCases struct {
	Objective      controller.ObjectiveUseCases
	KeyResult      controller.KeyResultUseCases
	OverallReport  *report.GenerateOverallReportUseCase
	TeamReport     *report.GenerateTeamReportUseCase
	ProgressReport *report.GenerateProgressReportUseCase
	Search         *search.SearchUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Storage  adapter.OKRStorage
	UseCases *UseCases
	Router   *router.Router

	// Bot is nil when no Telegram token is configured.
	Bot *telegram.Bot
	// ReportJob is nil when scheduled reports are disabled.
	ReportJob *scheduler.ReportJob
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, infra Infrastructure) (*Injector, error) {
	clock := infra.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	useCases := NewUseCases(infra.Storage, clock)

	// Create controllers
	var redisChecker controller.HealthChecker
	if infra.Redis != nil {
		client := infra.Redis
		redisChecker = func() bool { return cache.HealthCheck(client) }
	}
	healthController := controller.NewHealthController(cfg.Storage.Driver, infra.StorageHealth, redisChecker)
	objectiveController := controller.NewObjectiveController(useCases.Objective)
	keyResultController := controller.NewKeyResultController(useCases.KeyResult)
	reportController := controller.NewReportController(
		useCases.OverallReport,
		useCases.TeamReport,
		useCases.ProgressReport,
		useCases.Search,
	)

	// Test environments run unthrottled to keep scenarios deterministic
	reportLimit := cfg.Server.ReportRateLimit
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		reportLimit = 0
	}
	reportRateLimiter := middleware.NewRateLimiterWithConfig(reportLimit, time.Minute)

	r := router.NewRouter(healthController, objectiveController, keyResultController, reportController, reportRateLimiter)

	injector := &Injector{
		Config:   cfg,
		Storage:  infra.Storage,
		UseCases: useCases,
		Router:   r,
	}

	if cfg.Telegram.Token == "" {
		if cfg.Report.Enabled {
			slog.Warn("Scheduled reports need the Telegram bot, skipping", "chat_id", cfg.Report.ChatID)
		}
		return injector, nil
	}

	var sessions adapter.SessionStore
	if infra.Redis != nil {
		sessions = session.NewRedisStore(infra.Redis)
	} else {
		sessions = session.NewMemoryStore(clock)
	}

	handler := telegram.NewHandler(useCases.ChatServices(), sessions, cfg.Redis.SessionTTL)
	bot, err := telegram.NewBot(cfg.Telegram, handler)
	if err != nil {
		return nil, err
	}
	injector.Bot = bot

	if cfg.Report.Enabled {
		injector.ReportJob = scheduler.NewReportJob(cfg.Report, useCases.OverallReport, bot)
	}

	return injector, nil
}

// NewUseCases creates every use case over one storage so all surfaces share state.
// A nil clock means the system clock.
func NewUseCases(storage adapter.OKRStorage, clock adapter.Clock) *UseCases {
	if clock == nil {
		clock = adapters.NewSystemClock()
	}
	recalculate := objective.NewRecalculateProgressUseCase(storage)
	upcoming := objective.NewListUpcomingDeadlinesUseCase(storage, clock)
	atRisk := keyresult.NewListAtRiskKeyResultsUseCase(storage)

	return &UseCases{
		Objective: controller.ObjectiveUseCases{
			Create:         objective.NewCreateObjectiveUseCase(storage),
			Get:            objective.NewGetObjectiveUseCase(storage),
			List:           objective.NewListObjectivesUseCase(storage),
			Update:         objective.NewUpdateObjectiveUseCase(storage),
			Delete:         objective.NewDeleteObjectiveUseCase(storage),
			Stats:          objective.NewGetObjectiveStatsUseCase(storage, clock),
			SetStatus:      objective.NewSetObjectiveStatusUseCase(storage),
			AddAssignee:    objective.NewAddAssigneeUseCase(storage),
			RemoveAssignee: objective.NewRemoveAssigneeUseCase(storage),
			Overdue:        objective.NewListOverdueObjectivesUseCase(storage, clock),
			Upcoming:       upcoming,
		},
		KeyResult: controller.KeyResultUseCases{
			Create:         keyresult.NewCreateKeyResultUseCase(storage, recalculate),
			Get:            keyresult.NewGetKeyResultUseCase(storage),
			List:           keyresult.NewListKeyResultsUseCase(storage),
			Update:         keyresult.NewUpdateKeyResultUseCase(storage, recalculate),
			Delete:         keyresult.NewDeleteKeyResultUseCase(storage, recalculate),
			UpdateProgress: keyresult.NewUpdateProgressUseCase(storage, recalculate),
			AddMilestone:   keyresult.NewAddMilestoneUseCase(storage),
			Stats:          keyresult.NewGetKeyResultStatsUseCase(storage),
			AtRisk:         atRisk,
			Completed:      keyresult.NewListCompletedKeyResultsUseCase(storage),
		},
		OverallReport:  report.NewGenerateOverallReportUseCase(storage, clock),
		TeamReport:     report.NewGenerateTeamReportUseCase(storage, upcoming, atRisk, clock),
		ProgressReport: report.NewGenerateProgressReportUseCase(storage, clock),
		Search:         search.NewSearchUseCase(storage),
	}
}

// ChatServices selects the use cases the chat commands call.
func (u *UseCases) ChatServices() telegram.Services {
	return telegram.Services{
		CreateObjective:    u.Objective.Create,
		ListObjectives:     u.Objective.List,
		UpdateObjective:    u.Objective.Update,
		DeleteObjective:    u.Objective.Delete,
		ObjectiveStats:     u.Objective.Stats,
		SetObjectiveStatus: u.Objective.SetStatus,
		AddAssignee:        u.Objective.AddAssignee,
		RemoveAssignee:     u.Objective.RemoveAssignee,
		CreateKeyResult:    u.KeyResult.Create,
		ListKeyResults:     u.KeyResult.List,
		UpdateKeyResult:    u.KeyResult.Update,
		DeleteKeyResult:    u.KeyResult.Delete,
		UpdateProgress:     u.KeyResult.UpdateProgress,
		AddMilestone:       u.KeyResult.AddMilestone,
		OverallReport:      u.OverallReport,
		TeamReport:         u.TeamReport,
		Search:             u.Search,
	}
}
