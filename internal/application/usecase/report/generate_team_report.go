package report

import (
	"context"
	"fmt"
	"time"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// TeamReportInput represents the input for a per-owner report.
type TeamReportInput struct {
	Owner string
}

// TeamReportOutput represents a report scoped to one owner.
type TeamReportOutput struct {
	Owner             string
	GeneratedAt       time.Time
	Summary           Summary
	Objectives        []*entity.Objective
	KeyResults        []*entity.KeyResult
	UpcomingDeadlines []*entity.Objective
	AtRiskItems       []*entity.KeyResult
}

// GenerateTeamReportUseCase builds a report over the objectives and key results one user owns or is assigned to.
type GenerateTeamReportUseCase struct {
	storage  adapter.OKRStorage
	upcoming *objective.ListUpcomingDeadlinesUseCase
	atRisk   *keyresult.ListAtRiskKeyResultsUseCase
	clock    adapter.Clock
}

// NewGenerateTeamReportUseCase creates a new GenerateTeamReportUseCase instance.
func NewGenerateTeamReportUseCase(
	storage adapter.OKRStorage,
	upcoming *objective.ListUpcomingDeadlinesUseCase,
	atRisk *keyresult.ListAtRiskKeyResultsUseCase,
	clock adapter.Clock,
) *GenerateTeamReportUseCase {
	return &GenerateTeamReportUseCase{
		storage:  storage,
		upcoming: upcoming,
		atRisk:   atRisk,
		clock:    clock,
	}
}

// Execute generates the report.
func (uc *GenerateTeamReportUseCase) Execute(ctx context.Context, input TeamReportInput) (*TeamReportOutput, error) {
	owner := entity.NormalizeUser(input.Owner)
	if owner == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeMissingReportOwner, "owner is required")
	}

	objectives, err := uc.storage.ListObjectives(ctx, entity.ObjectiveFilter{Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	keyResults, err := uc.storage.ListKeyResults(ctx, entity.KeyResultFilter{Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list key results: %w", err)
	}

	upcoming, err := uc.upcoming.Execute(ctx, objective.ListDeadlinesInput{Owner: owner})
	if err != nil {
		return nil, err
	}
	atRisk, err := uc.atRisk.Execute(ctx, keyresult.ListAtRiskKeyResultsInput{Owner: owner})
	if err != nil {
		return nil, err
	}

	return &TeamReportOutput{
		Owner:             owner,
		GeneratedAt:       uc.clock.Now(),
		Summary:           Summarize(objectives, keyResults),
		Objectives:        objectives,
		KeyResults:        keyResults,
		UpcomingDeadlines: upcoming.Objectives,
		AtRiskItems:       atRisk.KeyResults,
	}, nil
}
