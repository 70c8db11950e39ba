package objective

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// GetObjectiveStatsInput represents the input for objective statistics.
type GetObjectiveStatsInput struct {
	ObjectiveID uuid.UUID
}

// GetObjectiveStatsOutput represents the statistics of a single objective.
type GetObjectiveStatsOutput struct {
	Objective           *entity.Objective
	KeyResults          []*entity.KeyResult
	KeyResultsCount     int
	CompletedKeyResults int
	Progress            int
	IsOverdue           bool
	DaysUntilDue        *int
}

// GetObjectiveStatsUseCase computes statistics for an objective.
type GetObjectiveStatsUseCase struct {
	storage adapter.OKRStorage
	clock   adapter.Clock
}

// NewGetObjectiveStatsUseCase creates a new GetObjectiveStatsUseCase instance.
func NewGetObjectiveStatsUseCase(storage adapter.OKRStorage, clock adapter.Clock) *GetObjectiveStatsUseCase {
	return &GetObjectiveStatsUseCase{
		storage: storage,
		clock:   clock,
	}
}

// Execute computes the objective statistics.
func (uc *GetObjectiveStatsUseCase) Execute(ctx context.Context, input GetObjectiveStatsInput) (*GetObjectiveStatsOutput, error) {
	objective, err := uc.storage.GetObjective(ctx, input.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find objective: %w", err)
	}
	if objective == nil {
		return nil, notFoundError()
	}

	keyResults, err := uc.storage.ListKeyResults(ctx, entity.KeyResultFilter{ObjectiveID: &objective.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list key results: %w", err)
	}

	completed := 0
	for _, kr := range keyResults {
		if kr.Status == entity.KeyResultStatusCompleted {
			completed++
		}
	}

	now := uc.clock.Now()

	return &GetObjectiveStatsOutput{
		Objective:           objective,
		KeyResults:          keyResults,
		KeyResultsCount:     len(keyResults),
		CompletedKeyResults: completed,
		Progress:            entity.AggregateProgress(keyResults),
		IsOverdue:           objective.IsOverdue(now),
		DaysUntilDue:        objective.DaysUntilDue(now),
	}, nil
}
