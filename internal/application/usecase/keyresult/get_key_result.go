package keyresult

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// GetKeyResultInput represents the input for getting a key result.
type GetKeyResultInput struct {
	KeyResultID uuid.UUID
}

// GetKeyResultOutput represents the output of getting a key result.
// KeyResult is nil when no key result has the requested ID.
type GetKeyResultOutput struct {
	KeyResult *entity.KeyResult
}

// GetKeyResultUseCase handles getting a key result by ID.
type GetKeyResultUseCase struct {
	storage adapter.OKRStorage
}

// NewGetKeyResultUseCase creates a new GetKeyResultUseCase instance.
func NewGetKeyResultUseCase(storage adapter.OKRStorage) *GetKeyResultUseCase {
	return &GetKeyResultUseCase{
		storage: storage,
	}
}

// Execute performs the key result retrieval.
func (uc *GetKeyResultUseCase) Execute(ctx context.Context, input GetKeyResultInput) (*GetKeyResultOutput, error) {
	keyResult, err := uc.storage.GetKeyResult(ctx, input.KeyResultID)
	if err != nil {
		return nil, fmt.Errorf("failed to find key result: %w", err)
	}

	return &GetKeyResultOutput{
		KeyResult: keyResult,
	}, nil
}

// GetKeyResultStatsOutput represents the statistics of a single key result.
type GetKeyResultStatsOutput struct {
	KeyResult          *entity.KeyResult
	Objective          *entity.Objective
	ProgressPercentage int
	Status             entity.ProgressStatus
	RemainingToTarget  decimal.Decimal
	NextMilestone      *entity.Milestone
}

// GetKeyResultStatsUseCase computes statistics for a key result.
type GetKeyResultStatsUseCase struct {
	storage adapter.OKRStorage
}

// NewGetKeyResultStatsUseCase creates a new GetKeyResultStatsUseCase instance.
func NewGetKeyResultStatsUseCase(storage adapter.OKRStorage) *GetKeyResultStatsUseCase {
	return &GetKeyResultStatsUseCase{
		storage: storage,
	}
}

// Execute computes the key result statistics.
func (uc *GetKeyResultStatsUseCase) Execute(ctx context.Context, input GetKeyResultInput) (*GetKeyResultStatsOutput, error) {
	keyResult, err := uc.storage.GetKeyResult(ctx, input.KeyResultID)
	if err != nil {
		return nil, fmt.Errorf("failed to find key result: %w", err)
	}
	if keyResult == nil {
		return nil, notFoundError()
	}

	parent, err := uc.storage.GetObjective(ctx, keyResult.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find objective: %w", err)
	}

	return &GetKeyResultStatsOutput{
		KeyResult:          keyResult,
		Objective:          parent,
		ProgressPercentage: keyResult.Progress(),
		Status:             keyResult.ProgressStatus(),
		RemainingToTarget:  keyResult.RemainingToTarget(),
		NextMilestone:      keyResult.NextMilestone(),
	}, nil
}
