package keyresult

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// DeleteKeyResultInput represents the input for key result deletion.
type DeleteKeyResultInput struct {
	KeyResultID uuid.UUID
}

// DeleteKeyResultOutput represents the output of key result deletion.
type DeleteKeyResultOutput struct {
	KeyResult *entity.KeyResult
	Objective *entity.Objective
}

// DeleteKeyResultUseCase handles key result deletion logic.
type DeleteKeyResultUseCase struct {
	storage     adapter.OKRStorage
	recalculate *objective.RecalculateProgressUseCase
}

// NewDeleteKeyResultUseCase creates a new DeleteKeyResultUseCase instance.
func NewDeleteKeyResultUseCase(storage adapter.OKRStorage, recalculate *objective.RecalculateProgressUseCase) *DeleteKeyResultUseCase {
	return &DeleteKeyResultUseCase{
		storage:     storage,
		recalculate: recalculate,
	}
}

// Execute performs the key result deletion.
func (uc *DeleteKeyResultUseCase) Execute(ctx context.Context, input DeleteKeyResultInput) (*DeleteKeyResultOutput, error) {
	keyResult, err := uc.storage.GetKeyResult(ctx, input.KeyResultID)
	if err != nil {
		return nil, fmt.Errorf("failed to find key result: %w", err)
	}
	if keyResult == nil {
		return nil, notFoundError()
	}

	deleted, err := uc.storage.DeleteKeyResult(ctx, keyResult.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete key result: %w", err)
	}
	if !deleted {
		return nil, notFoundError()
	}

	refreshed, err := uc.recalculate.Execute(ctx, objective.RecalculateProgressInput{ObjectiveID: keyResult.ObjectiveID})
	if err != nil {
		return nil, err
	}

	return &DeleteKeyResultOutput{
		KeyResult: keyResult,
		Objective: refreshed.Objective,
	}, nil
}
