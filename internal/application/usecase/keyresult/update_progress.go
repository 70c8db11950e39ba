package keyresult

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// UpdateProgressInput represents a progress report for a key result.
type UpdateProgressInput struct {
	KeyResultID uuid.UUID
	Value       decimal.Decimal
	Mode        string // absolute, percentage or increment; defaults to absolute
}

// UpdateProgressOutput represents the key result and objective after the progress report.
type UpdateProgressOutput struct {
	KeyResult        *entity.KeyResult
	Objective        *entity.Objective
	PreviousCurrent  decimal.Decimal
	BecameCompleted  bool
	PreviousProgress int
}

// UpdateProgressUseCase applies a progress value to a key result.
type UpdateProgressUseCase struct {
	storage     adapter.OKRStorage
	recalculate *objective.RecalculateProgressUseCase
}

// NewUpdateProgressUseCase creates a new UpdateProgressUseCase instance.
func NewUpdateProgressUseCase(storage adapter.OKRStorage, recalculate *objective.RecalculateProgressUseCase) *UpdateProgressUseCase {
	return &UpdateProgressUseCase{
		storage:     storage,
		recalculate: recalculate,
	}
}

// Execute applies the progress value and refreshes the objective progress.
func (uc *UpdateProgressUseCase) Execute(ctx context.Context, input UpdateProgressInput) (*UpdateProgressOutput, error) {
	mode, ok := entity.ParseProgressMode(input.Mode)
	if !ok {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidProgressMode,
			"progress mode must be absolute, percentage or increment",
		)
	}

	keyResult, err := uc.storage.GetKeyResult(ctx, input.KeyResultID)
	if err != nil {
		return nil, fmt.Errorf("failed to find key result: %w", err)
	}
	if keyResult == nil {
		return nil, notFoundError()
	}

	previousCurrent := keyResult.Current
	previousProgress := keyResult.Progress()
	previousStatus := keyResult.Status

	if err := keyResult.UpdateProgress(input.Value, mode); err != nil {
		return nil, err
	}

	updated, err := uc.storage.UpdateKeyResult(ctx, keyResult.ID, entity.KeyResultUpdate{
		Current: &keyResult.Current,
		Status:  &keyResult.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update key result progress: %w", err)
	}
	if updated == nil {
		return nil, notFoundError()
	}

	refreshed, err := uc.recalculate.Execute(ctx, objective.RecalculateProgressInput{ObjectiveID: updated.ObjectiveID})
	if err != nil {
		return nil, err
	}

	return &UpdateProgressOutput{
		KeyResult:        updated,
		Objective:        refreshed.Objective,
		PreviousCurrent:  previousCurrent,
		PreviousProgress: previousProgress,
		BecameCompleted:  previousStatus != entity.KeyResultStatusCompleted && updated.Status == entity.KeyResultStatusCompleted,
	}, nil
}
