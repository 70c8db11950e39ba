package objective

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// RecalculateProgressInput represents the objective whose progress must be refreshed.
type RecalculateProgressInput struct {
	ObjectiveID uuid.UUID
}

// RecalculateProgressOutput represents the refreshed objective.
// Objective is nil when the objective no longer exists.
type RecalculateProgressOutput struct {
	Objective *entity.Objective
	Progress  int
}

// RecalculateProgressUseCase rewrites an objective's stored progress from its key results.
// Every key result mutation runs it before returning so the stored value is never stale.
type RecalculateProgressUseCase struct {
	storage adapter.OKRStorage
}

// NewRecalculateProgressUseCase creates a new RecalculateProgressUseCase instance.
func NewRecalculateProgressUseCase(storage adapter.OKRStorage) *RecalculateProgressUseCase {
	return &RecalculateProgressUseCase{
		storage: storage,
	}
}

// Execute recomputes and stores the objective progress.
func (uc *RecalculateProgressUseCase) Execute(ctx context.Context, input RecalculateProgressInput) (*RecalculateProgressOutput, error) {
	progress, err := uc.storage.ObjectiveProgress(ctx, input.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute objective progress: %w", err)
	}

	updated, err := uc.storage.UpdateObjective(ctx, input.ObjectiveID, entity.ObjectiveUpdate{Progress: &progress})
	if err != nil {
		return nil, fmt.Errorf("failed to store objective progress: %w", err)
	}

	return &RecalculateProgressOutput{
		Objective: updated,
		Progress:  progress,
	}, nil
}
