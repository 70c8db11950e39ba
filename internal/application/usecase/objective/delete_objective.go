package objective

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// DeleteObjectiveInput represents the input for objective deletion.
type DeleteObjectiveInput struct {
	ObjectiveID uuid.UUID
}

// DeleteObjectiveOutput represents the output of objective deletion.
type DeleteObjectiveOutput struct {
	Objective         *entity.Objective
	DeletedKeyResults int
}

// DeleteObjectiveUseCase handles objective deletion. Key results are removed with their objective.
type DeleteObjectiveUseCase struct {
	storage adapter.OKRStorage
}

// NewDeleteObjectiveUseCase creates a new DeleteObjectiveUseCase instance.
func NewDeleteObjectiveUseCase(storage adapter.OKRStorage) *DeleteObjectiveUseCase {
	return &DeleteObjectiveUseCase{
		storage: storage,
	}
}

// Execute performs the objective deletion.
func (uc *DeleteObjectiveUseCase) Execute(ctx context.Context, input DeleteObjectiveInput) (*DeleteObjectiveOutput, error) {
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

	deleted, err := uc.storage.DeleteObjective(ctx, input.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete objective: %w", err)
	}
	if !deleted {
		return nil, notFoundError()
	}

	return &DeleteObjectiveOutput{
		Objective:         objective,
		DeletedKeyResults: len(keyResults),
	}, nil
}
