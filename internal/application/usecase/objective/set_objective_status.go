package objective

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// SetObjectiveStatusInput represents the input for a status change.
type SetObjectiveStatusInput struct {
	ObjectiveID uuid.UUID
	Status      string
}

// SetObjectiveStatusOutput represents the output of a status change.
type SetObjectiveStatusOutput struct {
	Objective *entity.Objective
}

// SetObjectiveStatusUseCase handles explicit objective status changes.
type SetObjectiveStatusUseCase struct {
	storage adapter.OKRStorage
}

// NewSetObjectiveStatusUseCase creates a new SetObjectiveStatusUseCase instance.
func NewSetObjectiveStatusUseCase(storage adapter.OKRStorage) *SetObjectiveStatusUseCase {
	return &SetObjectiveStatusUseCase{
		storage: storage,
	}
}

// Execute performs the status change.
func (uc *SetObjectiveStatusUseCase) Execute(ctx context.Context, input SetObjectiveStatusInput) (*SetObjectiveStatusOutput, error) {
	status, ok := entity.ParseObjectiveStatus(input.Status)
	if !ok {
		return nil, invalidStatusError()
	}

	updated, err := uc.storage.UpdateObjective(ctx, input.ObjectiveID, entity.ObjectiveUpdate{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to update objective status: %w", err)
	}
	if updated == nil {
		return nil, notFoundError()
	}

	return &SetObjectiveStatusOutput{
		Objective: updated,
	}, nil
}
