package objective

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// GetObjectiveInput represents the input for getting an objective.
type GetObjectiveInput struct {
	ObjectiveID uuid.UUID
}

// GetObjectiveOutput represents the output of getting an objective.
// Objective is nil when no objective has the requested ID.
type GetObjectiveOutput struct {
	Objective *entity.Objective
}

// GetObjectiveUseCase handles getting an objective by ID.
type GetObjectiveUseCase struct {
	storage adapter.OKRStorage
}

// NewGetObjectiveUseCase creates a new GetObjectiveUseCase instance.
func NewGetObjectiveUseCase(storage adapter.OKRStorage) *GetObjectiveUseCase {
	return &GetObjectiveUseCase{
		storage: storage,
	}
}

// Execute performs the objective retrieval.
func (uc *GetObjectiveUseCase) Execute(ctx context.Context, input GetObjectiveInput) (*GetObjectiveOutput, error) {
	objective, err := uc.storage.GetObjective(ctx, input.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find objective: %w", err)
	}

	return &GetObjectiveOutput{
		Objective: objective,
	}, nil
}
