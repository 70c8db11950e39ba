package objective

import (
	"context"
	"fmt"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// ListObjectivesInput represents the input for listing objectives.
type ListObjectivesInput struct {
	Filter entity.ObjectiveFilter
}

// ListObjectivesOutput represents the output of listing objectives.
type ListObjectivesOutput struct {
	Objectives []*entity.Objective
}

// ListObjectivesUseCase handles listing objectives.
type ListObjectivesUseCase struct {
	storage adapter.OKRStorage
}

// NewListObjectivesUseCase creates a new ListObjectivesUseCase instance.
func NewListObjectivesUseCase(storage adapter.OKRStorage) *ListObjectivesUseCase {
	return &ListObjectivesUseCase{
		storage: storage,
	}
}

// Execute performs the objective listing.
func (uc *ListObjectivesUseCase) Execute(ctx context.Context, input ListObjectivesInput) (*ListObjectivesOutput, error) {
	objectives, err := uc.storage.ListObjectives(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}

	return &ListObjectivesOutput{
		Objectives: objectives,
	}, nil
}
