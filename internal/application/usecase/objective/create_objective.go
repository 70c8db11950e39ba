// Package objective contains objective-related use cases.
package objective

import (
	"context"
	"fmt"
	"strings"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// CreateObjectiveInput represents the input for objective creation.
type CreateObjectiveInput struct {
	Title       string
	Description string
	Owner       string
	DueDate     string // Optional, YYYY-MM-DD
	Priority    string // Optional, defaults to medium
	Category    string // Optional
	CreatedBy   string // Optional, defaults to owner
}

// CreateObjectiveOutput represents the output of objective creation.
type CreateObjectiveOutput struct {
	Objective *entity.Objective
}

// CreateObjectiveUseCase handles objective creation logic.
type CreateObjectiveUseCase struct {
	storage adapter.OKRStorage
}

// NewCreateObjectiveUseCase creates a new CreateObjectiveUseCase instance.
func NewCreateObjectiveUseCase(storage adapter.OKRStorage) *CreateObjectiveUseCase {
	return &CreateObjectiveUseCase{
		storage: storage,
	}
}

// Execute performs the objective creation.
func (uc *CreateObjectiveUseCase) Execute(ctx context.Context, input CreateObjectiveInput) (*CreateObjectiveOutput, error) {
	dueDate, err := entity.ParseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	objective, err := entity.NewObjective(input.Title, input.Description, input.Owner, dueDate)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Priority) != "" {
		priority, ok := entity.ParsePriority(input.Priority)
		if !ok {
			return nil, invalidPriorityError()
		}
		objective.Priority = priority
	}
	objective.Category = strings.TrimSpace(input.Category)
	if createdBy := entity.NormalizeUser(input.CreatedBy); createdBy != "" {
		objective.CreatedBy = createdBy
	}

	saved, err := uc.storage.SaveObjective(ctx, objective)
	if err != nil {
		return nil, fmt.Errorf("failed to save objective: %w", err)
	}

	return &CreateObjectiveOutput{
		Objective: saved,
	}, nil
}

func invalidPriorityError() error {
	return domainerror.NewValidationError(
		domainerror.ErrCodeInvalidPriority,
		"invalid priority, valid options: low, medium, high, critical",
	)
}

func notFoundError() error {
	return domainerror.NewNotFoundError(domainerror.ErrCodeObjectiveNotFound, "objective not found")
}
