package objective

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// AssigneeInput represents the input for adding or removing an assignee.
type AssigneeInput struct {
	ObjectiveID uuid.UUID
	User        string
}

// AssigneeOutput represents the output of an assignee change.
// Changed is false when the operation was a no-op.
type AssigneeOutput struct {
	Objective *entity.Objective
	Changed   bool
}

// AddAssigneeUseCase adds a user to an objective's assignees.
type AddAssigneeUseCase struct {
	storage adapter.OKRStorage
}

// NewAddAssigneeUseCase creates a new AddAssigneeUseCase instance.
func NewAddAssigneeUseCase(storage adapter.OKRStorage) *AddAssigneeUseCase {
	return &AddAssigneeUseCase{
		storage: storage,
	}
}

// Execute performs the assignment.
func (uc *AddAssigneeUseCase) Execute(ctx context.Context, input AssigneeInput) (*AssigneeOutput, error) {
	return changeAssignees(ctx, uc.storage, input, (*entity.Objective).AddAssignee)
}

// RemoveAssigneeUseCase removes a user from an objective's assignees.
type RemoveAssigneeUseCase struct {
	storage adapter.OKRStorage
}

// NewRemoveAssigneeUseCase creates a new RemoveAssigneeUseCase instance.
func NewRemoveAssigneeUseCase(storage adapter.OKRStorage) *RemoveAssigneeUseCase {
	return &RemoveAssigneeUseCase{
		storage: storage,
	}
}

// Execute performs the unassignment.
func (uc *RemoveAssigneeUseCase) Execute(ctx context.Context, input AssigneeInput) (*AssigneeOutput, error) {
	return changeAssignees(ctx, uc.storage, input, (*entity.Objective).RemoveAssignee)
}

func changeAssignees(
	ctx context.Context,
	storage adapter.OKRStorage,
	input AssigneeInput,
	change func(*entity.Objective, string) bool,
) (*AssigneeOutput, error) {
	if entity.NormalizeUser(input.User) == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeMissingAssignee, "user is required")
	}

	objective, err := storage.GetObjective(ctx, input.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find objective: %w", err)
	}
	if objective == nil {
		return nil, notFoundError()
	}

	if !change(objective, input.User) {
		return &AssigneeOutput{Objective: objective, Changed: false}, nil
	}

	updated, err := storage.UpdateObjective(ctx, objective.ID, entity.ObjectiveUpdate{Assignees: objective.Assignees})
	if err != nil {
		return nil, fmt.Errorf("failed to update assignees: %w", err)
	}
	if updated == nil {
		return nil, notFoundError()
	}

	return &AssigneeOutput{
		Objective: updated,
		Changed:   true,
	}, nil
}
