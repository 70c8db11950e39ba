package keyresult

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// AddMilestoneInput represents the input for adding a milestone.
type AddMilestoneInput struct {
	KeyResultID uuid.UUID
	Description string
	Value       decimal.Decimal
	Date        string // Optional, YYYY-MM-DD
}

// AddMilestoneOutput represents the output of adding a milestone.
type AddMilestoneOutput struct {
	KeyResult *entity.KeyResult
	Milestone entity.Milestone
}

// AddMilestoneUseCase appends a milestone to a key result.
// Milestones are not checked against the target or each other.
type AddMilestoneUseCase struct {
	storage adapter.OKRStorage
}

// NewAddMilestoneUseCase creates a new AddMilestoneUseCase instance.
func NewAddMilestoneUseCase(storage adapter.OKRStorage) *AddMilestoneUseCase {
	return &AddMilestoneUseCase{
		storage: storage,
	}
}

// Execute performs the milestone addition.
func (uc *AddMilestoneUseCase) Execute(ctx context.Context, input AddMilestoneInput) (*AddMilestoneOutput, error) {
	date, err := entity.ParseDueDate(input.Date)
	if err != nil {
		return nil, err
	}

	keyResult, err := uc.storage.GetKeyResult(ctx, input.KeyResultID)
	if err != nil {
		return nil, fmt.Errorf("failed to find key result: %w", err)
	}
	if keyResult == nil {
		return nil, notFoundError()
	}

	milestone := keyResult.AddMilestone(input.Description, input.Value, date)

	updated, err := uc.storage.UpdateKeyResult(ctx, keyResult.ID, entity.KeyResultUpdate{Milestones: keyResult.Milestones})
	if err != nil {
		return nil, fmt.Errorf("failed to save milestone: %w", err)
	}
	if updated == nil {
		return nil, notFoundError()
	}

	return &AddMilestoneOutput{
		KeyResult: updated,
		Milestone: milestone,
	}, nil
}
