// Package keyresult contains key result use cases.
// Every use case that changes a key result refreshes its objective's progress before returning.
package keyresult

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// CreateKeyResultInput represents the input for key result creation.
type CreateKeyResultInput struct {
	ObjectiveID  uuid.UUID
	Title        string
	Description  string
	Owner        string
	Target       string
	Unit         string // Optional, defaults to percent
	Current      string // Optional starting value
	Priority     string // Optional, defaults to medium
	TrackingType string // Optional, defaults to increase
}

// CreateKeyResultOutput represents the output of key result creation.
type CreateKeyResultOutput struct {
	KeyResult *entity.KeyResult
	Objective *entity.Objective
}

// CreateKeyResultUseCase handles key result creation logic.
type CreateKeyResultUseCase struct {
	storage     adapter.OKRStorage
	recalculate *objective.RecalculateProgressUseCase
}

// NewCreateKeyResultUseCase creates a new CreateKeyResultUseCase instance.
func NewCreateKeyResultUseCase(storage adapter.OKRStorage, recalculate *objective.RecalculateProgressUseCase) *CreateKeyResultUseCase {
	return &CreateKeyResultUseCase{
		storage:     storage,
		recalculate: recalculate,
	}
}

// Execute performs the key result creation.
func (uc *CreateKeyResultUseCase) Execute(ctx context.Context, input CreateKeyResultInput) (*CreateKeyResultOutput, error) {
	target, err := entity.ParseTarget(input.Target)
	if err != nil {
		return nil, err
	}

	keyResult, err := entity.NewKeyResult(input.ObjectiveID, input.Title, input.Description, input.Owner, target, input.Unit)
	if err != nil {
		return nil, err
	}

	if err := applyCreateOptions(keyResult, input); err != nil {
		return nil, err
	}

	parent, err := uc.storage.GetObjective(ctx, input.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find objective: %w", err)
	}
	if parent == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeObjectiveNotFound, "objective not found")
	}

	saved, err := uc.storage.SaveKeyResult(ctx, keyResult)
	if err != nil {
		return nil, fmt.Errorf("failed to save key result: %w", err)
	}

	refreshed, err := uc.recalculate.Execute(ctx, objective.RecalculateProgressInput{ObjectiveID: saved.ObjectiveID})
	if err != nil {
		return nil, err
	}

	return &CreateKeyResultOutput{
		KeyResult: saved,
		Objective: refreshed.Objective,
	}, nil
}

func applyCreateOptions(keyResult *entity.KeyResult, input CreateKeyResultInput) error {
	if strings.TrimSpace(input.Priority) != "" {
		priority, ok := entity.ParsePriority(input.Priority)
		if !ok {
			return invalidPriorityError()
		}
		keyResult.Priority = priority
	}

	if strings.TrimSpace(input.TrackingType) != "" {
		trackingType, ok := entity.ParseTrackingType(input.TrackingType)
		if !ok {
			return invalidTrackingTypeError()
		}
		keyResult.TrackingType = trackingType
	}

	if strings.TrimSpace(input.Current) != "" {
		current, err := entity.ParseValue(input.Current)
		if err != nil {
			return err
		}
		if current.IsNegative() {
			return invalidCurrentError()
		}
		if err := keyResult.UpdateProgress(current, entity.ProgressModeAbsolute); err != nil {
			return err
		}
	}

	return nil
}

func notFoundError() error {
	return domainerror.NewNotFoundError(domainerror.ErrCodeKeyResultNotFound, "key result not found")
}

func invalidPriorityError() error {
	return domainerror.NewValidationError(
		domainerror.ErrCodeInvalidPriority,
		"invalid priority, valid options: low, medium, high, critical",
	)
}

func invalidTrackingTypeError() error {
	return domainerror.NewValidationError(
		domainerror.ErrCodeInvalidTrackingType,
		"invalid tracking type, valid options: increase, decrease, maintain",
	)
}

func invalidCurrentError() error {
	return domainerror.NewValidationError(domainerror.ErrCodeInvalidCurrent, "current value cannot be negative")
}
