package keyresult

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/fields"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// UpdatableFields lists the key result fields accepted by UpdateKeyResultUseCase.
var UpdatableFields = []string{
	"title", "description", "owner", "target", "current", "unit",
	"status", "priority", "trackingType", "assignees",
}

// UpdateKeyResultInput represents the input for key result update.
// Fields outside UpdatableFields are ignored.
type UpdateKeyResultInput struct {
	KeyResultID uuid.UUID
	Fields      map[string]any
}

// UpdateKeyResultOutput represents the output of key result update.
type UpdateKeyResultOutput struct {
	KeyResult     *entity.KeyResult
	Objective     *entity.Objective
	AppliedFields []string
}

// UpdateKeyResultUseCase handles key result update logic.
// Status and current are written as given; no auto-completion is applied here.
type UpdateKeyResultUseCase struct {
	storage     adapter.OKRStorage
	recalculate *objective.RecalculateProgressUseCase
}

// NewUpdateKeyResultUseCase creates a new UpdateKeyResultUseCase instance.
func NewUpdateKeyResultUseCase(storage adapter.OKRStorage, recalculate *objective.RecalculateProgressUseCase) *UpdateKeyResultUseCase {
	return &UpdateKeyResultUseCase{
		storage:     storage,
		recalculate: recalculate,
	}
}

// Execute performs the key result update.
func (uc *UpdateKeyResultUseCase) Execute(ctx context.Context, input UpdateKeyResultInput) (*UpdateKeyResultOutput, error) {
	existing, err := uc.storage.GetKeyResult(ctx, input.KeyResultID)
	if err != nil {
		return nil, fmt.Errorf("failed to find key result: %w", err)
	}
	if existing == nil {
		return nil, notFoundError()
	}

	update, applied, err := buildKeyResultUpdate(input.Fields)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeNoValidKeyResultFields,
			"no valid fields to update, allowed: "+strings.Join(UpdatableFields, ", "),
		)
	}

	updated, err := uc.storage.UpdateKeyResult(ctx, input.KeyResultID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update key result: %w", err)
	}
	if updated == nil {
		return nil, notFoundError()
	}

	refreshed, err := uc.recalculate.Execute(ctx, objective.RecalculateProgressInput{ObjectiveID: updated.ObjectiveID})
	if err != nil {
		return nil, err
	}

	return &UpdateKeyResultOutput{
		KeyResult:     updated,
		Objective:     refreshed.Objective,
		AppliedFields: applied,
	}, nil
}

// buildKeyResultUpdate filters raw fields through the allow-list and validates their values.
func buildKeyResultUpdate(values map[string]any) (entity.KeyResultUpdate, []string, error) {
	var update entity.KeyResultUpdate
	applied := make([]string, 0, len(values))

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		switch fields.NormalizeKey(key) {
		case "title":
			title, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			title = strings.TrimSpace(title)
			if err := entity.ValidateTitle(title, domainerror.ErrCodeMissingKeyResultTitle, domainerror.ErrCodeKeyResultTitleTooLong); err != nil {
				return update, nil, err
			}
			update.Title = &title
			applied = append(applied, "title")

		case "description":
			description, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			description = strings.TrimSpace(description)
			if err := entity.ValidateDescription(description, domainerror.ErrCodeKeyResultDescriptionTooLong); err != nil {
				return update, nil, err
			}
			update.Description = &description
			applied = append(applied, "description")

		case "owner":
			owner, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			owner = entity.NormalizeUser(owner)
			if owner == "" {
				return update, nil, domainerror.NewValidationError(domainerror.ErrCodeMissingKeyResultOwner, "owner cannot be empty")
			}
			update.Owner = &owner
			applied = append(applied, "owner")

		case "target":
			target, ok := fields.Decimal(value)
			if !ok {
				return update, nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidTarget, "target must be a valid number")
			}
			if !target.IsPositive() {
				return update, nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidTarget, "target must be greater than 0")
			}
			update.Target = &target
			applied = append(applied, "target")

		case "current":
			current, ok := fields.Decimal(value)
			if !ok {
				return update, nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidCurrent, "current must be a valid number")
			}
			if current.IsNegative() {
				return update, nil, invalidCurrentError()
			}
			update.Current = &current
			applied = append(applied, "current")

		case "unit":
			raw, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			unit, err := entity.NormalizeUnit(raw)
			if err != nil {
				return update, nil, err
			}
			update.Unit = &unit
			applied = append(applied, "unit")

		case "status":
			raw, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			status, ok := entity.ParseKeyResultStatus(raw)
			if !ok {
				return update, nil, invalidStatusError()
			}
			update.Status = &status
			applied = append(applied, "status")

		case "priority":
			raw, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			priority, ok := entity.ParsePriority(raw)
			if !ok {
				return update, nil, invalidPriorityError()
			}
			update.Priority = &priority
			applied = append(applied, "priority")

		case "trackingtype":
			raw, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			trackingType, ok := entity.ParseTrackingType(raw)
			if !ok {
				return update, nil, invalidTrackingTypeError()
			}
			update.TrackingType = &trackingType
			applied = append(applied, "trackingType")

		case "assignees":
			assignees, ok := fields.Strings(value)
			if !ok {
				return update, nil, invalidFieldError(key)
			}
			update.Assignees = assignees
			applied = append(applied, "assignees")
		}
	}

	return update, applied, nil
}

func stringField(key string, value any) (string, error) {
	s, ok := fields.String(value)
	if !ok {
		return "", invalidFieldError(key)
	}
	return s, nil
}

func invalidFieldError(key string) error {
	return domainerror.NewValidationError(
		domainerror.ErrCodeInvalidKeyResultField,
		fmt.Sprintf("invalid value for field %q", key),
	)
}

func invalidStatusError() error {
	return domainerror.NewValidationError(
		domainerror.ErrCodeInvalidKeyResultStatus,
		"invalid status, valid options: active, completed, cancelled, blocked",
	)
}
