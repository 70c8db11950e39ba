package objective

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/fields"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// UpdatableFields lists the objective fields accepted by UpdateObjectiveUseCase.
var UpdatableFields = []string{
	"title", "description", "owner", "dueDate", "status", "priority", "category", "assignees",
}

// UpdateObjectiveInput represents the input for objective update.
// Fields outside UpdatableFields are ignored.
type UpdateObjectiveInput struct {
	ObjectiveID uuid.UUID
	Fields      map[string]any
}

// UpdateObjectiveOutput represents the output of objective update.
type UpdateObjectiveOutput struct {
	Objective     *entity.Objective
	AppliedFields []string
}

// UpdateObjectiveUseCase handles objective update logic.
type UpdateObjectiveUseCase struct {
	storage adapter.OKRStorage
}

// NewUpdateObjectiveUseCase creates a new UpdateObjectiveUseCase instance.
func NewUpdateObjectiveUseCase(storage adapter.OKRStorage) *UpdateObjectiveUseCase {
	return &UpdateObjectiveUseCase{
		storage: storage,
	}
}

// Execute performs the objective update.
func (uc *UpdateObjectiveUseCase) Execute(ctx context.Context, input UpdateObjectiveInput) (*UpdateObjectiveOutput, error) {
	existing, err := uc.storage.GetObjective(ctx, input.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find objective: %w", err)
	}
	if existing == nil {
		return nil, notFoundError()
	}

	update, applied, err := buildObjectiveUpdate(input.Fields)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeNoValidObjectiveFields,
			"no valid fields to update, allowed: "+strings.Join(UpdatableFields, ", "),
		)
	}

	updated, err := uc.storage.UpdateObjective(ctx, input.ObjectiveID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update objective: %w", err)
	}
	if updated == nil {
		return nil, notFoundError()
	}

	return &UpdateObjectiveOutput{
		Objective:     updated,
		AppliedFields: applied,
	}, nil
}

// buildObjectiveUpdate filters raw fields through the allow-list and validates their values.
func buildObjectiveUpdate(values map[string]any) (entity.ObjectiveUpdate, []string, error) {
	var update entity.ObjectiveUpdate
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
			if err := entity.ValidateTitle(title, domainerror.ErrCodeMissingObjectiveTitle, domainerror.ErrCodeObjectiveTitleTooLong); err != nil {
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
			if err := entity.ValidateDescription(description, domainerror.ErrCodeObjectiveDescriptionTooLong); err != nil {
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
				return update, nil, domainerror.NewValidationError(domainerror.ErrCodeMissingObjectiveOwner, "owner cannot be empty")
			}
			update.Owner = &owner
			applied = append(applied, "owner")

		case "duedate":
			switch v := value.(type) {
			case time.Time:
				due := v.UTC()
				update.DueDate = &due
			case nil:
				update.ClearDueDate = true
			default:
				raw, err := stringField(key, value)
				if err != nil {
					return update, nil, err
				}
				due, err := entity.ParseDueDate(raw)
				if err != nil {
					return update, nil, err
				}
				if due == nil {
					update.ClearDueDate = true
				} else {
					update.DueDate = due
				}
			}
			applied = append(applied, "dueDate")

		case "status":
			raw, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			status, ok := entity.ParseObjectiveStatus(raw)
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

		case "category":
			category, err := stringField(key, value)
			if err != nil {
				return update, nil, err
			}
			category = strings.TrimSpace(category)
			update.Category = &category
			applied = append(applied, "category")

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
		domainerror.ErrCodeInvalidObjectiveField,
		fmt.Sprintf("invalid value for field %q", key),
	)
}

func invalidStatusError() error {
	return domainerror.NewValidationError(
		domainerror.ErrCodeInvalidObjectiveStatus,
		"invalid status, valid options: active, completed, cancelled, draft",
	)
}
