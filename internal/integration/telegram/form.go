package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// skipAnswer leaves an optional form field empty.
const skipAnswer = "-"

type formKind string

const (
	formObjective formKind = "objective"
	formKeyResult formKind = "key_result"
)

// formState is the persisted progress of a step by step form.
type formState struct {
	Kind        formKind          `json:"kind"`
	Step        int               `json:"step"`
	ObjectiveID string            `json:"objectiveId,omitempty"`
	Values      map[string]string `json:"values"`
}

type formStep struct {
	field    string
	prompt   string
	optional bool
	validate func(answer string) error
}

var objectiveFormSteps = []formStep{
	{field: "title", prompt: "📋 What is the objective title?"},
	{field: "description", prompt: "📝 Describe the objective (or send - to skip).", optional: true},
	{field: "dueDate", prompt: "📅 Due date as YYYY-MM-DD (or send - to skip).", optional: true, validate: func(answer string) error {
		_, err := entity.ParseDueDate(answer)
		return err
	}},
	{field: "priority", prompt: "⚡ Priority: low, medium, high or critical (or send - for medium).", optional: true, validate: validatePriority},
}

var keyResultFormSteps = []formStep{
	{field: "title", prompt: "📋 What is the key result title?"},
	{field: "description", prompt: "📝 Describe the key result (or send - to skip).", optional: true},
	{field: "target", prompt: "🎯 What is the target value?", validate: func(answer string) error {
		_, err := entity.ParseTarget(answer)
		return err
	}},
	{field: "unit", prompt: "📏 Unit of measure (or send - for %).", optional: true, validate: func(answer string) error {
		_, err := entity.NormalizeUnit(answer)
		return err
	}},
	{field: "current", prompt: "📈 Starting value (or send - for 0).", optional: true, validate: func(answer string) error {
		value, err := entity.ParseValue(answer)
		if err != nil {
			return err
		}
		if value.IsNegative() {
			return domainerror.NewValidationError(domainerror.ErrCodeInvalidCurrent, "current value cannot be negative")
		}
		return nil
	}},
}

func validatePriority(answer string) error {
	if _, ok := entity.ParsePriority(answer); !ok {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidPriority, "priority must be low, medium, high or critical")
	}
	return nil
}

func (s *formState) steps() []formStep {
	if s.Kind == formKeyResult {
		return keyResultFormSteps
	}
	return objectiveFormSteps
}

func sessionKey(msg Message) string {
	return fmt.Sprintf("form:%d:%d", msg.ChatID, msg.UserID)
}

// /obj_new
func (h *Handler) startObjectiveForm(ctx context.Context, msg Message, _ []string) (string, error) {
	state := &formState{Kind: formObjective, Values: map[string]string{}}
	if err := h.sessions.Set(ctx, sessionKey(msg), state, h.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to start form: %w", err)
	}
	return "🆕 <b>New objective</b> (send /cancel to abort)\n\n" + objectiveFormSteps[0].prompt, nil
}

// /kr_new <objId>
func (h *Handler) startKeyResultForm(ctx context.Context, msg Message, args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("Usage: /kr_new <objId>")
	}
	objectiveID, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	state := &formState{Kind: formKeyResult, ObjectiveID: objectiveID.String(), Values: map[string]string{}}
	if err := h.sessions.Set(ctx, sessionKey(msg), state, h.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to start form: %w", err)
	}
	return "🆕 <b>New key result</b> (send /cancel to abort)\n\n" + keyResultFormSteps[0].prompt, nil
}

// /cancel
func (h *Handler) cancelForm(ctx context.Context, msg Message, _ []string) (string, error) {
	var state formState
	found, err := h.sessions.Get(ctx, sessionKey(msg), &state)
	if err != nil {
		return "", fmt.Errorf("failed to load form: %w", err)
	}
	if !found {
		return "ℹ️ Nothing to cancel.", nil
	}
	if err := h.sessions.Delete(ctx, sessionKey(msg)); err != nil {
		return "", fmt.Errorf("failed to cancel form: %w", err)
	}
	return "🚫 Form cancelled.", nil
}

// continueForm feeds a plain text answer into the sender's open form.
// handled is false when the sender has no open form.
func (h *Handler) continueForm(ctx context.Context, msg Message) (reply string, handled bool, err error) {
	var state formState
	found, err := h.sessions.Get(ctx, sessionKey(msg), &state)
	if err != nil {
		return "", true, fmt.Errorf("failed to load form: %w", err)
	}
	if !found {
		return "", false, nil
	}
	if state.Values == nil {
		state.Values = map[string]string{}
	}

	steps := state.steps()
	if state.Step >= len(steps) {
		return "", true, h.sessions.Delete(ctx, sessionKey(msg))
	}
	step := steps[state.Step]

	answer := strings.TrimSpace(msg.Text)
	if step.optional && answer == skipAnswer {
		answer = ""
	}
	if answer == "" && !step.optional {
		return "⚠️ This field is required.\n" + step.prompt, true, nil
	}
	if answer != "" && step.validate != nil {
		if err := step.validate(answer); err != nil {
			return errorReply(err) + "\n" + step.prompt, true, nil
		}
	}

	state.Values[step.field] = answer
	state.Step++

	if state.Step < len(steps) {
		if err := h.sessions.Set(ctx, sessionKey(msg), &state, h.sessionTTL); err != nil {
			return "", true, fmt.Errorf("failed to save form: %w", err)
		}
		return steps[state.Step].prompt, true, nil
	}

	if err := h.sessions.Delete(ctx, sessionKey(msg)); err != nil {
		return "", true, fmt.Errorf("failed to close form: %w", err)
	}
	reply, err = h.submitForm(ctx, msg, &state)
	return reply, true, err
}

func (h *Handler) submitForm(ctx context.Context, msg Message, state *formState) (string, error) {
	v := state.Values

	if state.Kind == formKeyResult {
		objectiveID, err := h.resolveObjectiveID(ctx, state.ObjectiveID)
		if err != nil {
			return "", err
		}
		out, err := h.services.CreateKeyResult.Execute(ctx, keyresult.CreateKeyResultInput{
			ObjectiveID: objectiveID,
			Title:       v["title"],
			Description: v["description"],
			Owner:       msg.Caller(),
			Target:      v["target"],
			Unit:        v["unit"],
			Current:     v["current"],
		})
		if err != nil {
			return "", err
		}
		return formatKeyResult(out.KeyResult, out.Objective, "✅ Key Result Created!"), nil
	}

	out, err := h.services.CreateObjective.Execute(ctx, objective.CreateObjectiveInput{
		Title:       v["title"],
		Description: v["description"],
		Owner:       msg.Caller(),
		DueDate:     v["dueDate"],
		Priority:    v["priority"],
		CreatedBy:   msg.Caller(),
	})
	if err != nil {
		return "", err
	}
	return formatObjective(out.Objective, "✅ Objective Created!"), nil
}
