package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// /kr_create <objId> "Title" <target> [unit]
func (h *Handler) createKeyResult(ctx context.Context, msg Message, args []string) (string, error) {
	if len(args) < 3 || len(args) > 4 {
		return "", usageError(`Usage: /kr_create <objId> "Title" <target> [unit]`)
	}
	objectiveID, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	input := keyresult.CreateKeyResultInput{
		ObjectiveID: objectiveID,
		Title:       args[1],
		Owner:       msg.Caller(),
		Target:      args[2],
	}
	if len(args) == 4 {
		input.Unit = args[3]
	}

	out, err := h.services.CreateKeyResult.Execute(ctx, input)
	if err != nil {
		return "", err
	}

	reply := formatKeyResult(out.KeyResult, out.Objective, "✅ Key Result Created!")
	return reply + fmt.Sprintf("\n💡 Use <code>/kr_progress %s &lt;value&gt;</code> to record progress", ShortID(out.KeyResult.ID)), nil
}

// /kr_list <objId>
func (h *Handler) listKeyResults(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("Usage: /kr_list <objId>")
	}
	objectiveID, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := h.services.ListKeyResults.Execute(ctx, keyresult.ListKeyResultsInput{
		Filter: entity.KeyResultFilter{ObjectiveID: &objectiveID},
	})
	if err != nil {
		return "", err
	}
	return formatKeyResultList(out.KeyResults), nil
}

// /kr_update <id> field="value" ...
func (h *Handler) updateKeyResult(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) < 2 {
		return "", usageError(`Usage: /kr_update <id> field="value" ... Fields: ` + strings.Join(keyresult.UpdatableFields, ", "))
	}
	id, err := h.resolveKeyResultID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := h.services.UpdateKeyResult.Execute(ctx, keyresult.UpdateKeyResultInput{
		KeyResultID: id,
		Fields:      ParseFields(args[1:]),
	})
	if err != nil {
		return "", err
	}

	reply := formatKeyResult(out.KeyResult, out.Objective, "🔄 Key Result Updated!")
	return reply + "✏️ Updated: " + strings.Join(out.AppliedFields, ", "), nil
}

// /kr_progress <id> <value> [absolute|percentage|increment]
func (h *Handler) updateProgress(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", usageError("Usage: /kr_progress <id> <value> [absolute|percentage|increment]")
	}
	id, err := h.resolveKeyResultID(ctx, args[0])
	if err != nil {
		return "", err
	}
	value, err := entity.ParseValue(args[1])
	if err != nil {
		return "", err
	}

	input := keyresult.UpdateProgressInput{KeyResultID: id, Value: value}
	if len(args) == 3 {
		input.Mode = args[2]
	}

	out, err := h.services.UpdateProgress.Execute(ctx, input)
	if err != nil {
		return "", err
	}
	return formatProgressUpdate(out), nil
}

// /kr_milestone <id> <value> "Description" [YYYY-MM-DD]
func (h *Handler) addMilestone(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) < 3 || len(args) > 4 {
		return "", usageError(`Usage: /kr_milestone <id> <value> "Description" [YYYY-MM-DD]`)
	}
	id, err := h.resolveKeyResultID(ctx, args[0])
	if err != nil {
		return "", err
	}
	value, err := entity.ParseValue(args[1])
	if err != nil {
		return "", err
	}

	input := keyresult.AddMilestoneInput{
		KeyResultID: id,
		Value:       value,
		Description: args[2],
	}
	if len(args) == 4 {
		input.Date = args[3]
	}

	out, err := h.services.AddMilestone.Execute(ctx, input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🏁 Milestone <b>%s</b> at %s added to <b>%s</b> (%d milestones)",
		esc(out.Milestone.Description), out.Milestone.Value.String(), esc(out.KeyResult.Title), len(out.KeyResult.Milestones)), nil
}

// /kr_delete <id>
func (h *Handler) deleteKeyResult(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("Usage: /kr_delete <id>")
	}
	id, err := h.resolveKeyResultID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := h.services.DeleteKeyResult.Execute(ctx, keyresult.DeleteKeyResultInput{KeyResultID: id})
	if err != nil {
		return "", err
	}

	reply := fmt.Sprintf("🗑️ Key result <b>%s</b> deleted.", esc(out.KeyResult.Title))
	if out.Objective != nil {
		reply += fmt.Sprintf("\n🎯 %s is now at %d%%", esc(out.Objective.Title), out.Objective.Progress)
	}
	return reply, nil
}
