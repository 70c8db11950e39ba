package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// /obj_create "Title" ["Description"] [@owner] [YYYY-MM-DD]
func (h *Handler) createObjective(ctx context.Context, msg Message, args []string) (string, error) {
	if len(args) == 0 {
		return "", usageError(`Usage: /obj_create "Title" "Description" [@owner] [YYYY-MM-DD]`)
	}

	input := objective.CreateObjectiveInput{
		Title:     args[0],
		Owner:     msg.Caller(),
		CreatedBy: msg.Caller(),
	}

	rest := args[1:]
	if len(rest) > 0 && !isMention(rest[0]) && !isDate(rest[0]) {
		input.Description = rest[0]
		rest = rest[1:]
	}
	for _, arg := range rest {
		switch {
		case isMention(arg):
			input.Owner = arg
		case isDate(arg):
			input.DueDate = arg
		default:
			return "", usageError(fmt.Sprintf("Unexpected argument %q. Owners start with @ and dates use YYYY-MM-DD.", arg))
		}
	}

	out, err := h.services.CreateObjective.Execute(ctx, input)
	if err != nil {
		return "", err
	}

	reply := formatObjective(out.Objective, "✅ Objective Created!")
	return reply + fmt.Sprintf("\n💡 Use <code>/kr_create %s \"Title\" 100</code> to add key results", ShortID(out.Objective.ID)), nil
}

// /obj_list [@owner] [status|all]
func (h *Handler) listObjectives(ctx context.Context, _ Message, args []string) (string, error) {
	status := entity.ObjectiveStatusActive
	filter := entity.ObjectiveFilter{Status: &status}

	for _, arg := range args {
		if isMention(arg) {
			filter.Owner = entity.NormalizeUser(arg)
			continue
		}
		if strings.EqualFold(arg, "all") {
			filter.Status = nil
			continue
		}
		parsed, ok := entity.ParseObjectiveStatus(arg)
		if !ok {
			return "", usageError(fmt.Sprintf("Unknown status %q. Use one of: %s, or all.", arg, joinStatuses()))
		}
		filter.Status = &parsed
	}

	out, err := h.services.ListObjectives.Execute(ctx, objective.ListObjectivesInput{Filter: filter})
	if err != nil {
		return "", err
	}
	return formatObjectiveList(out.Objectives), nil
}

func joinStatuses() string {
	names := make([]string, len(entity.ObjectiveStatuses))
	for i, s := range entity.ObjectiveStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// /obj_show <id>
func (h *Handler) showObjective(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("Usage: /obj_show <id>")
	}
	id, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := h.services.ObjectiveStats.Execute(ctx, objective.GetObjectiveStatsInput{ObjectiveID: id})
	if err != nil {
		return "", err
	}
	return formatObjectiveStats(out), nil
}

// /obj_update <id> field="value" ...
func (h *Handler) updateObjective(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) < 2 {
		return "", usageError(`Usage: /obj_update <id> field="value" ... Fields: ` + strings.Join(objective.UpdatableFields, ", "))
	}
	id, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := h.services.UpdateObjective.Execute(ctx, objective.UpdateObjectiveInput{
		ObjectiveID: id,
		Fields:      ParseFields(args[1:]),
	})
	if err != nil {
		return "", err
	}

	reply := formatObjective(out.Objective, "🔄 Objective Updated!")
	return reply + "✏️ Updated: " + strings.Join(out.AppliedFields, ", "), nil
}

// /obj_delete <id>
func (h *Handler) deleteObjective(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("Usage: /obj_delete <id>")
	}
	id, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := h.services.DeleteObjective.Execute(ctx, objective.DeleteObjectiveInput{ObjectiveID: id})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑️ Objective <b>%s</b> deleted along with %d key results.", esc(out.Objective.Title), out.DeletedKeyResults), nil
}

// /obj_assign <id> @user
func (h *Handler) assignObjective(ctx context.Context, _ Message, args []string) (string, error) {
	return h.changeAssignee(ctx, args, "obj_assign", h.services.AddAssignee.Execute)
}

// /obj_unassign <id> @user
func (h *Handler) unassignObjective(ctx context.Context, _ Message, args []string) (string, error) {
	return h.changeAssignee(ctx, args, "obj_unassign", h.services.RemoveAssignee.Execute)
}

type assigneeFunc func(ctx context.Context, input objective.AssigneeInput) (*objective.AssigneeOutput, error)

func (h *Handler) changeAssignee(ctx context.Context, args []string, command string, execute assigneeFunc) (string, error) {
	if len(args) != 2 {
		return "", usageError(fmt.Sprintf("Usage: /%s <id> @user", command))
	}
	id, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := execute(ctx, objective.AssigneeInput{ObjectiveID: id, User: args[1]})
	if err != nil {
		return "", err
	}

	user := entity.NormalizeUser(args[1])
	if !out.Changed {
		return fmt.Sprintf("ℹ️ No change: assignees are %s", formatUsers(out.Objective.Assignees)), nil
	}
	verb := "assigned to"
	if command == "obj_unassign" {
		verb = "unassigned from"
	}
	return fmt.Sprintf("👥 @%s %s <b>%s</b>\nAssignees: %s", esc(user), verb, esc(out.Objective.Title), formatUsers(out.Objective.Assignees)), nil
}

// /obj_status <id> <status>
func (h *Handler) setObjectiveStatus(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) != 2 {
		return "", usageError("Usage: /obj_status <id> <status>. Statuses: " + joinStatuses())
	}
	id, err := h.resolveObjectiveID(ctx, args[0])
	if err != nil {
		return "", err
	}

	out, err := h.services.SetObjectiveStatus.Execute(ctx, objective.SetObjectiveStatusInput{
		ObjectiveID: id,
		Status:      args[1],
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 <b>%s</b> is now %s", esc(out.Objective.Title), out.Objective.Status), nil
}
