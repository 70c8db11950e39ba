package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/application/usecase/search"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// defaultSessionTTL bounds how long an abandoned form is kept.
const defaultSessionTTL = 15 * time.Minute

// Services groups the use cases reachable from chat commands.
type Services struct {
	CreateObjective    *objective.CreateObjectiveUseCase
	ListObjectives     *objective.ListObjectivesUseCase
	UpdateObjective    *objective.UpdateObjectiveUseCase
	DeleteObjective    *objective.DeleteObjectiveUseCase
	ObjectiveStats     *objective.GetObjectiveStatsUseCase
	SetObjectiveStatus *objective.SetObjectiveStatusUseCase
	AddAssignee        *objective.AddAssigneeUseCase
	RemoveAssignee     *objective.RemoveAssigneeUseCase

	CreateKeyResult *keyresult.CreateKeyResultUseCase
	ListKeyResults  *keyresult.ListKeyResultsUseCase
	UpdateKeyResult *keyresult.UpdateKeyResultUseCase
	DeleteKeyResult *keyresult.DeleteKeyResultUseCase
	UpdateProgress  *keyresult.UpdateProgressUseCase
	AddMilestone    *keyresult.AddMilestoneUseCase

	OverallReport *report.GenerateOverallReportUseCase
	TeamReport    *report.GenerateTeamReportUseCase
	Search        *search.SearchUseCase
}

type commandFunc func(ctx context.Context, msg Message, args []string) (string, error)

// usageError is returned when a command is called with the wrong arguments.
type usageError string

func (e usageError) Error() string {
	return string(e)
}

// Handler turns chat messages into use case calls and renders the replies.
// Every command produces a reply, including on failure.
type Handler struct {
	services   Services
	sessions   adapter.SessionStore
	sessionTTL time.Duration
	commands   map[string]commandFunc
}

// NewHandler creates a new Handler. Form wizard state lives in sessions.
func NewHandler(services Services, sessions adapter.SessionStore, sessionTTL time.Duration) *Handler {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	h := &Handler{
		services:   services,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}

	h.commands = map[string]commandFunc{
		"start": h.help,
		"help":  h.help,

		"obj_create":   h.createObjective,
		"obj_new":      h.startObjectiveForm,
		"obj_list":     h.listObjectives,
		"obj_show":     h.showObjective,
		"obj_update":   h.updateObjective,
		"obj_delete":   h.deleteObjective,
		"obj_assign":   h.assignObjective,
		"obj_unassign": h.unassignObjective,
		"obj_status":   h.setObjectiveStatus,

		"kr_create":    h.createKeyResult,
		"kr_new":       h.startKeyResultForm,
		"kr_list":      h.listKeyResults,
		"kr_update":    h.updateKeyResult,
		"kr_progress":  h.updateProgress,
		"kr_milestone": h.addMilestone,
		"kr_delete":    h.deleteKeyResult,

		"okr_report": h.report,
		"okr_search": h.search,

		"cancel": h.cancelForm,
	}

	return h
}

// Handle processes one message and returns the HTML reply. Plain text outside
// an open form yields an empty reply.
func (h *Handler) Handle(ctx context.Context, msg Message) string {
	cmd, ok := ParseCommand(msg.Text)
	if !ok {
		reply, handled, err := h.continueForm(ctx, msg)
		if err != nil {
			return errorReply(err)
		}
		if !handled {
			return ""
		}
		return reply
	}

	run, ok := h.commands[cmd.Name]
	if !ok {
		return fmt.Sprintf("❓ Unknown command /%s. Send /help for the list of commands.", esc(cmd.Name))
	}

	reply, err := run(ctx, msg, cmd.Args)
	if err != nil {
		slog.Debug("Chat command rejected", "command", cmd.Name, "error", err)
		return errorReply(err)
	}
	return reply
}

func errorReply(err error) string {
	var usage usageError
	if errors.As(err, &usage) {
		return "⚠️ " + esc(string(usage))
	}

	var okrErr *domainerror.OKRError
	if errors.As(err, &okrErr) && (domainerror.IsValidation(err) || domainerror.IsNotFound(err)) {
		return "❌ " + esc(okrErr.Message)
	}

	slog.Error("Chat command failed", "error", err)
	return "❌ Something went wrong. Please try again."
}

func (h *Handler) help(_ context.Context, _ Message, _ []string) (string, error) {
	return helpText, nil
}

// resolveObjectiveID accepts a full id or any unique prefix of one.
func (h *Handler) resolveObjectiveID(ctx context.Context, raw string) (uuid.UUID, error) {
	if id, err := uuid.Parse(raw); err == nil {
		return id, nil
	}

	out, err := h.services.ListObjectives.Execute(ctx, objective.ListObjectivesInput{})
	if err != nil {
		return uuid.Nil, err
	}
	ids := make([]uuid.UUID, len(out.Objectives))
	for i, o := range out.Objectives {
		ids[i] = o.ID
	}
	return matchPrefix(raw, ids, "objective", domainerror.ErrCodeObjectiveNotFound)
}

func (h *Handler) resolveKeyResultID(ctx context.Context, raw string) (uuid.UUID, error) {
	if id, err := uuid.Parse(raw); err == nil {
		return id, nil
	}

	out, err := h.services.ListKeyResults.Execute(ctx, keyresult.ListKeyResultsInput{})
	if err != nil {
		return uuid.Nil, err
	}
	ids := make([]uuid.UUID, len(out.KeyResults))
	for i, kr := range out.KeyResults {
		ids[i] = kr.ID
	}
	return matchPrefix(raw, ids, "key result", domainerror.ErrCodeKeyResultNotFound)
}

func matchPrefix(raw string, ids []uuid.UUID, label string, notFound domainerror.OKRErrorCode) (uuid.UUID, error) {
	prefix := strings.ToLower(strings.TrimSpace(raw))
	if prefix == "" {
		return uuid.Nil, usageError(label + " id is required")
	}

	var (
		match   uuid.UUID
		matches int
	)
	for _, id := range ids {
		if strings.HasPrefix(id.String(), prefix) {
			match = id
			matches++
		}
	}

	switch matches {
	case 0:
		return uuid.Nil, domainerror.NewNotFoundError(notFound, label+" not found")
	case 1:
		return match, nil
	default:
		return uuid.Nil, usageError(fmt.Sprintf("id %q matches %d %ss, use more characters", raw, matches, label))
	}
}
