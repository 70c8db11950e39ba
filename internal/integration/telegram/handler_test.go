package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/application/usecase/search"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
	"github.com/okr-bot/backend/internal/integration/adapters"
	"github.com/okr-bot/backend/internal/integration/persistence/memory"
	"github.com/okr-bot/backend/internal/integration/session"
)

type testEnv struct {
	handler *Handler
	storage adapter.OKRStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	storage := memory.NewStorage()
	clock := adapters.NewSystemClock()
	recalculate := objective.NewRecalculateProgressUseCase(storage)

	services := Services{
		CreateObjective:    objective.NewCreateObjectiveUseCase(storage),
		ListObjectives:     objective.NewListObjectivesUseCase(storage),
		UpdateObjective:    objective.NewUpdateObjectiveUseCase(storage),
		DeleteObjective:    objective.NewDeleteObjectiveUseCase(storage),
		ObjectiveStats:     objective.NewGetObjectiveStatsUseCase(storage, clock),
		SetObjectiveStatus: objective.NewSetObjectiveStatusUseCase(storage),
		AddAssignee:        objective.NewAddAssigneeUseCase(storage),
		RemoveAssignee:     objective.NewRemoveAssigneeUseCase(storage),
		CreateKeyResult:    keyresult.NewCreateKeyResultUseCase(storage, recalculate),
		ListKeyResults:     keyresult.NewListKeyResultsUseCase(storage),
		UpdateKeyResult:    keyresult.NewUpdateKeyResultUseCase(storage, recalculate),
		DeleteKeyResult:    keyresult.NewDeleteKeyResultUseCase(storage, recalculate),
		UpdateProgress:     keyresult.NewUpdateProgressUseCase(storage, recalculate),
		AddMilestone:       keyresult.NewAddMilestoneUseCase(storage),
		OverallReport:      report.NewGenerateOverallReportUseCase(storage, clock),
		TeamReport: report.NewGenerateTeamReportUseCase(
			storage,
			objective.NewListUpcomingDeadlinesUseCase(storage, clock),
			keyresult.NewListAtRiskKeyResultsUseCase(storage),
			clock,
		),
		Search: search.NewSearchUseCase(storage),
	}

	return &testEnv{
		handler: NewHandler(services, session.NewMemoryStore(clock), time.Minute),
		storage: storage,
	}
}

func (e *testEnv) send(t *testing.T, text string) string {
	t.Helper()
	return e.handler.Handle(context.Background(), Message{ChatID: 10, UserID: 42, UserName: "alice", Text: text})
}

func (e *testEnv) objectiveByTitle(t *testing.T, title string) *entity.Objective {
	t.Helper()
	objectives, err := e.storage.ListObjectives(context.Background(), entity.ObjectiveFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, o := range objectives {
		if o.Title == title {
			return o
		}
	}
	t.Fatalf("objective %q not found", title)
	return nil
}

func (e *testEnv) keyResultByTitle(t *testing.T, title string) *entity.KeyResult {
	t.Helper()
	keyResults, err := e.storage.ListKeyResults(context.Background(), entity.KeyResultFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, kr := range keyResults {
		if kr.Title == title {
			return kr
		}
	}
	t.Fatalf("key result %q not found", title)
	return nil
}

func assertContains(t *testing.T, reply string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(reply, want) {
			t.Errorf("expected reply to contain %q, got:\n%s", want, reply)
		}
	}
}

func TestHandler_HelpAndUnknown(t *testing.T) {
	env := newTestEnv(t)

	assertContains(t, env.send(t, "/help"), "/obj_create", "/kr_progress", "/okr_report")
	assertContains(t, env.send(t, "/frobnicate"), "Unknown command /frobnicate")

	if reply := env.send(t, "just chatting"); reply != "" {
		t.Errorf("expected no reply to plain text, got %q", reply)
	}
}

func TestHandler_ObjectiveLifecycle(t *testing.T) {
	env := newTestEnv(t)

	reply := env.send(t, `/obj_create "Grow revenue" "Hit the Q3 number" 2030-06-30`)
	assertContains(t, reply, "Objective Created!", "Grow revenue", "@alice", "2030-06-30")

	o := env.objectiveByTitle(t, "Grow revenue")
	if o.Owner != "alice" || o.CreatedBy != "alice" {
		t.Errorf("expected caller as owner and creator, got %q/%q", o.Owner, o.CreatedBy)
	}
	short := ShortID(o.ID)

	assertContains(t, env.send(t, "/obj_list"), "Objectives (1)", short)
	assertContains(t, env.send(t, "/obj_list @bob"), "No objectives found")
	assertContains(t, env.send(t, "/obj_list sleeping"), "Unknown status")

	assertContains(t, env.send(t, "/obj_show "+short), "Grow revenue", "0/0 completed")

	assertContains(t, env.send(t, `/obj_update `+short+` title="Grow ARR" bogus=1`), "Objective Updated!", "Grow ARR", "Updated: title")
	assertContains(t, env.send(t, `/obj_update `+short+` bogus=1`), "❌", "no valid fields")

	assertContains(t, env.send(t, "/obj_assign "+short+" @bob"), "@bob assigned to", "@alice, @bob")
	assertContains(t, env.send(t, "/obj_assign "+short+" @bob"), "No change")
	assertContains(t, env.send(t, "/obj_unassign "+short+" @bob"), "@bob unassigned from")

	assertContains(t, env.send(t, "/obj_status "+short+" cancelled"), "is now cancelled")
	assertContains(t, env.send(t, "/obj_status "+short+" sleeping"), "❌")

	assertContains(t, env.send(t, "/obj_delete "+short), "deleted along with 0 key results")
	assertContains(t, env.send(t, "/obj_show "+short), "❌ objective not found")
}

func TestHandler_ObjectiveCreateOwnerAndUsage(t *testing.T) {
	env := newTestEnv(t)

	assertContains(t, env.send(t, "/obj_create"), "⚠️ Usage: /obj_create")
	assertContains(t, env.send(t, `/obj_create "Hire" @bob`), "Objective Created!", "@bob")
	assertContains(t, env.send(t, `/obj_create "Hire" "desc" tomorrow`), "⚠️ Unexpected argument")

	o := env.objectiveByTitle(t, "Hire")
	if o.Owner != "bob" || o.CreatedBy != "alice" || o.Description != "" {
		t.Errorf("unexpected objective: owner=%q createdBy=%q description=%q", o.Owner, o.CreatedBy, o.Description)
	}
}

func TestHandler_KeyResultLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.send(t, `/obj_create "Grow revenue" "Q3"`)
	objectiveID := ShortID(env.objectiveByTitle(t, "Grow revenue").ID)

	reply := env.send(t, `/kr_create `+objectiveID+` "Close deals" 10 deals`)
	assertContains(t, reply, "Key Result Created!", "Close deals", "0/10 deals")

	kr := env.keyResultByTitle(t, "Close deals")
	short := ShortID(kr.ID)

	assertContains(t, env.send(t, "/kr_list "+objectiveID), "Key Results (1)", short)
	assertContains(t, env.send(t, "/kr_create "+objectiveID+` "Bad" 0`), "❌ target must be greater than 0")

	reply = env.send(t, "/kr_progress "+short+" 5")
	assertContains(t, reply, "0% → 50% (+50%)", "At Risk", "Objective progress:</b> 50%")

	assertContains(t, env.send(t, "/kr_progress "+short+" 3 increment"), "50% → 80%", "On Track")
	assertContains(t, env.send(t, "/kr_progress "+short+" 100 percentage"), "COMPLETED!")
	assertContains(t, env.send(t, "/kr_progress "+short+" five"), "❌ value must be a valid number")
	assertContains(t, env.send(t, "/kr_progress "+short+" 5 sideways"), "❌")

	assertContains(t, env.send(t, `/kr_milestone `+short+` 5 "Halfway" 2030-01-01`), "Milestone <b>Halfway</b> at 5", "(1 milestones)")
	assertContains(t, env.send(t, `/kr_update `+short+` target=20`), "Key Result Updated!", "Updated: target", "10/20 deals")

	reply = env.send(t, "/kr_delete "+short)
	assertContains(t, reply, "Key result <b>Close deals</b> deleted", "is now at 0%")
}

func TestHandler_Report(t *testing.T) {
	env := newTestEnv(t)

	assertContains(t, env.send(t, "/okr_report"), "OKR REPORT", report.EmptyReportMessage)

	env.send(t, `/obj_create "Grow revenue" "Q3"`)
	objectiveID := ShortID(env.objectiveByTitle(t, "Grow revenue").ID)
	env.send(t, `/kr_create `+objectiveID+` "Close deals" 10`)

	assertContains(t, env.send(t, "/okr_report"), "SUMMARY", "TOP OBJECTIVES", "🔴 Grow revenue (0%)", "RECOMMENDATIONS")
	assertContains(t, env.send(t, "/okr_report @alice"), "OKR REPORT for @alice", "AT RISK", "Close deals")
	assertContains(t, env.send(t, "/okr_report @alice @bob"), "Usage: /okr_report")
}

func TestHandler_Search(t *testing.T) {
	env := newTestEnv(t)
	env.send(t, `/obj_create "Grow revenue" "Q3 target"`)

	assertContains(t, env.send(t, "/okr_search revenue"), `Results for "revenue"`, "Grow revenue")
	assertContains(t, env.send(t, "/okr_search hiring plan"), `No results for "hiring plan"`)
	assertContains(t, env.send(t, "/okr_search"), "Usage: /okr_search")
}

func TestHandler_ObjectiveForm(t *testing.T) {
	env := newTestEnv(t)

	assertContains(t, env.send(t, "/obj_new"), "New objective", "objective title")
	assertContains(t, env.send(t, "   "), "This field is required")
	assertContains(t, env.send(t, "Launch mobile app"), "Describe the objective")
	assertContains(t, env.send(t, "-"), "Due date")
	assertContains(t, env.send(t, "2030-13-45"), "invalid due date format", "Due date")
	assertContains(t, env.send(t, "2030-09-01"), "Priority")
	assertContains(t, env.send(t, "urgent"), "priority must be")
	assertContains(t, env.send(t, "high"), "Objective Created!", "Launch mobile app", "2030-09-01", "high")

	o := env.objectiveByTitle(t, "Launch mobile app")
	if o.Description != "" || o.Priority != entity.PriorityHigh {
		t.Errorf("unexpected objective: description=%q priority=%q", o.Description, o.Priority)
	}

	if reply := env.send(t, "more chatter"); reply != "" {
		t.Errorf("expected form to be closed, got %q", reply)
	}
}

func TestHandler_KeyResultFormAndCancel(t *testing.T) {
	env := newTestEnv(t)
	env.send(t, `/obj_create "Grow revenue" "Q3"`)
	objectiveID := ShortID(env.objectiveByTitle(t, "Grow revenue").ID)

	assertContains(t, env.send(t, "/cancel"), "Nothing to cancel")
	assertContains(t, env.send(t, "/kr_new ffffffff"), "❌ objective not found")

	assertContains(t, env.send(t, "/kr_new "+objectiveID), "New key result")
	env.send(t, "Close deals")
	env.send(t, "-")
	assertContains(t, env.send(t, "zero"), "target must be a valid number")
	env.send(t, "20")
	env.send(t, "deals")
	assertContains(t, env.send(t, "5"), "Key Result Created!", "5/20 deals")

	assertContains(t, env.send(t, "/obj_new"), "New objective")
	assertContains(t, env.send(t, "/cancel"), "Form cancelled")
	if reply := env.send(t, "Abandoned"); reply != "" {
		t.Errorf("expected cancelled form to ignore answers, got %q", reply)
	}
}

func TestMatchPrefix(t *testing.T) {
	ids := []uuid.UUID{
		uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
		uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
		uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000003"),
	}

	if id, err := matchPrefix("BBBB", ids, "objective", domainerror.ErrCodeObjectiveNotFound); err != nil || id != ids[2] {
		t.Errorf("expected unique match, got %v, %v", id, err)
	}

	var usage usageError
	if _, err := matchPrefix("aaaa", ids, "objective", domainerror.ErrCodeObjectiveNotFound); !errors.As(err, &usage) {
		t.Errorf("expected ambiguity usage error, got %v", err)
	}
	if _, err := matchPrefix(" ", ids, "objective", domainerror.ErrCodeObjectiveNotFound); !errors.As(err, &usage) {
		t.Errorf("expected usage error for blank id, got %v", err)
	}
	if _, err := matchPrefix("cc", ids, "objective", domainerror.ErrCodeObjectiveNotFound); !domainerror.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
