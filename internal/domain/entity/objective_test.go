package entity

import (
	"strings"
	"testing"
	"time"

	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

func TestNewObjective(t *testing.T) {
	t.Run("creates active objective with owner as assignee", func(t *testing.T) {
		obj, err := NewObjective("  Grow revenue  ", "Q3 push", "@alice", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if obj.Title != "Grow revenue" {
			t.Errorf("expected trimmed title, got %q", obj.Title)
		}
		if obj.Owner != "alice" {
			t.Errorf("expected owner alice, got %q", obj.Owner)
		}
		if obj.Status != ObjectiveStatusActive {
			t.Errorf("expected active, got %s", obj.Status)
		}
		if obj.Priority != PriorityMedium {
			t.Errorf("expected medium priority, got %s", obj.Priority)
		}
		if obj.Progress != 0 {
			t.Errorf("expected progress 0, got %d", obj.Progress)
		}
		if len(obj.Assignees) != 1 || obj.Assignees[0] != "alice" {
			t.Errorf("expected [alice], got %v", obj.Assignees)
		}
	})

	tests := []struct {
		name        string
		title       string
		description string
		owner       string
		code        domainerror.OKRErrorCode
	}{
		{name: "missing title", title: " ", owner: "alice", code: domainerror.ErrCodeMissingObjectiveTitle},
		{name: "missing owner", title: "T", owner: "", code: domainerror.ErrCodeMissingObjectiveOwner},
		{name: "title too long", title: strings.Repeat("a", 201), owner: "alice", code: domainerror.ErrCodeObjectiveTitleTooLong},
		{name: "description too long", title: "T", description: strings.Repeat("d", 1001), owner: "alice", code: domainerror.ErrCodeObjectiveDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewObjective(tt.title, tt.description, tt.owner, nil)
			if !domainerror.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			okrErr, ok := err.(*domainerror.OKRError)
			if !ok {
				t.Fatalf("expected *OKRError, got %T", err)
			}
			if okrErr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, okrErr.Code)
			}
		})
	}
}

func TestObjective_SetStatus(t *testing.T) {
	obj, _ := NewObjective("T", "", "alice", nil)

	if !obj.SetStatus(ObjectiveStatusDraft) {
		t.Error("expected draft to be accepted")
	}
	if obj.SetStatus(ObjectiveStatus("blocked")) {
		t.Error("expected blocked to be rejected for objectives")
	}
	if obj.Status != ObjectiveStatusDraft {
		t.Errorf("expected status to stay draft, got %s", obj.Status)
	}
}

func TestObjective_Assignees(t *testing.T) {
	obj, _ := NewObjective("T", "", "alice", nil)

	if !obj.AddAssignee("@bob") {
		t.Error("expected bob to be added")
	}
	if obj.AddAssignee("bob") {
		t.Error("expected second add to be a no-op")
	}
	if len(obj.Assignees) != 2 {
		t.Errorf("expected 2 assignees, got %v", obj.Assignees)
	}
	if !obj.IsAssigned("bob") {
		t.Error("expected bob to be assigned")
	}

	if !obj.RemoveAssignee("alice") {
		t.Error("expected alice to be removed")
	}
	if obj.RemoveAssignee("alice") {
		t.Error("expected second remove to be a no-op")
	}
	if !obj.IsAssigned("alice") {
		t.Error("expected owner to still match after leaving assignees")
	}
}

func TestObjective_DueDates(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	due := func(s string) *time.Time {
		d, err := ParseDueDate(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return d
	}

	t.Run("overdue only when active", func(t *testing.T) {
		obj, _ := NewObjective("T", "", "alice", due("2024-06-01"))
		if !obj.IsOverdue(now) {
			t.Error("expected overdue")
		}
		obj.Status = ObjectiveStatusCompleted
		if obj.IsOverdue(now) {
			t.Error("completed objective must not be overdue")
		}
	})

	t.Run("no due date is never overdue", func(t *testing.T) {
		obj, _ := NewObjective("T", "", "alice", nil)
		if obj.IsOverdue(now) {
			t.Error("expected not overdue")
		}
		if obj.DaysUntilDue(now) != nil {
			t.Error("expected nil days until due")
		}
	})

	t.Run("days until due rounds up", func(t *testing.T) {
		obj, _ := NewObjective("T", "", "alice", due("2024-06-13"))
		days := obj.DaysUntilDue(now)
		if days == nil || *days != 3 {
			t.Errorf("expected 3 days, got %v", days)
		}
	})

	t.Run("due within window", func(t *testing.T) {
		obj, _ := NewObjective("T", "", "alice", due("2024-06-15"))
		if !obj.IsDueWithin(now, 7) {
			t.Error("expected due within 7 days")
		}
		if obj.IsDueWithin(now, 3) {
			t.Error("expected not due within 3 days")
		}
	})
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		raw     string
		wantNil bool
		wantErr bool
	}{
		{raw: "", wantNil: true},
		{raw: "Not set", wantNil: true},
		{raw: "2024-12-31"},
		{raw: "31/12/2024", wantErr: true},
		{raw: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDueDate(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (got == nil) != tt.wantNil {
				t.Errorf("expected nil=%v, got %v", tt.wantNil, got)
			}
		})
	}
}

func TestObjectiveFilter_Matches(t *testing.T) {
	obj, _ := NewObjective("T", "", "alice", nil)
	obj.AddAssignee("bob")
	obj.Category = "sales"
	completed := ObjectiveStatusCompleted

	tests := []struct {
		name   string
		filter ObjectiveFilter
		want   bool
	}{
		{name: "empty filter", filter: ObjectiveFilter{}, want: true},
		{name: "owner", filter: ObjectiveFilter{Owner: "alice"}, want: true},
		{name: "assignee", filter: ObjectiveFilter{Owner: "bob"}, want: true},
		{name: "stranger", filter: ObjectiveFilter{Owner: "carol"}, want: false},
		{name: "status mismatch", filter: ObjectiveFilter{Status: &completed}, want: false},
		{name: "category", filter: ObjectiveFilter{Category: "sales"}, want: true},
		{name: "category mismatch", filter: ObjectiveFilter{Category: "ops"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(obj); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMatchesQuery(t *testing.T) {
	if !MatchesQuery("REVENUE", "Grow revenue", "") {
		t.Error("expected case-insensitive title match")
	}
	if !MatchesQuery("pipeline", "Sales", "Build the Pipeline") {
		t.Error("expected description match")
	}
	if MatchesQuery("churn", "Sales", "pipeline") {
		t.Error("expected no match")
	}
}
