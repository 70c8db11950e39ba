// Package storagetest provides a behavioural test suite shared by every adapter.OKRStorage implementation.
package storagetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// Factory returns a fresh, empty storage for a single subtest.
type Factory func(t *testing.T) adapter.OKRStorage

// Run exercises the storage contract against the implementation built by newStorage.
func Run(t *testing.T, newStorage Factory) {
	t.Run("missing records return nil without error", func(t *testing.T) {
		testMissingRecords(t, newStorage(t))
	})
	t.Run("save and get objective", func(t *testing.T) {
		testSaveAndGetObjective(t, newStorage(t))
	})
	t.Run("list objectives with filters", func(t *testing.T) {
		testListObjectives(t, newStorage(t))
	})
	t.Run("update objective", func(t *testing.T) {
		testUpdateObjective(t, newStorage(t))
	})
	t.Run("delete objective cascades", func(t *testing.T) {
		testCascadeDelete(t, newStorage(t))
	})
	t.Run("key result round trip", func(t *testing.T) {
		testKeyResultRoundTrip(t, newStorage(t))
	})
	t.Run("list key results with filters", func(t *testing.T) {
		testListKeyResults(t, newStorage(t))
	})
	t.Run("objective progress is computed live", func(t *testing.T) {
		testObjectiveProgress(t, newStorage(t))
	})
	t.Run("search", func(t *testing.T) {
		testSearch(t, newStorage(t))
	})
}

func mustObjective(t *testing.T, s adapter.OKRStorage, title, owner string) *entity.Objective {
	t.Helper()
	o, err := entity.NewObjective(title, title+" description", owner, nil)
	if err != nil {
		t.Fatalf("failed to build objective: %v", err)
	}
	saved, err := s.SaveObjective(context.Background(), o)
	if err != nil {
		t.Fatalf("failed to save objective: %v", err)
	}
	return saved
}

func mustKeyResult(t *testing.T, s adapter.OKRStorage, objectiveID uuid.UUID, title, owner string, current, target int64) *entity.KeyResult {
	t.Helper()
	kr, err := entity.NewKeyResult(objectiveID, title, "", owner, decimal.NewFromInt(target), "")
	if err != nil {
		t.Fatalf("failed to build key result: %v", err)
	}
	kr.Current = decimal.NewFromInt(current)
	saved, err := s.SaveKeyResult(context.Background(), kr)
	if err != nil {
		t.Fatalf("failed to save key result: %v", err)
	}
	return saved
}

func testMissingRecords(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	id := uuid.New()

	if o, err := s.GetObjective(ctx, id); err != nil || o != nil {
		t.Errorf("GetObjective: expected (nil, nil), got (%v, %v)", o, err)
	}
	if kr, err := s.GetKeyResult(ctx, id); err != nil || kr != nil {
		t.Errorf("GetKeyResult: expected (nil, nil), got (%v, %v)", kr, err)
	}
	title := "x"
	if o, err := s.UpdateObjective(ctx, id, entity.ObjectiveUpdate{Title: &title}); err != nil || o != nil {
		t.Errorf("UpdateObjective: expected (nil, nil), got (%v, %v)", o, err)
	}
	if kr, err := s.UpdateKeyResult(ctx, id, entity.KeyResultUpdate{Title: &title}); err != nil || kr != nil {
		t.Errorf("UpdateKeyResult: expected (nil, nil), got (%v, %v)", kr, err)
	}
	if deleted, err := s.DeleteObjective(ctx, id); err != nil || deleted {
		t.Errorf("DeleteObjective: expected (false, nil), got (%v, %v)", deleted, err)
	}
	if deleted, err := s.DeleteKeyResult(ctx, id); err != nil || deleted {
		t.Errorf("DeleteKeyResult: expected (false, nil), got (%v, %v)", deleted, err)
	}
}

func testSaveAndGetObjective(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	due, _ := entity.ParseDueDate("2030-01-15")
	o, _ := entity.NewObjective("Grow revenue", "desc", "alice", due)
	o.AddAssignee("bob")
	o.Category = "sales"

	if _, err := s.SaveObjective(ctx, o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetObjective(ctx, o.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected objective, got nil")
	}
	if got.Title != "Grow revenue" || got.Owner != "alice" || got.Category != "sales" {
		t.Errorf("unexpected objective: %+v", got)
	}
	if len(got.Assignees) != 2 {
		t.Errorf("expected 2 assignees, got %v", got.Assignees)
	}
	if entity.FormatDueDate(got.DueDate) != "2030-01-15" {
		t.Errorf("expected due date 2030-01-15, got %s", entity.FormatDueDate(got.DueDate))
	}

	got.Title = "mutated"
	again, _ := s.GetObjective(ctx, o.ID)
	if again.Title != "Grow revenue" {
		t.Error("stored objective was mutated through a returned value")
	}

	o.Title = "Overwritten"
	if _, err := s.SaveObjective(ctx, o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all, _ := s.ListObjectives(ctx, entity.ObjectiveFilter{})
	if len(all) != 1 || all[0].Title != "Overwritten" {
		t.Errorf("expected save to overwrite by id, got %d objectives", len(all))
	}
}

func testListObjectives(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	first := mustObjective(t, s, "First", "alice")
	second := mustObjective(t, s, "Second", "bob")
	third := mustObjective(t, s, "Third", "carol")

	completed := entity.ObjectiveStatusCompleted
	if _, err := s.UpdateObjective(ctx, third.ID, entity.ObjectiveUpdate{Status: &completed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assignees := []string{"bob", "alice"}
	category := "ops"
	if _, err := s.UpdateObjective(ctx, second.ID, entity.ObjectiveUpdate{Assignees: assignees, Category: &category}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active := entity.ObjectiveStatusActive
	tests := []struct {
		name   string
		filter entity.ObjectiveFilter
		want   []uuid.UUID
	}{
		{name: "no filter keeps insertion order", filter: entity.ObjectiveFilter{}, want: []uuid.UUID{first.ID, second.ID, third.ID}},
		{name: "status", filter: entity.ObjectiveFilter{Status: &active}, want: []uuid.UUID{first.ID, second.ID}},
		{name: "owner or assignee", filter: entity.ObjectiveFilter{Owner: "alice"}, want: []uuid.UUID{first.ID, second.ID}},
		{name: "category", filter: entity.ObjectiveFilter{Category: "ops"}, want: []uuid.UUID{second.ID}},
		{name: "no match", filter: entity.ObjectiveFilter{Owner: "nobody"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListObjectives(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d objectives, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], got[i].ID)
				}
			}
		})
	}
}

func testUpdateObjective(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	o := mustObjective(t, s, "Before", "alice")

	title := "After"
	priority := entity.PriorityHigh
	due, _ := entity.ParseDueDate("2031-05-01")
	updated, err := s.UpdateObjective(ctx, o.ID, entity.ObjectiveUpdate{Title: &title, Priority: &priority, DueDate: due})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "After" || updated.Priority != entity.PriorityHigh {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Description != o.Description {
		t.Errorf("expected description untouched, got %q", updated.Description)
	}
	if updated.UpdatedAt.Before(o.UpdatedAt) {
		t.Error("expected updatedAt to move forward")
	}

	cleared, err := s.UpdateObjective(ctx, o.ID, entity.ObjectiveUpdate{ClearDueDate: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", cleared.DueDate)
	}
}

func testCascadeDelete(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	doomed := mustObjective(t, s, "Doomed", "alice")
	kept := mustObjective(t, s, "Kept", "alice")
	kr1 := mustKeyResult(t, s, doomed.ID, "KR one", "alice", 1, 10)
	mustKeyResult(t, s, doomed.ID, "KR two", "alice", 1, 10)
	survivor := mustKeyResult(t, s, kept.ID, "KR kept", "alice", 1, 10)

	deleted, err := s.DeleteObjective(ctx, doomed.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got (%v, %v)", deleted, err)
	}

	remaining, _ := s.ListKeyResults(ctx, entity.KeyResultFilter{})
	if len(remaining) != 1 || remaining[0].ID != survivor.ID {
		t.Errorf("expected only the surviving key result, got %d", len(remaining))
	}
	if kr, _ := s.GetKeyResult(ctx, kr1.ID); kr != nil {
		t.Error("expected cascaded key result to be unreachable")
	}
	if o, _ := s.GetObjective(ctx, doomed.ID); o != nil {
		t.Error("expected objective to be gone")
	}
}

func testKeyResultRoundTrip(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	o := mustObjective(t, s, "Objective", "alice")
	kr, _ := entity.NewKeyResult(o.ID, "Revenue", "ARR", "alice", decimal.RequireFromString("1000.5"), "dollars")
	kr.AddMilestone("second", decimal.NewFromInt(500), nil)
	kr.AddMilestone("first", decimal.NewFromInt(250), nil)
	if _, err := s.SaveKeyResult(ctx, kr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetKeyResult(ctx, kr.ID)
	if err != nil || got == nil {
		t.Fatalf("expected key result, got (%v, %v)", got, err)
	}
	if !got.Target.Equal(decimal.RequireFromString("1000.5")) {
		t.Errorf("expected target 1000.5, got %s", got.Target)
	}
	if got.Unit != "dollars" || got.ObjectiveID != o.ID {
		t.Errorf("unexpected key result: %+v", got)
	}
	if len(got.Milestones) != 2 || got.Milestones[0].Description != "first" {
		t.Errorf("expected milestones sorted by value, got %+v", got.Milestones)
	}

	current := decimal.NewFromInt(300)
	status := entity.KeyResultStatusBlocked
	milestones := append(got.Milestones, entity.Milestone{ID: uuid.New(), Description: "third", Value: decimal.NewFromInt(100)})
	updated, err := s.UpdateKeyResult(ctx, kr.ID, entity.KeyResultUpdate{Current: &current, Status: &status, Milestones: milestones})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Current.Equal(current) || updated.Status != entity.KeyResultStatusBlocked {
		t.Errorf("update not applied: %+v", updated)
	}
	reloaded, _ := s.GetKeyResult(ctx, kr.ID)
	if len(reloaded.Milestones) != 3 || reloaded.Milestones[0].Description != "third" {
		t.Errorf("expected replaced milestones sorted by value, got %+v", reloaded.Milestones)
	}

	deleted, err := s.DeleteKeyResult(ctx, kr.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got (%v, %v)", deleted, err)
	}
	if gone, _ := s.GetKeyResult(ctx, kr.ID); gone != nil {
		t.Error("expected key result to be gone")
	}
}

func testListKeyResults(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	o1 := mustObjective(t, s, "One", "alice")
	o2 := mustObjective(t, s, "Two", "bob")
	a := mustKeyResult(t, s, o1.ID, "A", "alice", 0, 10)
	b := mustKeyResult(t, s, o1.ID, "B", "bob", 10, 10)
	c := mustKeyResult(t, s, o2.ID, "C", "bob", 0, 10)

	completed := entity.KeyResultStatusCompleted
	if _, err := s.UpdateKeyResult(ctx, b.ID, entity.KeyResultUpdate{Status: &completed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		filter entity.KeyResultFilter
		want   []uuid.UUID
	}{
		{name: "all", filter: entity.KeyResultFilter{}, want: []uuid.UUID{a.ID, b.ID, c.ID}},
		{name: "objective", filter: entity.KeyResultFilter{ObjectiveID: &o1.ID}, want: []uuid.UUID{a.ID, b.ID}},
		{name: "owner", filter: entity.KeyResultFilter{Owner: "bob"}, want: []uuid.UUID{b.ID, c.ID}},
		{name: "status", filter: entity.KeyResultFilter{Status: &completed}, want: []uuid.UUID{b.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListKeyResults(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d key results, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], got[i].ID)
				}
			}
		})
	}
}

func testObjectiveProgress(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	o := mustObjective(t, s, "Objective", "alice")

	progress, err := s.ObjectiveProgress(ctx, o.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress != 0 {
		t.Errorf("expected 0 without key results, got %d", progress)
	}

	mustKeyResult(t, s, o.ID, "Half", "alice", 50, 100)
	kr := mustKeyResult(t, s, o.ID, "Also half", "alice", 25, 50)

	if progress, _ = s.ObjectiveProgress(ctx, o.ID); progress != 50 {
		t.Errorf("expected 50, got %d", progress)
	}

	current := decimal.NewFromInt(500)
	if _, err := s.UpdateKeyResult(ctx, kr.ID, entity.KeyResultUpdate{Current: &current}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress, _ = s.ObjectiveProgress(ctx, o.ID); progress != 75 {
		t.Errorf("expected clamped progress 75, got %d", progress)
	}
}

func testSearch(t *testing.T, s adapter.OKRStorage) {
	ctx := context.Background()
	o := mustObjective(t, s, "Improve Onboarding", "alice")
	mustObjective(t, s, "Ship billing", "bob")
	mustKeyResult(t, s, o.ID, "Onboarding NPS above 50", "alice", 0, 50)

	tests := []struct {
		name           string
		query          string
		scope          entity.SearchScope
		wantObjectives int
		wantKeyResults int
	}{
		{name: "all scopes", query: "onboarding", scope: entity.SearchScopeAll, wantObjectives: 1, wantKeyResults: 1},
		{name: "objectives only", query: "ONBOARDING", scope: entity.SearchScopeObjectives, wantObjectives: 1, wantKeyResults: 0},
		{name: "key results only", query: "nps", scope: entity.SearchScopeKeyResults, wantObjectives: 0, wantKeyResults: 1},
		{name: "description", query: "billing description", scope: entity.SearchScopeAll, wantObjectives: 1, wantKeyResults: 0},
		{name: "wildcards are literal", query: "%", scope: entity.SearchScopeAll, wantObjectives: 0, wantKeyResults: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(ctx, tt.query, tt.scope)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Objectives) != tt.wantObjectives {
				t.Errorf("expected %d objectives, got %d", tt.wantObjectives, len(got.Objectives))
			}
			if len(got.KeyResults) != tt.wantKeyResults {
				t.Errorf("expected %d key results, got %d", tt.wantKeyResults, len(got.KeyResults))
			}
		})
	}
}
