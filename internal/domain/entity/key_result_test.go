package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

func newTestKeyResult(t *testing.T, target int64) *KeyResult {
	t.Helper()
	kr, err := NewKeyResult(uuid.New(), "Close deals", "", "alice", decimal.NewFromInt(target), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return kr
}

func TestNewKeyResult(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		kr := newTestKeyResult(t, 10)

		if kr.Status != KeyResultStatusActive {
			t.Errorf("expected status active, got %s", kr.Status)
		}
		if kr.Unit != DefaultUnit {
			t.Errorf("expected unit %s, got %s", DefaultUnit, kr.Unit)
		}
		if !kr.Current.IsZero() {
			t.Errorf("expected current 0, got %s", kr.Current)
		}
		if kr.Priority != PriorityMedium {
			t.Errorf("expected priority medium, got %s", kr.Priority)
		}
		if len(kr.Assignees) != 1 || kr.Assignees[0] != "alice" {
			t.Errorf("expected owner as only assignee, got %v", kr.Assignees)
		}
	})

	tests := []struct {
		name   string
		title  string
		owner  string
		target decimal.Decimal
		unit   string
	}{
		{name: "empty title", title: "  ", owner: "alice", target: decimal.NewFromInt(1)},
		{name: "empty owner", title: "KR", owner: " ", target: decimal.NewFromInt(1)},
		{name: "zero target", title: "KR", owner: "alice", target: decimal.Zero},
		{name: "negative target", title: "KR", owner: "alice", target: decimal.NewFromInt(-3)},
		{name: "unit too long", title: "KR", owner: "alice", target: decimal.NewFromInt(1), unit: "abcdefghijklmnopqrstuvwxyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKeyResult(uuid.New(), tt.title, "", tt.owner, tt.target, tt.unit)
			if !errors.Is(err, domainerror.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "100", wantErr: false},
		{raw: "2.5", wantErr: false},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := ParseTarget(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTarget(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestKeyResult_UpdateProgress(t *testing.T) {
	tests := []struct {
		name        string
		start       int64
		value       float64
		mode        ProgressMode
		wantCurrent string
	}{
		{name: "absolute", start: 0, value: 40, mode: ProgressModeAbsolute, wantCurrent: "40"},
		{name: "absolute clamps negative", start: 10, value: -5, mode: ProgressModeAbsolute, wantCurrent: "0"},
		{name: "percentage of target", start: 0, value: 50, mode: ProgressModePercentage, wantCurrent: "100"},
		{name: "percentage clamps above 100", start: 0, value: 150, mode: ProgressModePercentage, wantCurrent: "200"},
		{name: "percentage clamps below 0", start: 30, value: -10, mode: ProgressModePercentage, wantCurrent: "0"},
		{name: "increment", start: 20, value: 15, mode: ProgressModeIncrement, wantCurrent: "35"},
		{name: "increment never negative", start: 5, value: -10, mode: ProgressModeIncrement, wantCurrent: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kr := newTestKeyResult(t, 200)
			kr.Current = decimal.NewFromInt(tt.start)

			if err := kr.UpdateProgress(decimal.NewFromFloat(tt.value), tt.mode); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !kr.Current.Equal(decimal.RequireFromString(tt.wantCurrent)) {
				t.Errorf("expected current %s, got %s", tt.wantCurrent, kr.Current)
			}
		})
	}

	t.Run("rejects unknown mode", func(t *testing.T) {
		kr := newTestKeyResult(t, 10)
		err := kr.UpdateProgress(decimal.NewFromInt(1), ProgressMode("bogus"))
		if !domainerror.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestKeyResult_AutoCompletion(t *testing.T) {
	kr := newTestKeyResult(t, 10)

	if err := kr.UpdateProgress(decimal.NewFromInt(12), ProgressModeAbsolute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kr.Status != KeyResultStatusCompleted {
		t.Fatalf("expected completed after reaching target, got %s", kr.Status)
	}

	if err := kr.UpdateProgress(decimal.NewFromInt(5), ProgressModeAbsolute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kr.Status != KeyResultStatusCompleted {
		t.Errorf("expected completion to be one-way, got %s", kr.Status)
	}

	t.Run("blocked key result is not auto-completed", func(t *testing.T) {
		blocked := newTestKeyResult(t, 10)
		blocked.Status = KeyResultStatusBlocked
		_ = blocked.UpdateProgress(decimal.NewFromInt(10), ProgressModeAbsolute)
		if blocked.Status != KeyResultStatusBlocked {
			t.Errorf("expected blocked, got %s", blocked.Status)
		}
	})
}

func TestKeyResult_ProgressPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    float64
	}{
		{name: "half", current: "50", target: "100", want: 50},
		{name: "over target is clamped", current: "150", target: "100", want: 100},
		{name: "zero target", current: "10", target: "0", want: 0},
		{name: "fraction", current: "1", target: "3", want: 33.3333333333333333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kr := &KeyResult{
				Current: decimal.RequireFromString(tt.current),
				Target:  decimal.RequireFromString(tt.target),
			}
			got := kr.ProgressPercentage()
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKeyResult_ProgressStatus(t *testing.T) {
	tests := []struct {
		current int64
		want    ProgressStatus
	}{
		{current: 100, want: ProgressStatusCompleted},
		{current: 80, want: ProgressStatusOnTrack},
		{current: 75, want: ProgressStatusOnTrack},
		{current: 50, want: ProgressStatusAtRisk},
		{current: 49, want: ProgressStatusBehind},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			kr := newTestKeyResult(t, 100)
			kr.Current = decimal.NewFromInt(tt.current)
			if got := kr.ProgressStatus(); got != tt.want {
				t.Errorf("current %d: expected %s, got %s", tt.current, tt.want, got)
			}
		})
	}
}

func TestKeyResult_IsAtRisk(t *testing.T) {
	kr := newTestKeyResult(t, 100)
	kr.Current = decimal.NewFromInt(49)
	if !kr.IsAtRisk() {
		t.Error("expected active key result below 50% to be at risk")
	}

	kr.Current = decimal.NewFromInt(50)
	if kr.IsAtRisk() {
		t.Error("expected key result at 50% not to be at risk")
	}

	kr.Current = decimal.NewFromInt(10)
	kr.Status = KeyResultStatusBlocked
	if kr.IsAtRisk() {
		t.Error("expected non-active key result not to be at risk")
	}
}

func TestKeyResult_Milestones(t *testing.T) {
	kr := newTestKeyResult(t, 100)

	kr.AddMilestone("late", decimal.NewFromInt(75), nil)
	kr.AddMilestone("early", decimal.NewFromInt(25), nil)
	kr.AddMilestone("mid", decimal.NewFromInt(50), nil)
	kr.AddMilestone("mid again", decimal.NewFromInt(50), nil)

	want := []string{"early", "mid", "mid again", "late"}
	for i, m := range kr.Milestones {
		if m.Description != want[i] {
			t.Errorf("milestone %d: expected %s, got %s", i, want[i], m.Description)
		}
	}

	kr.Current = decimal.NewFromInt(50)
	next := kr.NextMilestone()
	if next == nil || next.Description != "late" {
		t.Errorf("expected next milestone late, got %+v", next)
	}

	kr.Current = decimal.NewFromInt(80)
	if next := kr.NextMilestone(); next != nil {
		t.Errorf("expected no next milestone, got %+v", next)
	}
}

func TestKeyResult_RemainingToTarget(t *testing.T) {
	kr := newTestKeyResult(t, 100)
	kr.Current = decimal.NewFromInt(30)
	if got := kr.RemainingToTarget(); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected 70, got %s", got)
	}

	kr.Current = decimal.NewFromInt(130)
	if got := kr.RemainingToTarget(); !got.IsZero() {
		t.Errorf("expected 0, got %s", got)
	}
}

func TestKeyResult_Clone(t *testing.T) {
	kr := newTestKeyResult(t, 100)
	kr.AddMilestone("m", decimal.NewFromInt(10), nil)

	c := kr.Clone()
	c.Assignees[0] = "mallory"
	c.Milestones[0].Description = "changed"

	if kr.Assignees[0] != "alice" {
		t.Error("clone shares assignees with original")
	}
	if kr.Milestones[0].Description != "m" {
		t.Error("clone shares milestones with original")
	}
}

func TestAggregateProgress(t *testing.T) {
	objectiveID := uuid.New()
	kr := func(current, target int64) *KeyResult {
		return &KeyResult{
			ObjectiveID: objectiveID,
			Current:     decimal.NewFromInt(current),
			Target:      decimal.NewFromInt(target),
		}
	}

	tests := []struct {
		name string
		krs  []*KeyResult
		want int
	}{
		{name: "no key results", krs: nil, want: 0},
		{name: "both at fifty", krs: []*KeyResult{kr(50, 100), kr(25, 50)}, want: 50},
		{name: "over target clamped", krs: []*KeyResult{kr(300, 100), kr(0, 100)}, want: 50},
		{name: "zero target contributes zero", krs: []*KeyResult{kr(10, 0), kr(100, 100)}, want: 50},
		{name: "rounds", krs: []*KeyResult{kr(1, 3)}, want: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AggregateProgress(tt.krs); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
