package search

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
	"github.com/okr-bot/backend/internal/integration/persistence/memory"
)

func TestSearchUseCase(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()

	o, _ := entity.NewObjective("Improve Onboarding", "make signup faster", "alice", nil)
	_, _ = storage.SaveObjective(ctx, o)
	kr, _ := entity.NewKeyResult(o.ID, "Reduce signup time", "onboarding funnel", "alice", decimal.NewFromInt(60), "seconds")
	_, _ = storage.SaveKeyResult(ctx, kr)

	uc := NewSearchUseCase(storage)

	tests := []struct {
		name           string
		input          SearchInput
		wantObjectives int
		wantKeyResults int
	}{
		{name: "all scopes", input: SearchInput{Query: "ONBOARDING"}, wantObjectives: 1, wantKeyResults: 1},
		{name: "objectives only", input: SearchInput{Query: "signup", Scope: "objectives"}, wantObjectives: 1},
		{name: "key results only", input: SearchInput{Query: "signup", Scope: "keyresults"}, wantKeyResults: 1},
		{name: "no match", input: SearchInput{Query: "revenue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out.Objectives) != tt.wantObjectives || len(out.KeyResults) != tt.wantKeyResults {
				t.Errorf("got %d objectives and %d key results, want %d and %d",
					len(out.Objectives), len(out.KeyResults), tt.wantObjectives, tt.wantKeyResults)
			}
		})
	}

	if _, err := uc.Execute(ctx, SearchInput{Query: "  "}); !domainerror.IsValidation(err) {
		t.Errorf("expected validation error for blank query, got %v", err)
	}
	if _, err := uc.Execute(ctx, SearchInput{Query: "x", Scope: "users"}); !domainerror.IsValidation(err) {
		t.Errorf("expected validation error for bad scope, got %v", err)
	}
}
