package keyresult

import (
	"context"
	"fmt"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// ListKeyResultsInput represents the input for listing key results.
type ListKeyResultsInput struct {
	Filter entity.KeyResultFilter
}

// ListKeyResultsOutput represents the output of listing key results.
type ListKeyResultsOutput struct {
	KeyResults []*entity.KeyResult
}

// ListKeyResultsUseCase handles listing key results.
type ListKeyResultsUseCase struct {
	storage adapter.OKRStorage
}

// NewListKeyResultsUseCase creates a new ListKeyResultsUseCase instance.
func NewListKeyResultsUseCase(storage adapter.OKRStorage) *ListKeyResultsUseCase {
	return &ListKeyResultsUseCase{
		storage: storage,
	}
}

// Execute performs the key result listing.
func (uc *ListKeyResultsUseCase) Execute(ctx context.Context, input ListKeyResultsInput) (*ListKeyResultsOutput, error) {
	keyResults, err := uc.storage.ListKeyResults(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list key results: %w", err)
	}

	return &ListKeyResultsOutput{
		KeyResults: keyResults,
	}, nil
}

// ListAtRiskKeyResultsInput represents the input for the at-risk query.
type ListAtRiskKeyResultsInput struct {
	Owner string // Optional, owner or assignee
}

// ListAtRiskKeyResultsUseCase lists active key results below the at-risk threshold.
type ListAtRiskKeyResultsUseCase struct {
	storage adapter.OKRStorage
}

// NewListAtRiskKeyResultsUseCase creates a new ListAtRiskKeyResultsUseCase instance.
func NewListAtRiskKeyResultsUseCase(storage adapter.OKRStorage) *ListAtRiskKeyResultsUseCase {
	return &ListAtRiskKeyResultsUseCase{
		storage: storage,
	}
}

// Execute performs the at-risk listing.
func (uc *ListAtRiskKeyResultsUseCase) Execute(ctx context.Context, input ListAtRiskKeyResultsInput) (*ListKeyResultsOutput, error) {
	active := entity.KeyResultStatusActive
	keyResults, err := uc.storage.ListKeyResults(ctx, entity.KeyResultFilter{Status: &active, Owner: input.Owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list key results: %w", err)
	}

	atRisk := make([]*entity.KeyResult, 0)
	for _, kr := range keyResults {
		if kr.IsAtRisk() {
			atRisk = append(atRisk, kr)
		}
	}

	return &ListKeyResultsOutput{
		KeyResults: atRisk,
	}, nil
}

// ListCompletedKeyResultsInput represents the input for the completed query.
type ListCompletedKeyResultsInput struct {
	Owner string // Optional, owner or assignee
}

// ListCompletedKeyResultsUseCase lists completed key results.
type ListCompletedKeyResultsUseCase struct {
	storage adapter.OKRStorage
}

// NewListCompletedKeyResultsUseCase creates a new ListCompletedKeyResultsUseCase instance.
func NewListCompletedKeyResultsUseCase(storage adapter.OKRStorage) *ListCompletedKeyResultsUseCase {
	return &ListCompletedKeyResultsUseCase{
		storage: storage,
	}
}

// Execute performs the completed listing.
func (uc *ListCompletedKeyResultsUseCase) Execute(ctx context.Context, input ListCompletedKeyResultsInput) (*ListKeyResultsOutput, error) {
	completed := entity.KeyResultStatusCompleted
	keyResults, err := uc.storage.ListKeyResults(ctx, entity.KeyResultFilter{Status: &completed, Owner: input.Owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list key results: %w", err)
	}

	return &ListKeyResultsOutput{
		KeyResults: keyResults,
	}, nil
}
