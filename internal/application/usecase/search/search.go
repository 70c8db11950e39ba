// Package search contains the objective and key result search use case.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// SearchInput represents a search request.
type SearchInput struct {
	Query string
	Scope string // objectives, keyresults or all; defaults to all
}

// SearchOutput represents the search matches.
type SearchOutput struct {
	Query      string
	Scope      entity.SearchScope
	Objectives []*entity.Objective
	KeyResults []*entity.KeyResult
}

// SearchUseCase performs case-insensitive substring search over titles and descriptions.
type SearchUseCase struct {
	storage adapter.OKRStorage
}

// NewSearchUseCase creates a new SearchUseCase instance.
func NewSearchUseCase(storage adapter.OKRStorage) *SearchUseCase {
	return &SearchUseCase{
		storage: storage,
	}
}

// Execute performs the search.
func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeMissingSearchQuery, "search query is required")
	}

	scope, ok := entity.ParseSearchScope(input.Scope)
	if !ok {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidSearchScope,
			"invalid scope, valid options: objectives, keyresults, all",
		)
	}

	result, err := uc.storage.Search(ctx, query, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	return &SearchOutput{
		Query:      query,
		Scope:      scope,
		Objectives: result.Objectives,
		KeyResults: result.KeyResults,
	}, nil
}
