package entity

import (
	"strings"

	"github.com/google/uuid"
)

// ObjectiveFilter selects objectives. Zero-valued fields impose no constraint.
type ObjectiveFilter struct {
	Status   *ObjectiveStatus
	Owner    string
	Category string
}

// Matches reports whether o satisfies the filter. Owner matches the owner or any assignee.
func (f ObjectiveFilter) Matches(o *Objective) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.Owner != "" && !o.IsAssigned(f.Owner) {
		return false
	}
	if f.Category != "" && o.Category != f.Category {
		return false
	}
	return true
}

// KeyResultFilter selects key results. Zero-valued fields impose no constraint.
type KeyResultFilter struct {
	Status      *KeyResultStatus
	Owner       string
	ObjectiveID *uuid.UUID
}

// Matches reports whether kr satisfies the filter.
func (f KeyResultFilter) Matches(kr *KeyResult) bool {
	if f.Status != nil && kr.Status != *f.Status {
		return false
	}
	if f.Owner != "" && !kr.IsAssigned(f.Owner) {
		return false
	}
	if f.ObjectiveID != nil && kr.ObjectiveID != *f.ObjectiveID {
		return false
	}
	return true
}

// SearchScope limits which entity types a search visits.
type SearchScope string

const (
	SearchScopeObjectives SearchScope = "objectives"
	SearchScopeKeyResults SearchScope = "keyresults"
	SearchScopeAll        SearchScope = "all"
)

// ParseSearchScope converts a raw scope. An empty scope means all.
func ParseSearchScope(raw string) (SearchScope, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return SearchScopeAll, true
	case "objectives", "objective":
		return SearchScopeObjectives, true
	case "keyresults", "keyresult", "key-results", "key_results", "krs":
		return SearchScopeKeyResults, true
	default:
		return "", false
	}
}

// IncludesObjectives reports whether the scope covers objectives.
func (s SearchScope) IncludesObjectives() bool {
	return s == SearchScopeObjectives || s == SearchScopeAll
}

// IncludesKeyResults reports whether the scope covers key results.
func (s SearchScope) IncludesKeyResults() bool {
	return s == SearchScopeKeyResults || s == SearchScopeAll
}

// SearchResult holds the matches of a search.
type SearchResult struct {
	Objectives []*Objective
	KeyResults []*KeyResult
}

// MatchesQuery reports a case-insensitive substring match against title or description.
func MatchesQuery(query, title, description string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(title), q) ||
		strings.Contains(strings.ToLower(description), q)
}
