// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/domain/entity"
)

// OKRStorage defines persistence for objectives and key results.
//
// Lookups by ID return (nil, nil) when the record does not exist; converting
// that into a not-found error is the caller's job. List results follow
// insertion order on a best-effort basis.
type OKRStorage interface {
	// SaveObjective inserts or overwrites an objective by ID and returns the stored value.
	SaveObjective(ctx context.Context, objective *entity.Objective) (*entity.Objective, error)

	// GetObjective retrieves an objective by its ID.
	GetObjective(ctx context.Context, id uuid.UUID) (*entity.Objective, error)

	// ListObjectives retrieves every objective matching the filter.
	ListObjectives(ctx context.Context, filter entity.ObjectiveFilter) ([]*entity.Objective, error)

	// UpdateObjective merges the update into an existing objective and returns the result.
	UpdateObjective(ctx context.Context, id uuid.UUID, update entity.ObjectiveUpdate) (*entity.Objective, error)

	// DeleteObjective removes an objective together with all of its key results.
	DeleteObjective(ctx context.Context, id uuid.UUID) (bool, error)

	// SaveKeyResult inserts or overwrites a key result by ID and returns the stored value.
	SaveKeyResult(ctx context.Context, keyResult *entity.KeyResult) (*entity.KeyResult, error)

	// GetKeyResult retrieves a key result by its ID.
	GetKeyResult(ctx context.Context, id uuid.UUID) (*entity.KeyResult, error)

	// ListKeyResults retrieves every key result matching the filter.
	ListKeyResults(ctx context.Context, filter entity.KeyResultFilter) ([]*entity.KeyResult, error)

	// UpdateKeyResult merges the update into an existing key result and returns the result.
	UpdateKeyResult(ctx context.Context, id uuid.UUID, update entity.KeyResultUpdate) (*entity.KeyResult, error)

	// DeleteKeyResult removes a key result.
	DeleteKeyResult(ctx context.Context, id uuid.UUID) (bool, error)

	// ObjectiveProgress computes the objective's progress from its current key results.
	ObjectiveProgress(ctx context.Context, objectiveID uuid.UUID) (int, error)

	// Search matches the query against titles and descriptions within the scope.
	Search(ctx context.Context, query string, scope entity.SearchScope) (*entity.SearchResult, error)
}
