// Package memory implements adapter.OKRStorage on process memory.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// storage keeps objectives and key results in maps with insertion order tracked separately.
// Records are cloned on the way in and out so callers never share state with the store.
type storage struct {
	mu sync.RWMutex

	objectives     map[uuid.UUID]*entity.Objective
	objectiveOrder []uuid.UUID

	keyResults     map[uuid.UUID]*entity.KeyResult
	keyResultOrder []uuid.UUID
}

// NewStorage creates an empty in-memory storage.
func NewStorage() adapter.OKRStorage {
	return &storage{
		objectives: make(map[uuid.UUID]*entity.Objective),
		keyResults: make(map[uuid.UUID]*entity.KeyResult),
	}
}

// SaveObjective inserts or overwrites an objective.
func (s *storage) SaveObjective(_ context.Context, objective *entity.Objective) (*entity.Objective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objectives[objective.ID]; !exists {
		s.objectiveOrder = append(s.objectiveOrder, objective.ID)
	}
	s.objectives[objective.ID] = objective.Clone()
	return objective.Clone(), nil
}

// GetObjective retrieves an objective by its ID.
func (s *storage) GetObjective(_ context.Context, id uuid.UUID) (*entity.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.objectives[id].Clone(), nil
}

// ListObjectives retrieves the objectives matching the filter in insertion order.
func (s *storage) ListObjectives(_ context.Context, filter entity.ObjectiveFilter) ([]*entity.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objectives := make([]*entity.Objective, 0, len(s.objectiveOrder))
	for _, id := range s.objectiveOrder {
		if o := s.objectives[id]; filter.Matches(o) {
			objectives = append(objectives, o.Clone())
		}
	}
	return objectives, nil
}

// UpdateObjective merges the update into an existing objective.
func (s *storage) UpdateObjective(_ context.Context, id uuid.UUID, update entity.ObjectiveUpdate) (*entity.Objective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	objective, ok := s.objectives[id]
	if !ok {
		return nil, nil
	}
	update.ApplyTo(objective)
	return objective.Clone(), nil
}

// DeleteObjective removes an objective and its key results.
func (s *storage) DeleteObjective(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objectives[id]; !ok {
		return false, nil
	}
	delete(s.objectives, id)
	s.objectiveOrder = removeID(s.objectiveOrder, id)

	for krID, kr := range s.keyResults {
		if kr.ObjectiveID == id {
			delete(s.keyResults, krID)
			s.keyResultOrder = removeID(s.keyResultOrder, krID)
		}
	}
	return true, nil
}

// SaveKeyResult inserts or overwrites a key result.
func (s *storage) SaveKeyResult(_ context.Context, keyResult *entity.KeyResult) (*entity.KeyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.keyResults[keyResult.ID]; !exists {
		s.keyResultOrder = append(s.keyResultOrder, keyResult.ID)
	}
	s.keyResults[keyResult.ID] = keyResult.Clone()
	return keyResult.Clone(), nil
}

// GetKeyResult retrieves a key result by its ID.
func (s *storage) GetKeyResult(_ context.Context, id uuid.UUID) (*entity.KeyResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.keyResults[id].Clone(), nil
}

// ListKeyResults retrieves the key results matching the filter in insertion order.
func (s *storage) ListKeyResults(_ context.Context, filter entity.KeyResultFilter) ([]*entity.KeyResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listKeyResults(filter), nil
}

func (s *storage) listKeyResults(filter entity.KeyResultFilter) []*entity.KeyResult {
	keyResults := make([]*entity.KeyResult, 0)
	for _, id := range s.keyResultOrder {
		if kr := s.keyResults[id]; filter.Matches(kr) {
			keyResults = append(keyResults, kr.Clone())
		}
	}
	return keyResults
}

// UpdateKeyResult merges the update into an existing key result.
func (s *storage) UpdateKeyResult(_ context.Context, id uuid.UUID, update entity.KeyResultUpdate) (*entity.KeyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keyResult, ok := s.keyResults[id]
	if !ok {
		return nil, nil
	}
	update.ApplyTo(keyResult)
	return keyResult.Clone(), nil
}

// DeleteKeyResult removes a key result.
func (s *storage) DeleteKeyResult(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keyResults[id]; !ok {
		return false, nil
	}
	delete(s.keyResults, id)
	s.keyResultOrder = removeID(s.keyResultOrder, id)
	return true, nil
}

// ObjectiveProgress computes the objective's progress from its key results on every call.
func (s *storage) ObjectiveProgress(_ context.Context, objectiveID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return entity.AggregateProgress(s.listKeyResults(entity.KeyResultFilter{ObjectiveID: &objectiveID})), nil
}

// Search matches the query case-insensitively against titles and descriptions.
func (s *storage) Search(_ context.Context, query string, scope entity.SearchScope) (*entity.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := &entity.SearchResult{
		Objectives: []*entity.Objective{},
		KeyResults: []*entity.KeyResult{},
	}
	if scope.IncludesObjectives() {
		for _, id := range s.objectiveOrder {
			if o := s.objectives[id]; entity.MatchesQuery(query, o.Title, o.Description) {
				result.Objectives = append(result.Objectives, o.Clone())
			}
		}
	}
	if scope.IncludesKeyResults() {
		for _, id := range s.keyResultOrder {
			if kr := s.keyResults[id]; entity.MatchesQuery(query, kr.Title, kr.Description) {
				result.KeyResults = append(result.KeyResults, kr.Clone())
			}
		}
	}
	return result, nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
