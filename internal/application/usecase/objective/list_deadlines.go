package objective

import (
	"context"
	"fmt"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// DefaultUpcomingDays is the look-ahead window for upcoming deadlines.
const DefaultUpcomingDays = 7

// ListDeadlinesInput represents the input for deadline queries.
type ListDeadlinesInput struct {
	Owner string // Optional, owner or assignee
	Days  int    // Upcoming only, defaults to DefaultUpcomingDays
}

// ListDeadlinesOutput represents the objectives matching a deadline query.
type ListDeadlinesOutput struct {
	Objectives []*entity.Objective
}

// ListOverdueObjectivesUseCase lists active objectives past their due date.
type ListOverdueObjectivesUseCase struct {
	storage adapter.OKRStorage
	clock   adapter.Clock
}

// NewListOverdueObjectivesUseCase creates a new ListOverdueObjectivesUseCase instance.
func NewListOverdueObjectivesUseCase(storage adapter.OKRStorage, clock adapter.Clock) *ListOverdueObjectivesUseCase {
	return &ListOverdueObjectivesUseCase{
		storage: storage,
		clock:   clock,
	}
}

// Execute performs the overdue listing.
func (uc *ListOverdueObjectivesUseCase) Execute(ctx context.Context, input ListDeadlinesInput) (*ListDeadlinesOutput, error) {
	objectives, err := listActive(ctx, uc.storage, input.Owner)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	overdue := make([]*entity.Objective, 0)
	for _, o := range objectives {
		if o.IsOverdue(now) {
			overdue = append(overdue, o)
		}
	}

	return &ListDeadlinesOutput{
		Objectives: overdue,
	}, nil
}

// ListUpcomingDeadlinesUseCase lists active objectives due within a number of days.
type ListUpcomingDeadlinesUseCase struct {
	storage adapter.OKRStorage
	clock   adapter.Clock
}

// NewListUpcomingDeadlinesUseCase creates a new ListUpcomingDeadlinesUseCase instance.
func NewListUpcomingDeadlinesUseCase(storage adapter.OKRStorage, clock adapter.Clock) *ListUpcomingDeadlinesUseCase {
	return &ListUpcomingDeadlinesUseCase{
		storage: storage,
		clock:   clock,
	}
}

// Execute performs the upcoming deadline listing.
func (uc *ListUpcomingDeadlinesUseCase) Execute(ctx context.Context, input ListDeadlinesInput) (*ListDeadlinesOutput, error) {
	days := input.Days
	if days == 0 {
		days = DefaultUpcomingDays
	}
	if days < 0 {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidDays, "days must be a positive number")
	}

	objectives, err := listActive(ctx, uc.storage, input.Owner)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	upcoming := make([]*entity.Objective, 0)
	for _, o := range objectives {
		if o.IsDueWithin(now, days) {
			upcoming = append(upcoming, o)
		}
	}

	return &ListDeadlinesOutput{
		Objectives: upcoming,
	}, nil
}

func listActive(ctx context.Context, storage adapter.OKRStorage, owner string) ([]*entity.Objective, error) {
	active := entity.ObjectiveStatusActive
	objectives, err := storage.ListObjectives(ctx, entity.ObjectiveFilter{Status: &active, Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	return objectives, nil
}
