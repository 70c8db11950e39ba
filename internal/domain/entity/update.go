package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObjectiveUpdate is a partial update of an objective. Nil fields are left unchanged.
type ObjectiveUpdate struct {
	Title        *string
	Description  *string
	Owner        *string
	DueDate      *time.Time
	ClearDueDate bool
	Status       *ObjectiveStatus
	Priority     *Priority
	Category     *string
	Assignees    []string
	Progress     *int
}

// IsEmpty reports whether the update changes nothing.
func (u ObjectiveUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.Owner == nil &&
		u.DueDate == nil &&
		!u.ClearDueDate &&
		u.Status == nil &&
		u.Priority == nil &&
		u.Category == nil &&
		u.Assignees == nil &&
		u.Progress == nil
}

// ApplyTo merges the update into o and refreshes UpdatedAt.
func (u ObjectiveUpdate) ApplyTo(o *Objective) {
	if u.Title != nil {
		o.Title = *u.Title
	}
	if u.Description != nil {
		o.Description = *u.Description
	}
	if u.Owner != nil {
		o.Owner = *u.Owner
	}
	if u.ClearDueDate {
		o.DueDate = nil
	}
	if u.DueDate != nil {
		due := *u.DueDate
		o.DueDate = &due
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.Priority != nil {
		o.Priority = *u.Priority
	}
	if u.Category != nil {
		o.Category = *u.Category
	}
	if u.Assignees != nil {
		o.Assignees = append([]string(nil), u.Assignees...)
	}
	if u.Progress != nil {
		o.Progress = *u.Progress
	}
	o.touch()
}

// KeyResultUpdate is a partial update of a key result. Nil fields are left unchanged.
type KeyResultUpdate struct {
	Title        *string
	Description  *string
	Owner        *string
	Target       *decimal.Decimal
	Current      *decimal.Decimal
	Unit         *string
	Status       *KeyResultStatus
	Priority     *Priority
	TrackingType *TrackingType
	Assignees    []string
	Milestones   []Milestone
}

// IsEmpty reports whether the update changes nothing.
func (u KeyResultUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.Owner == nil &&
		u.Target == nil &&
		u.Current == nil &&
		u.Unit == nil &&
		u.Status == nil &&
		u.Priority == nil &&
		u.TrackingType == nil &&
		u.Assignees == nil &&
		u.Milestones == nil
}

// ApplyTo merges the update into kr and refreshes UpdatedAt.
// Setting current directly does not trigger auto-completion.
func (u KeyResultUpdate) ApplyTo(kr *KeyResult) {
	if u.Title != nil {
		kr.Title = *u.Title
	}
	if u.Description != nil {
		kr.Description = *u.Description
	}
	if u.Owner != nil {
		kr.Owner = *u.Owner
	}
	if u.Target != nil {
		kr.Target = *u.Target
	}
	if u.Current != nil {
		kr.Current = *u.Current
	}
	if u.Unit != nil {
		kr.Unit = *u.Unit
	}
	if u.Status != nil {
		kr.Status = *u.Status
	}
	if u.Priority != nil {
		kr.Priority = *u.Priority
	}
	if u.TrackingType != nil {
		kr.TrackingType = *u.TrackingType
	}
	if u.Assignees != nil {
		kr.Assignees = append([]string(nil), u.Assignees...)
	}
	if u.Milestones != nil {
		kr.Milestones = append([]Milestone(nil), u.Milestones...)
		SortMilestones(kr.Milestones)
	}
	kr.touch()
}
