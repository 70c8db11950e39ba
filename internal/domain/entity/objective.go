package entity

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// Objective represents a top-level goal tracked by the team.
// Progress is a cache derived from the objective's key results.
type Objective struct {
	ID          uuid.UUID
	Title       string
	Description string
	Owner       string
	Assignees   []string
	DueDate     *time.Time
	Status      ObjectiveStatus
	Progress    int
	Priority    Priority
	Category    string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewObjective creates a new active Objective owned and assigned to owner.
func NewObjective(title, description, owner string, dueDate *time.Time) (*Objective, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	owner = NormalizeUser(owner)

	if err := ValidateTitle(title, domainerror.ErrCodeMissingObjectiveTitle, domainerror.ErrCodeObjectiveTitleTooLong); err != nil {
		return nil, err
	}
	if err := ValidateDescription(description, domainerror.ErrCodeObjectiveDescriptionTooLong); err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeMissingObjectiveOwner, "owner is required")
	}

	now := time.Now().UTC()

	return &Objective{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Owner:       owner,
		Assignees:   []string{owner},
		DueDate:     dueDate,
		Status:      ObjectiveStatusActive,
		Progress:    0,
		Priority:    PriorityMedium,
		CreatedBy:   owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetStatus changes the status. It returns false and leaves the objective untouched for unknown statuses.
func (o *Objective) SetStatus(status ObjectiveStatus) bool {
	if !status.IsValid() {
		return false
	}
	o.Status = status
	o.touch()
	return true
}

// AddAssignee adds user to the assignee set. Adding an existing assignee is a no-op.
func (o *Objective) AddAssignee(user string) bool {
	user = NormalizeUser(user)
	if user == "" {
		return false
	}
	var added bool
	o.Assignees, added = addToSet(o.Assignees, user)
	if added {
		o.touch()
	}
	return added
}

// RemoveAssignee removes user from the assignee set. Removing an absent user is a no-op.
func (o *Objective) RemoveAssignee(user string) bool {
	var removed bool
	o.Assignees, removed = removeFromSet(o.Assignees, NormalizeUser(user))
	if removed {
		o.touch()
	}
	return removed
}

// IsAssigned reports whether user owns or is assigned to the objective.
func (o *Objective) IsAssigned(user string) bool {
	user = NormalizeUser(user)
	return o.Owner == user || containsUser(o.Assignees, user)
}

// IsOverdue reports whether an active objective is past its due date.
func (o *Objective) IsOverdue(now time.Time) bool {
	return o.Status == ObjectiveStatusActive && o.IsPastDue(now)
}

// IsPastDue reports whether the due date has passed, whatever the status.
func (o *Objective) IsPastDue(now time.Time) bool {
	return o.DueDate != nil && now.After(*o.DueDate)
}

// DaysUntilDue returns the number of whole days left until the due date, rounded up.
// It returns nil when no due date is set.
func (o *Objective) DaysUntilDue(now time.Time) *int {
	if o.DueDate == nil {
		return nil
	}
	days := int(math.Ceil(o.DueDate.Sub(now).Hours() / 24))
	return &days
}

// IsDueWithin reports whether an active objective is due between now and now+days.
func (o *Objective) IsDueWithin(now time.Time, days int) bool {
	if o.DueDate == nil || o.Status != ObjectiveStatusActive {
		return false
	}
	limit := now.AddDate(0, 0, days)
	return !o.DueDate.Before(now) && !o.DueDate.After(limit)
}

// Clone returns a deep copy of the objective.
func (o *Objective) Clone() *Objective {
	if o == nil {
		return nil
	}
	c := *o
	c.Assignees = append([]string(nil), o.Assignees...)
	if o.DueDate != nil {
		due := *o.DueDate
		c.DueDate = &due
	}
	return &c
}

func (o *Objective) touch() {
	o.UpdatedAt = time.Now().UTC()
}

// ObjectiveWithKeyResults pairs an objective with the key results that reference it.
type ObjectiveWithKeyResults struct {
	Objective  *Objective
	KeyResults []*KeyResult
}
