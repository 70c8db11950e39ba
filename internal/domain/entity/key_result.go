package entity

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// AtRiskThreshold is the progress percentage below which an active key result is at risk.
const AtRiskThreshold = 50

var hundred = decimal.NewFromInt(100)

// Milestone is an intermediate checkpoint on the way to a key result target.
type Milestone struct {
	ID          uuid.UUID
	Description string
	Value       decimal.Decimal
	Date        *time.Time
	CreatedAt   time.Time
}

// KeyResult represents a measurable outcome that belongs to exactly one objective.
type KeyResult struct {
	ID           uuid.UUID
	ObjectiveID  uuid.UUID
	Title        string
	Description  string
	Owner        string
	Assignees    []string
	Target       decimal.Decimal
	Current      decimal.Decimal
	Unit         string
	Status       KeyResultStatus
	Priority     Priority
	TrackingType TrackingType
	Milestones   []Milestone
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewKeyResult creates a new active KeyResult starting at zero.
func NewKeyResult(objectiveID uuid.UUID, title, description, owner string, target decimal.Decimal, unit string) (*KeyResult, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	owner = NormalizeUser(owner)

	if err := ValidateTitle(title, domainerror.ErrCodeMissingKeyResultTitle, domainerror.ErrCodeKeyResultTitleTooLong); err != nil {
		return nil, err
	}
	if err := ValidateDescription(description, domainerror.ErrCodeKeyResultDescriptionTooLong); err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeMissingKeyResultOwner, "owner is required")
	}
	if !target.IsPositive() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidTarget, "target must be greater than 0")
	}
	unit, err := NormalizeUnit(unit)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &KeyResult{
		ID:           uuid.New(),
		ObjectiveID:  objectiveID,
		Title:        title,
		Description:  description,
		Owner:        owner,
		Assignees:    []string{owner},
		Target:       target,
		Current:      decimal.Zero,
		Unit:         unit,
		Status:       KeyResultStatusActive,
		Priority:     PriorityMedium,
		TrackingType: TrackingTypeIncrease,
		Milestones:   []Milestone{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ParseTarget parses a raw target value, which must be a positive number.
func ParseTarget(raw string) (decimal.Decimal, error) {
	target, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domainerror.NewValidationError(domainerror.ErrCodeInvalidTarget, "target must be a valid number")
	}
	if !target.IsPositive() {
		return decimal.Zero, domainerror.NewValidationError(domainerror.ErrCodeInvalidTarget, "target must be greater than 0")
	}
	return target, nil
}

// ParseValue parses a raw progress or milestone value.
func ParseValue(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domainerror.NewValidationError(domainerror.ErrCodeInvalidProgressValue, "value must be a valid number")
	}
	return value, nil
}

// NormalizeUnit trims the unit and applies the default.
func NormalizeUnit(unit string) (string, error) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return DefaultUnit, nil
	}
	if utf8.RuneCountInString(unit) > MaxUnitLength {
		return "", domainerror.NewValidationError(domainerror.ErrCodeInvalidUnit, "unit must be 20 characters or less")
	}
	return unit, nil
}

// UpdateProgress applies a progress value according to mode.
// An active key result whose current reaches its target becomes completed.
// Completion is never reverted by a later decrease.
func (kr *KeyResult) UpdateProgress(value decimal.Decimal, mode ProgressMode) error {
	switch mode {
	case ProgressModeAbsolute:
		kr.Current = decimal.Max(decimal.Zero, value)
	case ProgressModePercentage:
		pct := decimal.Min(decimal.Max(value, decimal.Zero), hundred)
		kr.Current = pct.Div(hundred).Mul(kr.Target)
	case ProgressModeIncrement:
		kr.Current = decimal.Max(decimal.Zero, kr.Current.Add(value))
	default:
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidProgressMode, "progress mode must be absolute, percentage or increment")
	}

	if kr.Status == KeyResultStatusActive && kr.Current.GreaterThanOrEqual(kr.Target) {
		kr.Status = KeyResultStatusCompleted
	}
	kr.touch()
	return nil
}

// ProgressPercentage returns current/target as a percentage clamped to [0, 100].
// A non-positive target yields 0.
func (kr *KeyResult) ProgressPercentage() float64 {
	if !kr.Target.IsPositive() {
		return 0
	}
	pct := kr.Current.Div(kr.Target).Mul(hundred)
	pct = decimal.Min(decimal.Max(pct, decimal.Zero), hundred)
	return pct.InexactFloat64()
}

// Progress returns the rounded progress percentage.
func (kr *KeyResult) Progress() int {
	return roundPercent(kr.ProgressPercentage())
}

// ProgressStatus classifies the key result by its progress percentage.
func (kr *KeyResult) ProgressStatus() ProgressStatus {
	return ClassifyProgress(kr.ProgressPercentage())
}

// IsAtRisk reports whether an active key result is below the at-risk threshold.
func (kr *KeyResult) IsAtRisk() bool {
	return kr.Status == KeyResultStatusActive && kr.ProgressPercentage() < AtRiskThreshold
}

// RemainingToTarget returns how much is left to reach the target, never negative.
func (kr *KeyResult) RemainingToTarget() decimal.Decimal {
	return decimal.Max(decimal.Zero, kr.Target.Sub(kr.Current))
}

// NextMilestone returns the first milestone whose value exceeds current, or nil.
func (kr *KeyResult) NextMilestone() *Milestone {
	for i := range kr.Milestones {
		if kr.Milestones[i].Value.GreaterThan(kr.Current) {
			m := kr.Milestones[i]
			return &m
		}
	}
	return nil
}

// AddMilestone appends a milestone and keeps the list ordered by value.
// Duplicate values and values beyond the target are accepted.
func (kr *KeyResult) AddMilestone(description string, value decimal.Decimal, date *time.Time) Milestone {
	now := time.Now().UTC()
	m := Milestone{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Value:       value,
		Date:        date,
		CreatedAt:   now,
	}
	kr.Milestones = append(kr.Milestones, m)
	SortMilestones(kr.Milestones)
	kr.touch()
	return m
}

// SortMilestones orders milestones ascending by value, keeping insertion order for ties.
func SortMilestones(milestones []Milestone) {
	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].Value.LessThan(milestones[j].Value)
	})
}

// SetStatus changes the status. It returns false for unknown statuses.
func (kr *KeyResult) SetStatus(status KeyResultStatus) bool {
	if !status.IsValid() {
		return false
	}
	kr.Status = status
	kr.touch()
	return true
}

// AddAssignee adds user to the assignee set.
func (kr *KeyResult) AddAssignee(user string) bool {
	user = NormalizeUser(user)
	if user == "" {
		return false
	}
	var added bool
	kr.Assignees, added = addToSet(kr.Assignees, user)
	if added {
		kr.touch()
	}
	return added
}

// RemoveAssignee removes user from the assignee set.
func (kr *KeyResult) RemoveAssignee(user string) bool {
	var removed bool
	kr.Assignees, removed = removeFromSet(kr.Assignees, NormalizeUser(user))
	if removed {
		kr.touch()
	}
	return removed
}

// IsAssigned reports whether user owns or is assigned to the key result.
func (kr *KeyResult) IsAssigned(user string) bool {
	user = NormalizeUser(user)
	return kr.Owner == user || containsUser(kr.Assignees, user)
}

// Clone returns a deep copy of the key result.
func (kr *KeyResult) Clone() *KeyResult {
	if kr == nil {
		return nil
	}
	c := *kr
	c.Assignees = append([]string(nil), kr.Assignees...)
	c.Milestones = make([]Milestone, len(kr.Milestones))
	for i, m := range kr.Milestones {
		if m.Date != nil {
			d := *m.Date
			m.Date = &d
		}
		c.Milestones[i] = m
	}
	return &c
}

func (kr *KeyResult) touch() {
	kr.UpdatedAt = time.Now().UTC()
}
