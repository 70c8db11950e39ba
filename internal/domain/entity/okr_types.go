package entity

import "strings"

// ObjectiveStatus represents the lifecycle state of an objective.
type ObjectiveStatus string

const (
	ObjectiveStatusActive    ObjectiveStatus = "active"
	ObjectiveStatusCompleted ObjectiveStatus = "completed"
	ObjectiveStatusCancelled ObjectiveStatus = "cancelled"
	ObjectiveStatusDraft     ObjectiveStatus = "draft"
)

// ObjectiveStatuses lists every valid objective status.
var ObjectiveStatuses = []ObjectiveStatus{
	ObjectiveStatusActive,
	ObjectiveStatusCompleted,
	ObjectiveStatusCancelled,
	ObjectiveStatusDraft,
}

// IsValid reports whether s is a known objective status.
func (s ObjectiveStatus) IsValid() bool {
	for _, status := range ObjectiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseObjectiveStatus converts a raw string into an ObjectiveStatus.
func ParseObjectiveStatus(raw string) (ObjectiveStatus, bool) {
	status := ObjectiveStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.IsValid()
}

// KeyResultStatus represents the lifecycle state of a key result.
type KeyResultStatus string

const (
	KeyResultStatusActive    KeyResultStatus = "active"
	KeyResultStatusCompleted KeyResultStatus = "completed"
	KeyResultStatusCancelled KeyResultStatus = "cancelled"
	KeyResultStatusBlocked   KeyResultStatus = "blocked"
)

// KeyResultStatuses lists every valid key result status.
var KeyResultStatuses = []KeyResultStatus{
	KeyResultStatusActive,
	KeyResultStatusCompleted,
	KeyResultStatusCancelled,
	KeyResultStatusBlocked,
}

// IsValid reports whether s is a known key result status.
func (s KeyResultStatus) IsValid() bool {
	for _, status := range KeyResultStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseKeyResultStatus converts a raw string into a KeyResultStatus.
func ParseKeyResultStatus(raw string) (KeyResultStatus, bool) {
	status := KeyResultStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.IsValid()
}

// Priority represents how urgent an objective or key result is.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p == PriorityLow ||
		p == PriorityMedium ||
		p == PriorityHigh ||
		p == PriorityCritical
}

// ParsePriority converts a raw string into a Priority.
func ParsePriority(raw string) (Priority, bool) {
	priority := Priority(strings.ToLower(strings.TrimSpace(raw)))
	return priority, priority.IsValid()
}

// TrackingType is a semantic hint about the desired direction of a key result.
// It does not alter progress computation.
type TrackingType string

const (
	TrackingTypeIncrease TrackingType = "increase"
	TrackingTypeDecrease TrackingType = "decrease"
	TrackingTypeMaintain TrackingType = "maintain"
)

// IsValid reports whether t is a known tracking type.
func (t TrackingType) IsValid() bool {
	return t == TrackingTypeIncrease ||
		t == TrackingTypeDecrease ||
		t == TrackingTypeMaintain
}

// ParseTrackingType converts a raw string into a TrackingType.
func ParseTrackingType(raw string) (TrackingType, bool) {
	trackingType := TrackingType(strings.ToLower(strings.TrimSpace(raw)))
	return trackingType, trackingType.IsValid()
}

// ProgressMode selects how a progress value is interpreted.
type ProgressMode string

const (
	// ProgressModeAbsolute sets current to the given value.
	ProgressModeAbsolute ProgressMode = "absolute"
	// ProgressModePercentage sets current to the given percentage of target.
	ProgressModePercentage ProgressMode = "percentage"
	// ProgressModeIncrement adds the given value to current.
	ProgressModeIncrement ProgressMode = "increment"
)

// ParseProgressMode converts a raw string into a ProgressMode.
// An empty string defaults to absolute.
func ParseProgressMode(raw string) (ProgressMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "absolute", "current":
		return ProgressModeAbsolute, true
	case "percentage", "percent", "progress":
		return ProgressModePercentage, true
	case "increment", "add":
		return ProgressModeIncrement, true
	default:
		return "", false
	}
}

// ProgressStatus classifies a key result by its progress percentage.
type ProgressStatus string

const (
	ProgressStatusCompleted ProgressStatus = "completed"
	ProgressStatusOnTrack   ProgressStatus = "on-track"
	ProgressStatusAtRisk    ProgressStatus = "at-risk"
	ProgressStatusBehind    ProgressStatus = "behind"
)

// ClassifyProgress maps a progress percentage to a ProgressStatus.
func ClassifyProgress(percentage float64) ProgressStatus {
	switch {
	case percentage >= 100:
		return ProgressStatusCompleted
	case percentage >= 75:
		return ProgressStatusOnTrack
	case percentage >= 50:
		return ProgressStatusAtRisk
	default:
		return ProgressStatusBehind
	}
}
