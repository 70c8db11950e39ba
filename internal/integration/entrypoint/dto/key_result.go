package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// CreateKeyResultRequest represents the request body for key result creation.
// Numeric fields accept JSON numbers or numeric strings.
type CreateKeyResultRequest struct {
	ObjectiveID  string      `json:"objectiveId" binding:"required"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Owner        string      `json:"owner"`
	Target       json.Number `json:"target"`
	Unit         string      `json:"unit"`
	Current      json.Number `json:"current"`
	Priority     string      `json:"priority"`
	TrackingType string      `json:"trackingType"`
}

// ProgressRequest represents the request body for a progress report.
type ProgressRequest struct {
	Value *decimal.Decimal `json:"value"`
	Mode  string           `json:"mode"`
}

// MilestoneRequest represents the request body for adding a milestone.
type MilestoneRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
}

// MilestoneResponse represents a milestone in API responses.
type MilestoneResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	Date        *string   `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// KeyResultResponse represents a single key result in API responses.
type KeyResultResponse struct {
	ID             string              `json:"id"`
	ObjectiveID    string              `json:"objectiveId"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Owner          string              `json:"owner"`
	Assignees      []string            `json:"assignees"`
	Target         float64             `json:"target"`
	Current        float64             `json:"current"`
	Unit           string              `json:"unit"`
	Status         string              `json:"status"`
	Priority       string              `json:"priority"`
	TrackingType   string              `json:"trackingType"`
	Progress       int                 `json:"progress"`
	ProgressStatus string              `json:"progressStatus"`
	Milestones     []MilestoneResponse `json:"milestones"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// KeyResultListResponse represents the response for listing key results.
type KeyResultListResponse struct {
	KeyResults []KeyResultResponse `json:"keyResults"`
	Count      int                 `json:"count"`
}

// KeyResultMutationResponse carries a key result with its refreshed objective.
type KeyResultMutationResponse struct {
	KeyResult     KeyResultResponse  `json:"keyResult"`
	Objective     *ObjectiveResponse `json:"objective,omitempty"`
	AppliedFields []string           `json:"appliedFields,omitempty"`
}

// ProgressResponse represents the response for a progress report.
type ProgressResponse struct {
	KeyResult         KeyResultResponse  `json:"keyResult"`
	Objective         *ObjectiveResponse `json:"objective,omitempty"`
	PreviousCurrent   float64            `json:"previousCurrent"`
	PreviousProgress  int                `json:"previousProgress"`
	BecameCompleted   bool               `json:"becameCompleted"`
	ObjectiveProgress int                `json:"objectiveProgress"`
}

// KeyResultStatsResponse represents the statistics of a key result.
type KeyResultStatsResponse struct {
	KeyResult          KeyResultResponse  `json:"keyResult"`
	Objective          *ObjectiveResponse `json:"objective,omitempty"`
	ProgressPercentage int                `json:"progressPercentage"`
	Status             string             `json:"status"`
	RemainingToTarget  float64            `json:"remainingToTarget"`
	NextMilestone      *MilestoneResponse `json:"nextMilestone"`
}

// ToMilestoneResponse converts a domain Milestone to a MilestoneResponse DTO.
func ToMilestoneResponse(m entity.Milestone) MilestoneResponse {
	response := MilestoneResponse{
		ID:          m.ID.String(),
		Description: m.Description,
		Value:       m.Value.InexactFloat64(),
		CreatedAt:   m.CreatedAt,
	}
	if m.Date != nil {
		dateStr := entity.FormatDueDate(m.Date)
		response.Date = &dateStr
	}
	return response
}

// ToKeyResultResponse converts a domain KeyResult entity to a KeyResultResponse DTO.
func ToKeyResultResponse(kr *entity.KeyResult) KeyResultResponse {
	milestones := make([]MilestoneResponse, len(kr.Milestones))
	for i, m := range kr.Milestones {
		milestones[i] = ToMilestoneResponse(m)
	}

	return KeyResultResponse{
		ID:             kr.ID.String(),
		ObjectiveID:    kr.ObjectiveID.String(),
		Title:          kr.Title,
		Description:    kr.Description,
		Owner:          kr.Owner,
		Assignees:      append([]string{}, kr.Assignees...),
		Target:         kr.Target.InexactFloat64(),
		Current:        kr.Current.InexactFloat64(),
		Unit:           kr.Unit,
		Status:         string(kr.Status),
		Priority:       string(kr.Priority),
		TrackingType:   string(kr.TrackingType),
		Progress:       kr.Progress(),
		ProgressStatus: string(kr.ProgressStatus()),
		Milestones:     milestones,
		CreatedAt:      kr.CreatedAt,
		UpdatedAt:      kr.UpdatedAt,
	}
}

// ToKeyResultListResponse converts a list of key results to a KeyResultListResponse.
func ToKeyResultListResponse(keyResults []*entity.KeyResult) KeyResultListResponse {
	items := make([]KeyResultResponse, len(keyResults))
	for i, kr := range keyResults {
		items[i] = ToKeyResultResponse(kr)
	}
	return KeyResultListResponse{
		KeyResults: items,
		Count:      len(items),
	}
}

// ToKeyResultMutationResponse pairs a key result with its (optional) objective.
func ToKeyResultMutationResponse(kr *entity.KeyResult, o *entity.Objective, applied []string) KeyResultMutationResponse {
	return KeyResultMutationResponse{
		KeyResult:     ToKeyResultResponse(kr),
		Objective:     optionalObjective(o),
		AppliedFields: applied,
	}
}

// ToProgressResponse converts a progress update output to a ProgressResponse DTO.
func ToProgressResponse(output *keyresult.UpdateProgressOutput) ProgressResponse {
	response := ProgressResponse{
		KeyResult:        ToKeyResultResponse(output.KeyResult),
		Objective:        optionalObjective(output.Objective),
		PreviousCurrent:  output.PreviousCurrent.InexactFloat64(),
		PreviousProgress: output.PreviousProgress,
		BecameCompleted:  output.BecameCompleted,
	}
	if output.Objective != nil {
		response.ObjectiveProgress = output.Objective.Progress
	}
	return response
}

// ToKeyResultStatsResponse converts key result statistics to a response DTO.
func ToKeyResultStatsResponse(output *keyresult.GetKeyResultStatsOutput) KeyResultStatsResponse {
	response := KeyResultStatsResponse{
		KeyResult:          ToKeyResultResponse(output.KeyResult),
		Objective:          optionalObjective(output.Objective),
		ProgressPercentage: output.ProgressPercentage,
		Status:             string(output.Status),
		RemainingToTarget:  output.RemainingToTarget.InexactFloat64(),
	}
	if output.NextMilestone != nil {
		m := ToMilestoneResponse(*output.NextMilestone)
		response.NextMilestone = &m
	}
	return response
}

func optionalObjective(o *entity.Objective) *ObjectiveResponse {
	if o == nil {
		return nil
	}
	response := ToObjectiveResponse(o)
	return &response
}
