package dto

import (
	"time"

	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// CreateObjectiveRequest represents the request body for objective creation.
// Owner defaults to the caller identity.
type CreateObjectiveRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

// AssigneeRequest represents the request body for assignee changes.
type AssigneeRequest struct {
	User string `json:"user" binding:"required"`
}

// StatusRequest represents the request body for status changes.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ObjectiveResponse represents a single objective in API responses.
type ObjectiveResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Assignees   []string  `json:"assignees"`
	DueDate     *string   `json:"dueDate"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ObjectiveListResponse represents the response for listing objectives.
type ObjectiveListResponse struct {
	Objectives []ObjectiveResponse `json:"objectives"`
	Count      int                 `json:"count"`
}

// UpdateObjectiveResponse represents the response for objective updates.
type UpdateObjectiveResponse struct {
	Objective     ObjectiveResponse `json:"objective"`
	AppliedFields []string          `json:"appliedFields"`
}

// DeleteObjectiveResponse represents the response for objective deletion.
type DeleteObjectiveResponse struct {
	ID                string `json:"id"`
	DeletedKeyResults int    `json:"deletedKeyResults"`
}

// AssigneeResponse represents the response for assignee changes.
type AssigneeResponse struct {
	Objective ObjectiveResponse `json:"objective"`
	Changed   bool              `json:"changed"`
}

// ObjectiveStatsResponse represents the statistics of an objective.
type ObjectiveStatsResponse struct {
	Objective           ObjectiveResponse   `json:"objective"`
	KeyResults          []KeyResultResponse `json:"keyResults"`
	KeyResultsCount     int                 `json:"keyResultsCount"`
	CompletedKeyResults int                 `json:"completedKeyResults"`
	Progress            int                 `json:"progress"`
	IsOverdue           bool                `json:"isOverdue"`
	DaysUntilDue        *int                `json:"daysUntilDue"`
}

// ToObjectiveResponse converts a domain Objective entity to an ObjectiveResponse DTO.
func ToObjectiveResponse(o *entity.Objective) ObjectiveResponse {
	response := ObjectiveResponse{
		ID:          o.ID.String(),
		Title:       o.Title,
		Description: o.Description,
		Owner:       o.Owner,
		Assignees:   append([]string{}, o.Assignees...),
		Status:      string(o.Status),
		Progress:    o.Progress,
		Priority:    string(o.Priority),
		Category:    o.Category,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}

	if o.DueDate != nil {
		dateStr := entity.FormatDueDate(o.DueDate)
		response.DueDate = &dateStr
	}

	return response
}

// ToObjectiveListResponse converts a list of objectives to an ObjectiveListResponse.
func ToObjectiveListResponse(objectives []*entity.Objective) ObjectiveListResponse {
	items := make([]ObjectiveResponse, len(objectives))
	for i, o := range objectives {
		items[i] = ToObjectiveResponse(o)
	}
	return ObjectiveListResponse{
		Objectives: items,
		Count:      len(items),
	}
}

// ToObjectiveStatsResponse converts objective statistics to a response DTO.
func ToObjectiveStatsResponse(output *objective.GetObjectiveStatsOutput) ObjectiveStatsResponse {
	return ObjectiveStatsResponse{
		Objective:           ToObjectiveResponse(output.Objective),
		KeyResults:          ToKeyResultListResponse(output.KeyResults).KeyResults,
		KeyResultsCount:     output.KeyResultsCount,
		CompletedKeyResults: output.CompletedKeyResults,
		Progress:            output.Progress,
		IsOverdue:           output.IsOverdue,
		DaysUntilDue:        output.DaysUntilDue,
	}
}
