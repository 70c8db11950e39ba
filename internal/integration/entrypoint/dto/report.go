package dto

import (
	"time"

	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/application/usecase/search"
)

// TeamReportResponse represents a report scoped to one owner.
type TeamReportResponse struct {
	Owner             string              `json:"owner"`
	GeneratedAt       time.Time           `json:"generatedAt"`
	Summary           report.Summary      `json:"summary"`
	Objectives        []ObjectiveResponse `json:"objectives"`
	KeyResults        []KeyResultResponse `json:"keyResults"`
	UpcomingDeadlines []ObjectiveResponse `json:"upcomingDeadlines"`
	AtRiskItems       []KeyResultResponse `json:"atRiskItems"`
}

// SearchResponse represents search matches.
type SearchResponse struct {
	Query      string              `json:"query"`
	Scope      string              `json:"scope"`
	Objectives []ObjectiveResponse `json:"objectives"`
	KeyResults []KeyResultResponse `json:"keyResults"`
	Total      int                 `json:"total"`
}

// ToTeamReportResponse converts a team report to a TeamReportResponse DTO.
func ToTeamReportResponse(output *report.TeamReportOutput) TeamReportResponse {
	return TeamReportResponse{
		Owner:             output.Owner,
		GeneratedAt:       output.GeneratedAt,
		Summary:           output.Summary,
		Objectives:        ToObjectiveListResponse(output.Objectives).Objectives,
		KeyResults:        ToKeyResultListResponse(output.KeyResults).KeyResults,
		UpcomingDeadlines: ToObjectiveListResponse(output.UpcomingDeadlines).Objectives,
		AtRiskItems:       ToKeyResultListResponse(output.AtRiskItems).KeyResults,
	}
}

// ToSearchResponse converts search matches to a SearchResponse DTO.
func ToSearchResponse(output *search.SearchOutput) SearchResponse {
	return SearchResponse{
		Query:      output.Query,
		Scope:      string(output.Scope),
		Objectives: ToObjectiveListResponse(output.Objectives).Objectives,
		KeyResults: ToKeyResultListResponse(output.KeyResults).KeyResults,
		Total:      len(output.Objectives) + len(output.KeyResults),
	}
}
