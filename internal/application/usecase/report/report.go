// Package report contains the read-only OKR reporting use cases.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/domain/entity"
)

// EmptyReportMessage is returned instead of a summary when no objective matches.
const EmptyReportMessage = "No objectives found for the specified criteria."

// IdealKeyResultsPerObjective caps the density term of the health score.
const IdealKeyResultsPerObjective = 3

// Filter narrows the entities a report reads. Empty fields impose no constraint.
// Status is matched exactly against both objectives and key results.
type Filter struct {
	Status   string `json:"status,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Category string `json:"category,omitempty"`
}

func (f Filter) objectiveFilter() entity.ObjectiveFilter {
	filter := entity.ObjectiveFilter{
		Owner:    entity.NormalizeUser(f.Owner),
		Category: strings.TrimSpace(f.Category),
	}
	if status := strings.ToLower(strings.TrimSpace(f.Status)); status != "" {
		s := entity.ObjectiveStatus(status)
		filter.Status = &s
	}
	return filter
}

func (f Filter) keyResultFilter() entity.KeyResultFilter {
	filter := entity.KeyResultFilter{
		Owner: entity.NormalizeUser(f.Owner),
	}
	if status := strings.ToLower(strings.TrimSpace(f.Status)); status != "" {
		s := entity.KeyResultStatus(status)
		filter.Status = &s
	}
	return filter
}

// Summary holds the aggregate statistics of a report.
type Summary struct {
	TotalObjectives          int `json:"totalObjectives"`
	ActiveObjectives         int `json:"activeObjectives"`
	CompletedObjectives      int `json:"completedObjectives"`
	ObjectiveCompletionRate  int `json:"objectiveCompletionRate"`
	TotalKeyResults          int `json:"totalKeyResults"`
	ActiveKeyResults         int `json:"activeKeyResults"`
	CompletedKeyResults      int `json:"completedKeyResults"`
	KeyResultCompletionRate  int `json:"keyResultCompletionRate"`
	AverageObjectiveProgress int `json:"averageObjectiveProgress"`
	AverageKeyResultProgress int `json:"averageKeyResultProgress"`
	HealthScore              int `json:"healthScore"`
}

// ObjectiveDetail is the objective part of a breakdown entry.
type ObjectiveDetail struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Owner     string `json:"owner"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	DueDate   string `json:"dueDate"`
	IsOverdue bool   `json:"isOverdue"`
}

// KeyResultDetail is a key result line of a breakdown entry.
type KeyResultDetail struct {
	ID       string                `json:"id"`
	Title    string                `json:"title"`
	Owner    string                `json:"owner"`
	Progress int                   `json:"progress"`
	Current  decimal.Decimal       `json:"current"`
	Target   decimal.Decimal       `json:"target"`
	Unit     string                `json:"unit"`
	Status   entity.ProgressStatus `json:"status"`
}

// BreakdownEntry describes one objective and its key results.
type BreakdownEntry struct {
	Objective           ObjectiveDetail   `json:"objective"`
	KeyResults          []KeyResultDetail `json:"keyResults"`
	KeyResultsCount     int               `json:"keyResultsCount"`
	CompletedKeyResults int               `json:"completedKeyResults"`
	AtRiskKeyResults    int               `json:"atRiskKeyResults"`
}

// RecommendationType classifies a recommendation.
type RecommendationType string

const (
	RecommendationWarning RecommendationType = "warning"
	RecommendationInfo    RecommendationType = "info"
	RecommendationUrgent  RecommendationType = "urgent"
	RecommendationSuccess RecommendationType = "success"
)

// Recommendation is an actionable hint derived from report thresholds.
type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
	Action  string             `json:"action"`
}

// Summarize computes the aggregate statistics over objectives and key results.
// Objective progress is read from the stored field; key result progress is clamped to [0, 100].
func Summarize(objectives []*entity.Objective, keyResults []*entity.KeyResult) Summary {
	var s Summary

	s.TotalObjectives = len(objectives)
	objectiveProgress := 0
	for _, o := range objectives {
		switch o.Status {
		case entity.ObjectiveStatusActive:
			s.ActiveObjectives++
		case entity.ObjectiveStatusCompleted:
			s.CompletedObjectives++
		}
		objectiveProgress += o.Progress
	}

	s.TotalKeyResults = len(keyResults)
	keyResultProgress := 0.0
	for _, kr := range keyResults {
		switch kr.Status {
		case entity.KeyResultStatusActive:
			s.ActiveKeyResults++
		case entity.KeyResultStatusCompleted:
			s.CompletedKeyResults++
		}
		keyResultProgress += kr.ProgressPercentage()
	}

	s.ObjectiveCompletionRate = entity.Percentage(s.CompletedObjectives, s.TotalObjectives)
	s.KeyResultCompletionRate = entity.Percentage(s.CompletedKeyResults, s.TotalKeyResults)
	if s.TotalObjectives > 0 {
		s.AverageObjectiveProgress = int(math.Round(float64(objectiveProgress) / float64(s.TotalObjectives)))
	}
	if s.TotalKeyResults > 0 {
		s.AverageKeyResultProgress = int(math.Round(keyResultProgress / float64(s.TotalKeyResults)))
	}
	s.HealthScore = HealthScore(s.AverageObjectiveProgress, s.AverageKeyResultProgress, s.TotalObjectives, s.TotalKeyResults)

	return s
}

// HealthScore blends progress (70%) with key result density per objective (30%).
// It is 0 when there are no objectives and always within [0, 100].
func HealthScore(objectiveProgress, keyResultProgress, objectiveCount, keyResultCount int) int {
	if objectiveCount == 0 {
		return 0
	}

	blended := float64(objectiveProgress+keyResultProgress) / 2
	density := math.Min(float64(keyResultCount)/float64(objectiveCount)/IdealKeyResultsPerObjective, 1) * 100

	score := blended*0.4 + density*0.3 + blended*0.3
	return int(math.Round(math.Max(0, math.Min(score, 100))))
}

// Recommendations derives the threshold-based hints. Each check is independent.
func Recommendations(summary Summary, objectives []*entity.Objective, now time.Time) []Recommendation {
	recommendations := make([]Recommendation, 0, 4)

	if summary.AverageObjectiveProgress < 30 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationWarning,
			Title:   "Low Overall Progress",
			Message: "Team progress is below 30%. Consider reviewing objectives for feasibility and resources.",
			Action:  "Review objective scope and timeline",
		})
	}

	ratio := float64(summary.TotalKeyResults) / float64(max(summary.TotalObjectives, 1))
	if ratio < 2 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationInfo,
			Title:   "Add More Key Results",
			Message: fmt.Sprintf("Average of %.1f key results per objective. Consider adding 2-4 measurable outcomes per objective.", ratio),
			Action:  "Add more specific, measurable key results",
		})
	}

	overdue := 0
	for _, o := range objectives {
		if o.IsPastDue(now) {
			overdue++
		}
	}
	if overdue > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationUrgent,
			Title:   "Overdue Objectives",
			Message: fmt.Sprintf("%d objectives are past their due date.", overdue),
			Action:  "Review and update timelines or mark as completed",
		})
	}

	if summary.KeyResultCompletionRate > summary.ObjectiveCompletionRate+20 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationSuccess,
			Title:   "Strong Execution",
			Message: "Key result completion rate exceeds objective completion. Great execution!",
			Action:  "Consider marking completed objectives as done",
		})
	}

	return recommendations
}

// breakdown builds one entry per objective using live progress, highest progress first.
func breakdown(objectives []*entity.Objective, keyResults []*entity.KeyResult, progress map[string]int, now time.Time) []BreakdownEntry {
	byObjective := make(map[string][]*entity.KeyResult, len(objectives))
	for _, kr := range keyResults {
		id := kr.ObjectiveID.String()
		byObjective[id] = append(byObjective[id], kr)
	}

	entries := make([]BreakdownEntry, 0, len(objectives))
	for _, o := range objectives {
		id := o.ID.String()
		krs := byObjective[id]

		entry := BreakdownEntry{
			Objective: ObjectiveDetail{
				ID:        id,
				Title:     o.Title,
				Owner:     o.Owner,
				Status:    string(o.Status),
				Progress:  progress[id],
				DueDate:   entity.FormatDueDate(o.DueDate),
				IsOverdue: o.IsPastDue(now),
			},
			KeyResults:      make([]KeyResultDetail, 0, len(krs)),
			KeyResultsCount: len(krs),
		}

		for _, kr := range krs {
			entry.KeyResults = append(entry.KeyResults, KeyResultDetail{
				ID:       kr.ID.String(),
				Title:    kr.Title,
				Owner:    kr.Owner,
				Progress: kr.Progress(),
				Current:  kr.Current,
				Target:   kr.Target,
				Unit:     kr.Unit,
				Status:   kr.ProgressStatus(),
			})
			if kr.Status == entity.KeyResultStatusCompleted {
				entry.CompletedKeyResults++
			}
			if kr.IsAtRisk() {
				entry.AtRiskKeyResults++
			}
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Objective.Progress > entries[j].Objective.Progress
	})
	return entries
}
