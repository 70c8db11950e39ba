package report

import (
	"context"
	"fmt"
	"time"

	"github.com/okr-bot/backend/internal/application/adapter"
)

// OverallReportInput represents the input for the overall report.
type OverallReportInput struct {
	Filter Filter
}

// OverallReportOutput represents the overall report.
// When no objective matches, Empty is set, Message explains why and Summary is nil.
type OverallReportOutput struct {
	GeneratedAt     time.Time        `json:"generatedAt"`
	Filter          Filter           `json:"filters"`
	Empty           bool             `json:"empty"`
	Message         string           `json:"message,omitempty"`
	Summary         *Summary         `json:"summary"`
	Details         []BreakdownEntry `json:"details"`
	Recommendations []Recommendation `json:"recommendations"`
}

// GenerateOverallReportUseCase builds the team-wide report from the current storage state.
type GenerateOverallReportUseCase struct {
	storage adapter.OKRStorage
	clock   adapter.Clock
}

// NewGenerateOverallReportUseCase creates a new GenerateOverallReportUseCase instance.
func NewGenerateOverallReportUseCase(storage adapter.OKRStorage, clock adapter.Clock) *GenerateOverallReportUseCase {
	return &GenerateOverallReportUseCase{
		storage: storage,
		clock:   clock,
	}
}

// Execute generates the report.
func (uc *GenerateOverallReportUseCase) Execute(ctx context.Context, input OverallReportInput) (*OverallReportOutput, error) {
	now := uc.clock.Now()

	objectives, err := uc.storage.ListObjectives(ctx, input.Filter.objectiveFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}

	if len(objectives) == 0 {
		return &OverallReportOutput{
			GeneratedAt:     now,
			Filter:          input.Filter,
			Empty:           true,
			Message:         EmptyReportMessage,
			Details:         []BreakdownEntry{},
			Recommendations: []Recommendation{},
		}, nil
	}

	keyResults, err := uc.storage.ListKeyResults(ctx, input.Filter.keyResultFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list key results: %w", err)
	}

	progress := make(map[string]int, len(objectives))
	for _, o := range objectives {
		p, err := uc.storage.ObjectiveProgress(ctx, o.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute objective progress: %w", err)
		}
		progress[o.ID.String()] = p
	}

	summary := Summarize(objectives, keyResults)

	return &OverallReportOutput{
		GeneratedAt:     now,
		Filter:          input.Filter,
		Summary:         &summary,
		Details:         breakdown(objectives, keyResults, progress, now),
		Recommendations: Recommendations(summary, objectives, now),
	}, nil
}
