package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// DefaultTimeframe is used when a progress report is requested without one.
const DefaultTimeframe = "30d"

// TrendsUnavailableMessage explains why a progress report carries no trend data.
const TrendsUnavailableMessage = "Progress tracking requires historical data storage"

var timeframePattern = regexp.MustCompile(`^[1-9][0-9]*[dwmy]$`)

// ProgressReportInput represents the input for the progress report.
type ProgressReportInput struct {
	Timeframe string
}

// Trends is a placeholder; no progress history is stored.
type Trends struct {
	Message string `json:"message"`
}

// ProgressReportOutput is a snapshot of active work.
type ProgressReportOutput struct {
	Timeframe       string    `json:"timeframe"`
	GeneratedAt     time.Time `json:"generatedAt"`
	Objectives      int       `json:"objectives"`
	KeyResults      int       `json:"keyResults"`
	AverageProgress int       `json:"avgProgress"`
	Summary         Summary   `json:"summary"`
	Trends          Trends    `json:"trends"`
}

// GenerateProgressReportUseCase reports on active objectives and key results only.
type GenerateProgressReportUseCase struct {
	storage adapter.OKRStorage
	clock   adapter.Clock
}

// NewGenerateProgressReportUseCase creates a new GenerateProgressReportUseCase instance.
func NewGenerateProgressReportUseCase(storage adapter.OKRStorage, clock adapter.Clock) *GenerateProgressReportUseCase {
	return &GenerateProgressReportUseCase{
		storage: storage,
		clock:   clock,
	}
}

// Execute generates the report.
func (uc *GenerateProgressReportUseCase) Execute(ctx context.Context, input ProgressReportInput) (*ProgressReportOutput, error) {
	timeframe := strings.ToLower(strings.TrimSpace(input.Timeframe))
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	if !timeframePattern.MatchString(timeframe) {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidTimeframe,
			"invalid timeframe, use a number followed by d, w, m or y (e.g. 30d)",
		)
	}

	activeObjective := entity.ObjectiveStatusActive
	objectives, err := uc.storage.ListObjectives(ctx, entity.ObjectiveFilter{Status: &activeObjective})
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}

	activeKeyResult := entity.KeyResultStatusActive
	keyResults, err := uc.storage.ListKeyResults(ctx, entity.KeyResultFilter{Status: &activeKeyResult})
	if err != nil {
		return nil, fmt.Errorf("failed to list key results: %w", err)
	}

	summary := Summarize(objectives, keyResults)

	return &ProgressReportOutput{
		Timeframe:       timeframe,
		GeneratedAt:     uc.clock.Now(),
		Objectives:      len(objectives),
		KeyResults:      len(keyResults),
		AverageProgress: summary.AverageObjectiveProgress,
		Summary:         summary,
		Trends:          Trends{Message: TrendsUnavailableMessage},
	}, nil
}
