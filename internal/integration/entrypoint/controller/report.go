package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/application/usecase/search"
	"github.com/okr-bot/backend/internal/integration/entrypoint/dto"
)

// ReportController handles report and search endpoints.
type ReportController struct {
	overallUseCase  *report.GenerateOverallReportUseCase
	teamUseCase     *report.GenerateTeamReportUseCase
	progressUseCase *report.GenerateProgressReportUseCase
	searchUseCase   *search.SearchUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	overallUseCase *report.GenerateOverallReportUseCase,
	teamUseCase *report.GenerateTeamReportUseCase,
	progressUseCase *report.GenerateProgressReportUseCase,
	searchUseCase *search.SearchUseCase,
) *ReportController {
	return &ReportController{
		overallUseCase:  overallUseCase,
		teamUseCase:     teamUseCase,
		progressUseCase: progressUseCase,
		searchUseCase:   searchUseCase,
	}
}

// Overall handles GET /reports/overall requests. Query: status, owner, category.
func (c *ReportController) Overall(ctx *gin.Context) {
	output, err := c.overallUseCase.Execute(ctx.Request.Context(), report.OverallReportInput{
		Filter: report.Filter{
			Status:   ctx.Query("status"),
			Owner:    ctx.Query("owner"),
			Category: ctx.Query("category"),
		},
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// Team handles GET /reports/team/:owner requests.
func (c *ReportController) Team(ctx *gin.Context) {
	output, err := c.teamUseCase.Execute(ctx.Request.Context(), report.TeamReportInput{
		Owner: ctx.Param("owner"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTeamReportResponse(output))
}

// Progress handles GET /reports/progress requests. Query: timeframe.
func (c *ReportController) Progress(ctx *gin.Context) {
	output, err := c.progressUseCase.Execute(ctx.Request.Context(), report.ProgressReportInput{
		Timeframe: ctx.Query("timeframe"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// Search handles GET /search requests. Query: q, scope.
func (c *ReportController) Search(ctx *gin.Context) {
	output, err := c.searchUseCase.Execute(ctx.Request.Context(), search.SearchInput{
		Query: ctx.Query("q"),
		Scope: ctx.Query("scope"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSearchResponse(output))
}
