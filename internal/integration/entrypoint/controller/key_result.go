package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
	"github.com/okr-bot/backend/internal/integration/entrypoint/dto"
	"github.com/okr-bot/backend/internal/integration/entrypoint/middleware"
)

// KeyResultUseCases groups the use cases served by KeyResultController.
type KeyResultUseCases struct {
	Create         *keyresult.CreateKeyResultUseCase
	Get            *keyresult.GetKeyResultUseCase
	List           *keyresult.ListKeyResultsUseCase
	Update         *keyresult.UpdateKeyResultUseCase
	Delete         *keyresult.DeleteKeyResultUseCase
	UpdateProgress *keyresult.UpdateProgressUseCase
	AddMilestone   *keyresult.AddMilestoneUseCase
	Stats          *keyresult.GetKeyResultStatsUseCase
	AtRisk         *keyresult.ListAtRiskKeyResultsUseCase
	Completed      *keyresult.ListCompletedKeyResultsUseCase
}

// KeyResultController handles key result endpoints.
type KeyResultController struct {
	useCases KeyResultUseCases
}

// NewKeyResultController creates a new key result controller instance.
func NewKeyResultController(useCases KeyResultUseCases) *KeyResultController {
	return &KeyResultController{
		useCases: useCases,
	}
}

// List handles GET /key-results requests. Query: objectiveId, status, owner.
func (c *KeyResultController) List(ctx *gin.Context) {
	filter := entity.KeyResultFilter{
		Owner: entity.NormalizeUser(ctx.Query("owner")),
	}
	if raw := ctx.Query("objectiveId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid objective ID format"})
			return
		}
		filter.ObjectiveID = &id
	}
	if raw := ctx.Query("status"); raw != "" {
		status, ok := entity.ParseKeyResultStatus(raw)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status filter"})
			return
		}
		filter.Status = &status
	}

	output, err := c.useCases.List.Execute(ctx.Request.Context(), keyresult.ListKeyResultsInput{Filter: filter})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKeyResultListResponse(output.KeyResults))
}

// Create handles POST /key-results requests.
func (c *KeyResultController) Create(ctx *gin.Context) {
	var req dto.CreateKeyResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	objectiveID, err := uuid.Parse(req.ObjectiveID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid objective ID format"})
		return
	}

	owner := req.Owner
	if owner == "" {
		owner, _ = middleware.GetCallerFromContext(ctx)
	}

	output, err := c.useCases.Create.Execute(ctx.Request.Context(), keyresult.CreateKeyResultInput{
		ObjectiveID:  objectiveID,
		Title:        req.Title,
		Description:  req.Description,
		Owner:        owner,
		Target:       req.Target.String(),
		Unit:         req.Unit,
		Current:      req.Current.String(),
		Priority:     req.Priority,
		TrackingType: req.TrackingType,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToKeyResultMutationResponse(output.KeyResult, output.Objective, nil))
}

// Get handles GET /key-results/:id requests.
func (c *KeyResultController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "key result")
	if !ok {
		return
	}

	output, err := c.useCases.Get.Execute(ctx.Request.Context(), keyresult.GetKeyResultInput{KeyResultID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}
	if output.KeyResult == nil {
		handleError(ctx, domainerror.NewNotFoundError(domainerror.ErrCodeKeyResultNotFound, "Key result not found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKeyResultResponse(output.KeyResult))
}

// Update handles PATCH /key-results/:id requests. Unknown fields are ignored.
func (c *KeyResultController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "key result")
	if !ok {
		return
	}

	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		badRequest(ctx, err)
		return
	}

	output, err := c.useCases.Update.Execute(ctx.Request.Context(), keyresult.UpdateKeyResultInput{
		KeyResultID: id,
		Fields:      fields,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKeyResultMutationResponse(output.KeyResult, output.Objective, output.AppliedFields))
}

// Delete handles DELETE /key-results/:id requests.
func (c *KeyResultController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "key result")
	if !ok {
		return
	}

	output, err := c.useCases.Delete.Execute(ctx.Request.Context(), keyresult.DeleteKeyResultInput{KeyResultID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKeyResultMutationResponse(output.KeyResult, output.Objective, nil))
}

// UpdateProgress handles POST /key-results/:id/progress requests.
func (c *KeyResultController) UpdateProgress(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "key result")
	if !ok {
		return
	}

	var req dto.ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	if req.Value == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "value is required"})
		return
	}

	output, err := c.useCases.UpdateProgress.Execute(ctx.Request.Context(), keyresult.UpdateProgressInput{
		KeyResultID: id,
		Value:       *req.Value,
		Mode:        req.Mode,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProgressResponse(output))
}

// AddMilestone handles POST /key-results/:id/milestones requests.
func (c *KeyResultController) AddMilestone(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "key result")
	if !ok {
		return
	}

	var req dto.MilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	output, err := c.useCases.AddMilestone.Execute(ctx.Request.Context(), keyresult.AddMilestoneInput{
		KeyResultID: id,
		Description: req.Description,
		Value:       req.Value,
		Date:        req.Date,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToKeyResultResponse(output.KeyResult))
}

// Stats handles GET /key-results/:id/stats requests.
func (c *KeyResultController) Stats(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "key result")
	if !ok {
		return
	}

	output, err := c.useCases.Stats.Execute(ctx.Request.Context(), keyresult.GetKeyResultInput{KeyResultID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKeyResultStatsResponse(output))
}

// AtRisk handles GET /key-results/at-risk requests. Query: owner.
func (c *KeyResultController) AtRisk(ctx *gin.Context) {
	output, err := c.useCases.AtRisk.Execute(ctx.Request.Context(), keyresult.ListAtRiskKeyResultsInput{
		Owner: ctx.Query("owner"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKeyResultListResponse(output.KeyResults))
}

// Completed handles GET /key-results/completed requests. Query: owner.
func (c *KeyResultController) Completed(ctx *gin.Context) {
	output, err := c.useCases.Completed.Execute(ctx.Request.Context(), keyresult.ListCompletedKeyResultsInput{
		Owner: ctx.Query("owner"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKeyResultListResponse(output.KeyResults))
}
