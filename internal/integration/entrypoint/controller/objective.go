package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/domain/entity"
	domainerror "github.com/okr-bot/backend/internal/domain/error"
	"github.com/okr-bot/backend/internal/integration/entrypoint/dto"
	"github.com/okr-bot/backend/internal/integration/entrypoint/middleware"
)

// ObjectiveUseCases groups the use cases served by ObjectiveController.
type ObjectiveUseCases struct {
	Create         *objective.CreateObjectiveUseCase
	Get            *objective.GetObjectiveUseCase
	List           *objective.ListObjectivesUseCase
	Update         *objective.UpdateObjectiveUseCase
	Delete         *objective.DeleteObjectiveUseCase
	Stats          *objective.GetObjectiveStatsUseCase
	SetStatus      *objective.SetObjectiveStatusUseCase
	AddAssignee    *objective.AddAssigneeUseCase
	RemoveAssignee *objective.RemoveAssigneeUseCase
	Overdue        *objective.ListOverdueObjectivesUseCase
	Upcoming       *objective.ListUpcomingDeadlinesUseCase
}

// ObjectiveController handles objective endpoints.
type ObjectiveController struct {
	useCases ObjectiveUseCases
}

// NewObjectiveController creates a new objective controller instance.
func NewObjectiveController(useCases ObjectiveUseCases) *ObjectiveController {
	return &ObjectiveController{
		useCases: useCases,
	}
}

// List handles GET /objectives requests. Query: status, owner, category.
func (c *ObjectiveController) List(ctx *gin.Context) {
	filter := entity.ObjectiveFilter{
		Owner:    entity.NormalizeUser(ctx.Query("owner")),
		Category: ctx.Query("category"),
	}
	if raw := ctx.Query("status"); raw != "" {
		status, ok := entity.ParseObjectiveStatus(raw)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status filter"})
			return
		}
		filter.Status = &status
	}

	output, err := c.useCases.List.Execute(ctx.Request.Context(), objective.ListObjectivesInput{Filter: filter})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObjectiveListResponse(output.Objectives))
}

// Create handles POST /objectives requests.
func (c *ObjectiveController) Create(ctx *gin.Context) {
	var req dto.CreateObjectiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	caller, _ := middleware.GetCallerFromContext(ctx)
	owner := req.Owner
	if owner == "" {
		owner = caller
	}

	output, err := c.useCases.Create.Execute(ctx.Request.Context(), objective.CreateObjectiveInput{
		Title:       req.Title,
		Description: req.Description,
		Owner:       owner,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		CreatedBy:   caller,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToObjectiveResponse(output.Objective))
}

// Get handles GET /objectives/:id requests.
func (c *ObjectiveController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "objective")
	if !ok {
		return
	}

	output, err := c.useCases.Get.Execute(ctx.Request.Context(), objective.GetObjectiveInput{ObjectiveID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}
	if output.Objective == nil {
		handleError(ctx, domainerror.NewNotFoundError(domainerror.ErrCodeObjectiveNotFound, "Objective not found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObjectiveResponse(output.Objective))
}

// Update handles PATCH /objectives/:id requests. Unknown fields are ignored.
func (c *ObjectiveController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "objective")
	if !ok {
		return
	}

	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		badRequest(ctx, err)
		return
	}

	output, err := c.useCases.Update.Execute(ctx.Request.Context(), objective.UpdateObjectiveInput{
		ObjectiveID: id,
		Fields:      fields,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateObjectiveResponse{
		Objective:     dto.ToObjectiveResponse(output.Objective),
		AppliedFields: output.AppliedFields,
	})
}

// Delete handles DELETE /objectives/:id requests.
func (c *ObjectiveController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "objective")
	if !ok {
		return
	}

	output, err := c.useCases.Delete.Execute(ctx.Request.Context(), objective.DeleteObjectiveInput{ObjectiveID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteObjectiveResponse{
		ID:                id.String(),
		DeletedKeyResults: output.DeletedKeyResults,
	})
}

// Stats handles GET /objectives/:id/stats requests.
func (c *ObjectiveController) Stats(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "objective")
	if !ok {
		return
	}

	output, err := c.useCases.Stats.Execute(ctx.Request.Context(), objective.GetObjectiveStatsInput{ObjectiveID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObjectiveStatsResponse(output))
}

// SetStatus handles PUT /objectives/:id/status requests.
func (c *ObjectiveController) SetStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "objective")
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	output, err := c.useCases.SetStatus.Execute(ctx.Request.Context(), objective.SetObjectiveStatusInput{
		ObjectiveID: id,
		Status:      req.Status,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObjectiveResponse(output.Objective))
}

// AddAssignee handles POST /objectives/:id/assignees requests.
func (c *ObjectiveController) AddAssignee(ctx *gin.Context) {
	c.changeAssignee(ctx, c.useCases.AddAssignee.Execute)
}

// RemoveAssignee handles DELETE /objectives/:id/assignees requests.
func (c *ObjectiveController) RemoveAssignee(ctx *gin.Context) {
	c.changeAssignee(ctx, c.useCases.RemoveAssignee.Execute)
}

type assigneeFunc func(ctx context.Context, input objective.AssigneeInput) (*objective.AssigneeOutput, error)

func (c *ObjectiveController) changeAssignee(ctx *gin.Context, execute assigneeFunc) {
	id, ok := parseID(ctx, "id", "objective")
	if !ok {
		return
	}

	var req dto.AssigneeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	output, err := execute(ctx.Request.Context(), objective.AssigneeInput{ObjectiveID: id, User: req.User})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AssigneeResponse{
		Objective: dto.ToObjectiveResponse(output.Objective),
		Changed:   output.Changed,
	})
}

// Overdue handles GET /objectives/overdue requests. Query: owner.
func (c *ObjectiveController) Overdue(ctx *gin.Context) {
	output, err := c.useCases.Overdue.Execute(ctx.Request.Context(), objective.ListDeadlinesInput{
		Owner: ctx.Query("owner"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObjectiveListResponse(output.Objectives))
}

// Upcoming handles GET /objectives/upcoming requests. Query: owner, days.
func (c *ObjectiveController) Upcoming(ctx *gin.Context) {
	input := objective.ListDeadlinesInput{Owner: ctx.Query("owner")}
	if raw := ctx.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "days must be an integer"})
			return
		}
		input.Days = days
	}

	output, err := c.useCases.Upcoming.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObjectiveListResponse(output.Objectives))
}
