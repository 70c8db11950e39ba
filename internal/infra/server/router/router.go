// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/okr-bot/backend/internal/integration/entrypoint/controller"
	"github.com/okr-bot/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	objectiveController *controller.ObjectiveController
	keyResultController *controller.KeyResultController
	reportController    *controller.ReportController
	reportRateLimiter   *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	objectiveController *controller.ObjectiveController,
	keyResultController *controller.KeyResultController,
	reportController *controller.ReportController,
	reportRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:    healthController,
		objectiveController: objectiveController,
		keyResultController: keyResultController,
		reportController:    reportController,
		reportRateLimiter:   reportRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.Identity())
	{
		objectives := v1.Group("/objectives")
		{
			// Static paths before :id
			objectives.GET("/overdue", r.objectiveController.Overdue)
			objectives.GET("/upcoming", r.objectiveController.Upcoming)

			objectives.GET("", r.objectiveController.List)
			objectives.POST("", r.objectiveController.Create)
			objectives.GET("/:id", r.objectiveController.Get)
			objectives.PATCH("/:id", r.objectiveController.Update)
			objectives.DELETE("/:id", r.objectiveController.Delete)
			objectives.GET("/:id/stats", r.objectiveController.Stats)
			objectives.PUT("/:id/status", r.objectiveController.SetStatus)
			objectives.POST("/:id/assignees", r.objectiveController.AddAssignee)
			objectives.DELETE("/:id/assignees", r.objectiveController.RemoveAssignee)
		}

		keyResults := v1.Group("/key-results")
		{
			keyResults.GET("/at-risk", r.keyResultController.AtRisk)
			keyResults.GET("/completed", r.keyResultController.Completed)

			keyResults.GET("", r.keyResultController.List)
			keyResults.POST("", r.keyResultController.Create)
			keyResults.GET("/:id", r.keyResultController.Get)
			keyResults.PATCH("/:id", r.keyResultController.Update)
			keyResults.DELETE("/:id", r.keyResultController.Delete)
			keyResults.POST("/:id/progress", r.keyResultController.UpdateProgress)
			keyResults.POST("/:id/milestones", r.keyResultController.AddMilestone)
			keyResults.GET("/:id/stats", r.keyResultController.Stats)
		}

		v1.GET("/search", r.reportController.Search)

		reports := v1.Group("/reports")
		if r.reportRateLimiter != nil {
			reports.Use(r.reportRateLimiter.Middleware())
		}
		{
			reports.GET("/overall", r.reportController.Overall)
			reports.GET("/team/:owner", r.reportController.Team)
			reports.GET("/progress", r.reportController.Progress)
		}
	}
}
