package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthController handles health check endpoints.
type HealthController struct {
	storageDriver  string
	storageChecker HealthChecker
	redisChecker   HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil checker reports the dependency as not configured.
func NewHealthController(storageDriver string, storageChecker, redisChecker HealthChecker) *HealthController {
	return &HealthController{
		storageDriver:  storageDriver,
		storageChecker: storageChecker,
		redisChecker:   redisChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Storage:   h.storageDriver,
		Database:  dependencyStatus(h.storageChecker),
		Redis:     dependencyStatus(h.redisChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}

func dependencyStatus(checker HealthChecker) string {
	if checker == nil {
		return "not_configured"
	}
	if checker() {
		return "connected"
	}
	return "disconnected"
}
