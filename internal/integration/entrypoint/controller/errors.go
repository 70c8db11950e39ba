// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/okr-bot/backend/internal/domain/error"
	"github.com/okr-bot/backend/internal/integration/entrypoint/dto"
)

// handleError maps domain error kinds to HTTP responses: validation to 400, not found to 404,
// anything else to 500.
func handleError(ctx *gin.Context, err error) {
	var okrErr *domainerror.OKRError
	if errors.As(err, &okrErr) {
		ctx.JSON(statusCodeFor(err), dto.ErrorResponse{
			Error: okrErr.Message,
			Code:  string(okrErr.Code),
		})
		return
	}

	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusCodeFor(err error) int {
	switch {
	case domainerror.IsValidation(err):
		return http.StatusBadRequest
	case domainerror.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// parseID reads a UUID path parameter, writing a 400 response when it is malformed.
func parseID(ctx *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body: " + err.Error(),
	})
}
