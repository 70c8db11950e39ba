// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// CallerKey is the context key for the caller identity.
	CallerKey ContextKey = "caller"

	// CallerHeader carries the caller identity. Authentication is out of scope; the value is trusted.
	CallerHeader = "X-User-ID"
)

// Identity stores the caller from the X-User-ID header in the Gin context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller := strings.TrimPrefix(strings.TrimSpace(c.GetHeader(CallerHeader)), "@"); caller != "" {
			c.Set(string(CallerKey), caller)
		}
		c.Next()
	}
}

// GetCallerFromContext extracts the caller identity from the Gin context.
func GetCallerFromContext(c *gin.Context) (string, bool) {
	caller, exists := c.Get(string(CallerKey))
	if !exists {
		return "", false
	}
	s, ok := caller.(string)
	return s, ok && s != ""
}
