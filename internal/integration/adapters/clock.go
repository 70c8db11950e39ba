// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/okr-bot/backend/internal/application/adapter"
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// NewSystemClock creates a new SystemClock instance.
func NewSystemClock() adapter.Clock {
	return SystemClock{}
}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
