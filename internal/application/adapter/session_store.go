package adapter

import (
	"context"
	"time"
)

// SessionStore keeps short-lived conversational state for chat form wizards.
type SessionStore interface {
	// Get loads the session stored under key into dest. It returns false when nothing is stored.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key for the given time-to-live.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the session stored under key.
	Delete(ctx context.Context, key string) error
}
