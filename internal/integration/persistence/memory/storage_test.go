package memory

import (
	"testing"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/integration/persistence/storagetest"
)

func TestStorage_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) adapter.OKRStorage {
		return NewStorage()
	})
}
