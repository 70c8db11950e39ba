package persistence

import (
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/integration/persistence/model"
	"github.com/okr-bot/backend/internal/integration/persistence/storagetest"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive for the whole test.
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestOKRRepository_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) adapter.OKRStorage {
		return NewOKRRepository(newTestDB(t))
	})
}
