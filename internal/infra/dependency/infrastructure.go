package dependency

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/okr-bot/backend/config"
	"github.com/okr-bot/backend/internal/infra/cache"
	"github.com/okr-bot/backend/internal/infra/db"
	"github.com/okr-bot/backend/internal/integration/persistence"
	"github.com/okr-bot/backend/internal/integration/persistence/memory"
)

// OpenInfrastructure connects the configured storage backend and, when a URL is set, Redis.
// On success the returned function closes every opened connection.
func OpenInfrastructure(cfg *config.Config) (Infrastructure, func() error, error) {
	var (
		infra   Infrastructure
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (Infrastructure, func() error, error) {
		_ = closeAll()
		return Infrastructure{}, nil, err
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		infra.Storage = memory.NewStorage()
		infra.StorageHealth = func() bool { return true }
		slog.Info("Using in-memory storage")

	case config.StorageDriverPostgres, config.StorageDriverSQLite:
		database, err := db.NewConnection(&cfg.Storage)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, database.Close)

		if err := database.Migrate(); err != nil {
			return fail(fmt.Errorf("failed to migrate database: %w", err))
		}

		infra.Storage = persistence.NewOKRRepository(database.DB())
		infra.StorageHealth = database.HealthCheck

	default:
		return fail(fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver))
	}

	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, client.Close)
		infra.Redis = client
	}

	return infra, closeAll, nil
}
