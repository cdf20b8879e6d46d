package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/teams-api/internal/config"
	"github.com/preston-bernstein/teams-api/internal/domain/teams"
	"github.com/preston-bernstein/teams-api/internal/fixture"
	"github.com/preston-bernstein/teams-api/internal/logging"
	"github.com/preston-bernstein/teams-api/internal/metrics"
	"github.com/preston-bernstein/teams-api/internal/snapshots"
	"github.com/preston-bernstein/teams-api/internal/store"
	"github.com/preston-bernstein/teams-api/internal/store/postgres"
	"github.com/preston-bernstein/teams-api/internal/store/sqlite"
)

// storeFactory opens the configured backend with shared wrappers
// (instrumentation).
type storeFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newStoreFactory(logger *slog.Logger, recorder *metrics.Recorder) storeFactory {
	return storeFactory{logger: logger, metrics: recorder}
}

func (f storeFactory) build(ctx context.Context, cfg config.Config) (store.Backend, error) {
	driver := normalizeDriver(cfg.Storage.Driver, f.logger)

	var (
		backend store.Backend
		err     error
	)
	switch driver {
	case store.DriverMemory:
		backend = store.NewMemoryStore()
	case store.DriverSQLite:
		backend, err = sqlite.Open(cfg.Storage.SQLitePath)
	case store.DriverPostgres:
		backend, err = postgres.Open(ctx, cfg.Storage.PostgresURL)
	default:
		backend = store.NewFileStore(cfg.Storage.DataFile)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	logging.Info(f.logger, "team store ready", logging.FieldBackend, driver)
	return store.NewInstrumented(backend, driver, f.logger, f.metrics), nil
}

type snapshotSource interface {
	Latest() (teams.Document, string, error)
}

// prepareStore fills an empty store, first from the newest snapshot when
// restore is enabled, then from the fixture clubs when seeding is enabled.
// A store that already holds a document is never touched.
func prepareStore(ctx context.Context, cfg config.Config, backend store.Backend, source snapshotSource, logger *slog.Logger) error {
	if source != nil && cfg.Snapshots.Restore {
		doc, date, err := source.Latest()
		switch {
		case errors.Is(err, snapshots.ErrNoSnapshot):
		case err != nil:
			logging.Warn(logger, "snapshot restore skipped", "error", err)
		default:
			restored, err := store.Restore(ctx, backend, cfg.Teams.IDOrigin, doc)
			if err != nil {
				return fmt.Errorf("restore snapshot %s: %w", date, err)
			}
			if restored {
				logging.Info(logger, "restored teams from snapshot", "date", date, logging.FieldCount, len(doc.Teams))
				return nil
			}
		}
	}

	if !cfg.Teams.Seed {
		return nil
	}
	seed := fixture.Teams()
	seeded, err := store.Bootstrap(ctx, backend, cfg.Teams.IDOrigin, seed)
	if err != nil {
		return fmt.Errorf("seed teams: %w", err)
	}
	if seeded {
		logging.Info(logger, "seeded team store", logging.FieldCount, len(seed))
	}
	return nil
}
