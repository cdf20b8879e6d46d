package store

import (
	"context"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

// Backend is a closable document store.
type Backend interface {
	Load(ctx context.Context) (teams.Document, error)
	Save(ctx context.Context, doc teams.Document) error
	Close() error
}

// Backend names as accepted by STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)
