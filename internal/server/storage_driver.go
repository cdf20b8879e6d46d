package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/teams-api/internal/store"
)

var driverAliases = map[string]string{
	"":           store.DriverFile,
	"json":       store.DriverFile,
	"sqlite3":    store.DriverSQLite,
	"pg":         store.DriverPostgres,
	"postgresql": store.DriverPostgres,
}

// normalizeDriver returns the canonical backend name for a configured
// driver. Unknown names fall back to the file backend. The result also
// labels storage metrics and logs.
func normalizeDriver(raw string, logger *slog.Logger) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := driverAliases[name]; ok {
		return alias
	}
	switch name {
	case store.DriverFile, store.DriverSQLite, store.DriverPostgres, store.DriverMemory:
		return name
	}
	if logger != nil {
		logger.Warn("unknown storage driver, falling back to file", slog.String("driver", raw))
	}
	return store.DriverFile
}
