package server

import (
	"context"
	"log/slog"

	appteams "github.com/preston-bernstein/teams-api/internal/app/teams"
	"github.com/preston-bernstein/teams-api/internal/config"
	"github.com/preston-bernstein/teams-api/internal/domain/teams"
	"github.com/preston-bernstein/teams-api/internal/logging"
	"github.com/preston-bernstein/teams-api/internal/snapshots"
)

type snapshotWriter interface {
	WriteTeamsSnapshot(doc teams.Document) error
}

type snapshotComponents struct {
	source snapshotSource
	writer snapshotWriter
}

// buildSnapshots returns empty components when snapshots are disabled.
func buildSnapshots(cfg config.Config) snapshotComponents {
	if !cfg.Snapshots.Enabled {
		return snapshotComponents{}
	}
	basePath := cfg.Snapshots.Dir
	return snapshotComponents{
		source: snapshots.NewFSStore(basePath),
		writer: snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays),
	}
}

// saveHook copies every saved document into the daily snapshot. Snapshot
// failures are logged and never fail the request that saved.
func (c snapshotComponents) saveHook(logger *slog.Logger) appteams.SaveHook {
	if c.writer == nil {
		return nil
	}
	return func(ctx context.Context, doc teams.Document) {
		if err := c.writer.WriteTeamsSnapshot(doc); err != nil {
			logging.Warn(logging.FromContext(ctx, logger), "snapshot write failed", "error", err)
		}
	}
}
