package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
	"github.com/preston-bernstein/teams-api/internal/logging"
	"github.com/preston-bernstein/teams-api/internal/metrics"
)

// instrumentedBackend records latency and failures of every storage call.
type instrumentedBackend struct {
	inner   Backend
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewInstrumented wraps inner so each load and save is logged and counted
// under the given backend name.
func NewInstrumented(inner Backend, name string, logger *slog.Logger, recorder *metrics.Recorder) Backend {
	return &instrumentedBackend{
		inner:   inner,
		name:    name,
		logger:  logger,
		metrics: recorder,
	}
}

func (b *instrumentedBackend) Load(ctx context.Context) (teams.Document, error) {
	start := time.Now()
	doc, err := b.inner.Load(ctx)
	// An empty store is not a fault.
	callErr := err
	if errors.Is(err, teams.ErrNoDocument) {
		callErr = nil
	}
	b.observe(ctx, teams.OpLoad, start, callErr)
	return doc, err
}

func (b *instrumentedBackend) Save(ctx context.Context, doc teams.Document) error {
	start := time.Now()
	err := b.inner.Save(ctx, doc)
	b.observe(ctx, teams.OpSave, start, err)
	return err
}

func (b *instrumentedBackend) Close() error {
	return b.inner.Close()
}

func (b *instrumentedBackend) observe(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	b.metrics.RecordStorageCall(b.name, op, elapsed, err)
	if err == nil {
		return
	}
	logger := logging.FromContext(ctx, b.logger)
	logging.Warn(logger, "storage call failed",
		logging.FieldBackend, b.name,
		logging.FieldOperation, op,
		logging.FieldDurationMS, elapsed.Milliseconds(),
		"error", err,
	)
}
