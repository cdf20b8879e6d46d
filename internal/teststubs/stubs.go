package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

// StubStore is a test double for a document backend.
type StubStore struct {
	mu      sync.Mutex
	Doc     *teams.Document
	LoadErr error
	SaveErr error

	Loads  atomic.Int32
	Saves  atomic.Int32
	Closed atomic.Bool
}

// Load returns the configured document, error, or teams.ErrNoDocument.
func (s *StubStore) Load(ctx context.Context) (teams.Document, error) {
	_ = ctx
	s.Loads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return teams.Document{}, s.LoadErr
	}
	if s.Doc == nil {
		return teams.Document{}, teams.ErrNoDocument
	}
	return s.Doc.Clone(), nil
}

// Save records the document unless SaveErr is set.
func (s *StubStore) Save(ctx context.Context, doc teams.Document) error {
	_ = ctx
	s.Saves.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	cp := doc.Clone()
	s.Doc = &cp
	return nil
}

// Close marks the store closed.
func (s *StubStore) Close() error {
	s.Closed.Store(true)
	return nil
}

// StubSnapshotWriter is a test double for snapshots.Writer.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written []teams.Document
	Err     error
}

// WriteTeamsSnapshot records the document for verification in tests.
func (w *StubSnapshotWriter) WriteTeamsSnapshot(doc teams.Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Written = append(w.Written, doc)
	return nil
}

// Count returns how many snapshots were recorded.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}
