package store

import (
	"context"
	"sync"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

// MemoryStore keeps a thread-safe copy of the document in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	doc     *teams.Document
	loadErr error
	saveErr error
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored document.
func (s *MemoryStore) Load(ctx context.Context) (teams.Document, error) {
	if err := ctx.Err(); err != nil {
		return teams.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, s.loadErr)
	}
	if s.doc == nil {
		return teams.Document{}, teams.ErrNoDocument
	}
	return s.doc.Clone(), nil
}

// Save replaces the stored document with a copy of doc.
func (s *MemoryStore) Save(ctx context.Context, doc teams.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return teams.NewStorageError(teams.OpSave, s.saveErr)
	}
	cp := doc.Clone()
	s.doc = &cp
	return nil
}

// SetDocument replaces the stored document without going through Save.
func (s *MemoryStore) SetDocument(doc teams.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := doc.Clone()
	s.doc = &cp
}

// FailWith makes subsequent loads and saves fail. Nil clears the failure.
func (s *MemoryStore) FailWith(loadErr, saveErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = loadErr
	s.saveErr = saveErr
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
