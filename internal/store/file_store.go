package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

// FileStore persists the document as one JSON file. Saves write a temporary
// file in the same directory, sync it, and rename it over the target, so a
// reader sees either the old or the new content.
type FileStore struct {
	path string

	writeFn  func(f *os.File, data []byte) (int, error)
	renameFn func(oldpath, newpath string) error
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		writeFn:  func(f *os.File, data []byte) (int, error) { return f.Write(data) },
		renameFn: os.Rename,
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the document. A missing file yields
// teams.ErrNoDocument.
func (s *FileStore) Load(ctx context.Context) (teams.Document, error) {
	if err := ctx.Err(); err != nil {
		return teams.Document{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return teams.Document{}, fmt.Errorf("%s: %w", s.path, teams.ErrNoDocument)
		}
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, err)
	}
	doc, err := teams.DecodeDocument(data)
	if err != nil {
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, fmt.Errorf("%s: %w", s.path, err))
	}
	return doc, nil
}

// Save atomically replaces the file with the encoded document.
func (s *FileStore) Save(ctx context.Context, doc teams.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := teams.EncodeDocument(doc)
	if err != nil {
		return teams.NewStorageError(teams.OpSave, err)
	}
	data = append(data, '\n')
	if err := s.replace(data); err != nil {
		return teams.NewStorageError(teams.OpSave, err)
	}
	return nil
}

func (s *FileStore) replace(data []byte) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = s.writeFn(tmp, data); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = s.renameFn(tmpName, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
