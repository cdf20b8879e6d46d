// Package sqlite stores the team document as a single row in a SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

const documentKey = "teams"

const schema = `CREATE TABLE IF NOT EXISTS team_documents (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store provides SQLite-backed persistence for the team document.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the database at path and creates the document table.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads the stored document.
func (s *Store) Load(ctx context.Context) (teams.Document, error) {
	if s == nil || s.sqlDB == nil {
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, errors.New("storage is not configured"))
	}

	var body string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT body FROM team_documents WHERE name = ?`, documentKey,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teams.Document{}, teams.ErrNoDocument
		}
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, fmt.Errorf("select document: %w", err))
	}

	doc, err := teams.DecodeDocument([]byte(body))
	if err != nil {
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, err)
	}
	return doc, nil
}

// Save replaces the stored document in one transaction.
func (s *Store) Save(ctx context.Context, doc teams.Document) error {
	if s == nil || s.sqlDB == nil {
		return teams.NewStorageError(teams.OpSave, errors.New("storage is not configured"))
	}
	body, err := teams.EncodeDocument(doc)
	if err != nil {
		return teams.NewStorageError(teams.OpSave, err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return teams.NewStorageError(teams.OpSave, fmt.Errorf("begin: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO team_documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		documentKey, string(body), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return teams.NewStorageError(teams.OpSave, fmt.Errorf("upsert document: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return teams.NewStorageError(teams.OpSave, fmt.Errorf("commit: %w", err))
	}
	return nil
}
