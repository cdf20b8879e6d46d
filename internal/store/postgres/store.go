// Package postgres stores the team document as a JSONB row in Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

const documentKey = "teams"

const schema = `CREATE TABLE IF NOT EXISTS team_documents (
	name       TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store provides Postgres-backed persistence for the team document.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database, verifies the connection and creates the
// document table.
func Open(ctx context.Context, connectionString string) (*Store, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("postgres connection string is required")
	}

	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Load reads the stored document.
func (s *Store) Load(ctx context.Context) (teams.Document, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM team_documents WHERE name = $1`, documentKey,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teams.Document{}, teams.ErrNoDocument
		}
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, fmt.Errorf("select document: %w", err))
	}

	doc, err := teams.DecodeDocument(body)
	if err != nil {
		return teams.Document{}, teams.NewStorageError(teams.OpLoad, err)
	}
	return doc, nil
}

// Save replaces the stored document in one transaction.
func (s *Store) Save(ctx context.Context, doc teams.Document) error {
	body, err := teams.EncodeDocument(doc)
	if err != nil {
		return teams.NewStorageError(teams.OpSave, err)
	}

	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO team_documents (name, body, updated_at) VALUES ($1, $2::jsonb, now())
			 ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
			documentKey, string(body),
		)
		return err
	})
	if err != nil {
		return teams.NewStorageError(teams.OpSave, fmt.Errorf("upsert document: %w", err))
	}
	return nil
}
