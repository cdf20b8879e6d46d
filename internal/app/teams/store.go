package teams

import (
	"context"

	domain "github.com/preston-bernstein/teams-api/internal/domain/teams"
)

//go:generate mockgen -destination=store_mock_test.go -package=teams github.com/preston-bernstein/teams-api/internal/app/teams Store

// Store loads and saves the whole team document. Save must replace the
// previous content atomically. A store that has never been written returns
// domain.ErrNoDocument from Load.
type Store interface {
	Load(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, doc domain.Document) error
}
