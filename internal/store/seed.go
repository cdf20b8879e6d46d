package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

type documentStore interface {
	Load(ctx context.Context) (teams.Document, error)
	Save(ctx context.Context, doc teams.Document) error
}

// Bootstrap writes an initial document when the store has none. The seed
// drafts become the first teams, with ids minted from origin. An existing
// document is left untouched. It reports whether a document was written.
func Bootstrap(ctx context.Context, s documentStore, origin int64, seed []teams.Draft) (bool, error) {
	if empty, err := isEmpty(ctx, s); !empty || err != nil {
		return false, err
	}

	doc := teams.NewDocument(origin)
	for _, d := range seed {
		if errs := d.Validate(doc.Teams); errs != nil {
			return false, fmt.Errorf("seed team %q: %w", d.Name, &teams.ValidationError{Errors: errs})
		}
		doc.Teams = append(doc.Teams, d.NewTeam(doc.Mint()))
	}
	if err := s.Save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

// Restore writes doc when the store has no document yet, after repairing its
// id counter. It reports whether doc was written.
func Restore(ctx context.Context, s documentStore, origin int64, doc teams.Document) (bool, error) {
	if empty, err := isEmpty(ctx, s); !empty || err != nil {
		return false, err
	}
	doc.RepairNextID(origin)
	if err := s.Save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

func isEmpty(ctx context.Context, s documentStore) (bool, error) {
	_, err := s.Load(ctx)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, teams.ErrNoDocument):
		return true, nil
	default:
		return false, err
	}
}
