package testutil

import (
	appteams "github.com/preston-bernstein/teams-api/internal/app/teams"
	"github.com/preston-bernstein/teams-api/internal/store"
)

// NewServiceWithTeams builds a team service backed by an in-memory store
// preloaded with one team per name.
func NewServiceWithTeams(names ...string) (*appteams.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	if len(names) > 0 {
		ms.SetDocument(SampleDocument(names...))
	}
	return appteams.NewService(ms), ms
}
