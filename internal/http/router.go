package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/teams-api/internal/http/handlers"
)

// apiPrefixes are the mount points for the team routes. The bare paths and
// the /api ones serve the same handlers.
var apiPrefixes = []string{"", "/api"}

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
	for _, prefix := range apiPrefixes {
		mux.HandleFunc("GET "+prefix+"/teams", handler.ListTeams)
		mux.HandleFunc("POST "+prefix+"/teams", handler.CreateTeam)
		mux.HandleFunc("PUT "+prefix+"/teams/{id}", handler.UpdateTeam)
		mux.HandleFunc("DELETE "+prefix+"/teams/{id}", handler.DeleteTeam)
		mux.HandleFunc("GET "+prefix+"/stats", handler.Stats)
	}
	return mux
}
