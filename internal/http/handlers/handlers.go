package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"

	appteams "github.com/preston-bernstein/teams-api/internal/app/teams"
	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

// maxBodyBytes caps create and update payloads.
const maxBodyBytes = 1 << 20

// Handler wires HTTP routes to the team service.
type Handler struct {
	svc    *appteams.Service
	logger *slog.Logger
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *appteams.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the backing store can be read.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.svc.Ready(r.Context()); err != nil {
		loggerFromContext(r, h.logger).Warn("readiness check failed", "err", err)
		writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// ListTeams returns one page of teams. A missing or unusable page query
// means the first page.
func (h *Handler) ListTeams(w nethttp.ResponseWriter, r *nethttp.Request) {
	page, err := h.svc.List(r.Context(), teams.ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, page, h.logger)
}

// Stats returns roster totals.
func (h *Handler) Stats(w nethttp.ResponseWriter, r *nethttp.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, stats, h.logger)
}

// CreateTeam adds a team and answers 201 with the stored record.
func (h *Handler) CreateTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	team, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusCreated, team, h.logger)
}

// UpdateTeam replaces the attributes of the team named by the path.
func (h *Handler) UpdateTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	team, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, h.logger)
}

// DeleteTeam removes the team named by the path.
func (h *Handler) DeleteTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"deletedId": deleted.String()}, h.logger)
}

func (h *Handler) pathID(w nethttp.ResponseWriter, r *nethttp.Request) (teams.ID, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		writeError(w, r, nethttp.StatusNotFound, teams.MsgTeamNotFound, h.logger)
		return "", false
	}
	return teams.ParseID(raw), true
}

// decodeInput reads a create or update body. Bodies that are not a JSON
// object decode to an empty input, which then fails validation field by
// field.
func (h *Handler) decodeInput(w nethttp.ResponseWriter, r *nethttp.Request) (teams.Input, bool) {
	var in teams.Input
	if r.Body == nil {
		return in, true
	}
	data, err := io.ReadAll(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *nethttp.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, nethttp.StatusRequestEntityTooLarge, "request body too large", h.logger)
			return in, false
		}
		writeError(w, r, nethttp.StatusBadRequest, "unreadable request body", h.logger)
		return in, false
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return teams.Input{}, true
	}
	return in, true
}

func (h *Handler) writeServiceError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	if verr, ok := teams.AsValidationError(err); ok {
		writeJSON(w, nethttp.StatusBadRequest, map[string]teams.FieldErrors{"errors": verr.Errors}, h.logger)
		return
	}
	if teams.IsNotFound(err) {
		writeError(w, r, nethttp.StatusNotFound, teams.MsgTeamNotFound, h.logger)
		return
	}
	loggerFromContext(r, h.logger).Error("request failed", "err", err)
	writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
}
