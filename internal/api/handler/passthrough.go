package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fplhub/fpl-analytics/internal/api/respond"
	"github.com/fplhub/fpl-analytics/internal/fpl"
)

// relay fetches an upstream API path and writes the raw payload through.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request, endpoint, path string) {
	body, err := h.client.GetRaw(r.Context(), endpoint, path)
	if err != nil {
		h.writeUpstreamError(w, endpoint, err)
		return
	}
	respond.Raw(w, http.StatusOK, body)
}

func (h *Handler) writeUpstreamError(w http.ResponseWriter, endpoint string, err error) {
	h.logger.Error("upstream request failed", "endpoint", endpoint, "error", err)
	var ue *fpl.UpstreamError
	if errors.As(err, &ue) {
		respond.ErrorDetail(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to fetch %s", endpoint), ue.Error())
		return
	}
	respond.Error(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch %s", endpoint))
}

// intParam reads a numeric route parameter; ok is false when it is not a
// plain positive integer.
func intParam(r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// GetBootstrapStatic relays the full bootstrap payload.
func (h *Handler) GetBootstrapStatic(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, "bootstrap-static", "/bootstrap-static/")
}

// GetEntry relays a manager's entry summary.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "managerId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid manager ID format")
		return
	}
	h.relay(w, r, "entry", fmt.Sprintf("/entry/%d/", id))
}

// GetEntryHistory relays a manager's season history.
func (h *Handler) GetEntryHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "managerId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid manager ID format")
		return
	}
	h.relay(w, r, "history", fmt.Sprintf("/entry/%d/history/", id))
}

// GetEntryPicks relays a manager's squad selection for one gameweek.
func (h *Handler) GetEntryPicks(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "managerId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid manager ID format")
		return
	}
	gw, ok := intParam(r, "gameweek")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid gameweek")
		return
	}
	h.relay(w, r, "picks", fmt.Sprintf("/entry/%d/event/%d/picks/", id, gw))
}

// GetElementSummary relays a player's history and fixtures.
func (h *Handler) GetElementSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "playerId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid player ID")
		return
	}
	h.relay(w, r, "element-summary", fmt.Sprintf("/element-summary/%d/", id))
}

// GetLeagueStandings relays a classic league's standings.
func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "leagueId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid league ID")
		return
	}
	h.relay(w, r, "standings", fmt.Sprintf("/leagues-classic/%d/standings/", id))
}
