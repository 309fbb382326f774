package handler

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fplhub/fpl-analytics/internal/analysis"
	"github.com/fplhub/fpl-analytics/internal/api/respond"
	"github.com/fplhub/fpl-analytics/internal/fpl"
)

//go:embed assets/placeholder.png
var placeholderPNG []byte

// positionPlayer is one row of the position-filtered player list.
type positionPlayer struct {
	ID            int    `json:"id"`
	WebName       string `json:"webName"`
	FirstName     string `json:"firstName"`
	SecondName    string `json:"secondName"`
	Team          string `json:"team"`
	Position      string `json:"position"`
	TotalPoints   int    `json:"totalPoints"`
	NowCost       int    `json:"nowCost"`
	Form          string `json:"form"`
	SelectedByPct string `json:"selectedByPercent"`
}

// GetPlayersByPosition filters the bootstrap player list by position slug
// (gkp, def, mid, fwd). An unknown slug yields an empty list, not an error.
func (h *Handler) GetPlayersByPosition(w http.ResponseWriter, r *http.Request) {
	snap, err := h.bootstrap.Get(r.Context())
	if err != nil {
		h.writeUpstreamError(w, "bootstrap-static", err)
		return
	}

	players := []positionPlayer{}
	pos, ok := analysis.ParsePositionSlug(chi.URLParam(r, "position"))
	if ok {
		for i := range snap.Data.Players {
			p := &snap.Data.Players[i]
			if p.ElementType != int(pos) {
				continue
			}
			row := positionPlayer{
				ID:            p.ID,
				WebName:       p.WebName,
				FirstName:     p.FirstName,
				SecondName:    p.SecondName,
				Position:      pos.String(),
				TotalPoints:   p.TotalPoints,
				NowCost:       p.NowCost,
				Form:          p.Form,
				SelectedByPct: p.SelectedByPct,
			}
			if team, err := snap.Team(p.TeamID); err == nil {
				row.Team = team.ShortName
			}
			players = append(players, row)
		}
	}
	respond.JSON(w, http.StatusOK, players)
}

// GetPlayerImage proxies a player's photo from the official image host. Any
// failure — unknown player, upstream error — serves the local placeholder
// with a 404 so <img> tags always render something.
func (h *Handler) GetPlayerImage(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "playerId")
	if !ok {
		h.writePlaceholder(w)
		return
	}

	snap, err := h.bootstrap.Get(r.Context())
	if err != nil {
		h.writePlaceholder(w)
		return
	}

	player, err := snap.Player(id)
	if err != nil {
		h.writePlaceholder(w)
		return
	}

	data, contentType, err := h.client.FetchPlayerImage(r.Context(), player.Code)
	if err != nil {
		var ue *fpl.UpstreamError
		if !errors.As(err, &ue) || ue.Status != http.StatusNotFound {
			h.logger.Warn("player image fetch failed", "player_id", id, "error", err)
		}
		h.writePlaceholder(w)
		return
	}

	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) writePlaceholder(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusNotFound)
	w.Write(placeholderPNG)
}
