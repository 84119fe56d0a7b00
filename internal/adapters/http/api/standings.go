package api

import (
	"context"
	"net/http"

	"github.com/okian/wcdash/internal/domain/types"
)

// StandingsDependencies defines the map feed source.
type StandingsDependencies interface {
	Standings(ctx context.Context) ([]types.CountryWinCount, error)
}

// StandingsHandler serves the choropleth feed.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleGetWins handles GET /api/wins.
func (h *StandingsHandler) HandleGetWins(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_wins"
	if !allowGet(w, r) {
		return
	}
	wins, err := h.deps.Standings(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, wins)
}
