package api

import (
	"context"
	"net/http"

	"github.com/okian/wcdash/internal/domain/types"
)

// FinalsDependencies exposes the normalized finals table.
type FinalsDependencies interface {
	Finals(ctx context.Context) ([]types.MatchRecord, error)
}

// FinalsHandler serves the finals table.
type FinalsHandler struct {
	deps FinalsDependencies
}

// NewFinalsHandler creates a new finals handler.
func NewFinalsHandler(deps FinalsDependencies) *FinalsHandler {
	return &FinalsHandler{deps: deps}
}

// HandleGetFinals handles GET /api/finals.
func (h *FinalsHandler) HandleGetFinals(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_finals"
	if !allowGet(w, r) {
		return
	}
	finals, err := h.deps.Finals(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, finals)
}
