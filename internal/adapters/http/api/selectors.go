package api

import (
	"context"
	"net/http"
)

// SelectorDependencies provides the dropdown value sets.
type SelectorDependencies interface {
	Countries(ctx context.Context) ([]string, error)
	Years(ctx context.Context) ([]int, error)
}

// SelectorHandler serves the country and year selector values.
type SelectorHandler struct {
	deps SelectorDependencies
}

// NewSelectorHandler creates a new selector handler.
func NewSelectorHandler(deps SelectorDependencies) *SelectorHandler {
	return &SelectorHandler{deps: deps}
}

// HandleGetCountries handles GET /api/countries.
func (h *SelectorHandler) HandleGetCountries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_countries"
	if !allowGet(w, r) {
		return
	}
	countries, err := h.deps.Countries(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

// HandleGetYears handles GET /api/years.
func (h *SelectorHandler) HandleGetYears(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_years"
	if !allowGet(w, r) {
		return
	}
	years, err := h.deps.Years(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, years)
}
