package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/wcdash/internal/domain/query"
)

// LookupDependencies answers the dashboard's detail views.
type LookupDependencies interface {
	CountryStats(ctx context.Context, country string) (query.CountryResult, error)
	YearStats(ctx context.Context, year *int) (query.YearResult, error)
}

// LookupHandler serves the country and year detail text.
type LookupHandler struct {
	deps LookupDependencies
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(deps LookupDependencies) *LookupHandler {
	return &LookupHandler{deps: deps}
}

// HandleGetCountry handles GET /api/country?name=X. A missing name is an
// empty selection, not an error.
func (h *LookupHandler) HandleGetCountry(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_country"
	if !allowGet(w, r) {
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	res, err := h.deps.CountryStats(r.Context(), name)
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleGetYear handles GET /api/year?year=N. A missing year is an empty
// selection; a non-integer year is rejected.
func (h *LookupHandler) HandleGetYear(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_year"
	if !allowGet(w, r) {
		return
	}
	var year *int
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest, "year must be an integer"))
			return
		}
		year = &y
	}
	res, err := h.deps.YearStats(r.Context(), year)
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
