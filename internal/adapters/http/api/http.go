// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/wcdash/internal/adapters/repository"
	"github.com/okian/wcdash/internal/domain/query"
	"github.com/okian/wcdash/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StandingsDependencies
	SelectorDependencies
	FinalsDependencies
	LookupDependencies
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	standingsHandler *StandingsHandler
	selectorHandler  *SelectorHandler
	finalsHandler    *FinalsHandler
	lookupHandler    *LookupHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		standingsHandler: NewStandingsHandler(deps),
		selectorHandler:  NewSelectorHandler(deps),
		finalsHandler:    NewFinalsHandler(deps),
		lookupHandler:    NewLookupHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/wins", MetricsMiddleware(s.standingsHandler.HandleGetWins, "wins"))
	mux.HandleFunc("/api/countries", MetricsMiddleware(s.selectorHandler.HandleGetCountries, "countries"))
	mux.HandleFunc("/api/years", MetricsMiddleware(s.selectorHandler.HandleGetYears, "years"))
	mux.HandleFunc("/api/finals", MetricsMiddleware(s.finalsHandler.HandleGetFinals, "finals"))
	mux.HandleFunc("/api/country", MetricsMiddleware(s.lookupHandler.HandleGetCountry, "country"))
	mux.HandleFunc("/api/year", MetricsMiddleware(s.lookupHandler.HandleGetYear, "year"))
}

// Response shapes re-exported for handler tests and clients.
type (
	CountryResult = query.CountryResult
	YearResult    = query.YearResult
	WinCount      = types.CountryWinCount
	Final         = types.MatchRecord
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeUpstreamError maps dependency errors onto HTTP statuses.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotLoaded) {
		writeError(w, http.StatusServiceUnavailable, "not_ready", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}

// allowGet rejects anything but GET and HEAD with 405.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	return false
}
