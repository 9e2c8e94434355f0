// Package server exposes the calculator as a small JSON API so batch results
// and ad-hoc calculations can be consumed by other tooling. It is stateless:
// every request is a pure in-process computation.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fitburn/fitburn/pkg/domain/formula"
	"github.com/fitburn/fitburn/pkg/domain/timeseries"
	"github.com/fitburn/fitburn/pkg/domain/validation"
)

// Server holds the HTTP handler state.
type Server struct {
	logger *slog.Logger
}

// New creates a Server logging through the given logger.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/quality", s.handleQuality)
		r.Post("/zones", s.handleZones)
	})

	return r
}

type calculateRequest struct {
	Samples []timeseries.Sample `json:"samples"`
	Profile timeseries.Profile  `json:"profile"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := timeseries.Integrate(req.Samples, req.Profile, s.logger)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type qualityRequest struct {
	Samples       []timeseries.Sample `json:"samples"`
	MinDataPoints int                 `json:"min_data_points,omitempty"`
	MaxGapMinutes float64             `json:"max_gap_minutes,omitempty"`
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	var req qualityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, err := timeseries.Audit(req.Samples, timeseries.AuditOptions{
		MinDataPoints: req.MinDataPoints,
		MaxGapMinutes: req.MaxGapMinutes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

type zonesRequest struct {
	Age         float64   `json:"age_years"`
	RestingHR   float64   `json:"resting_heart_rate"`
	Intensities []float64 `json:"intensities"`
	MaxHR       *float64  `json:"max_heart_rate,omitempty"`
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	var req zonesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	zones, err := formula.KarvonenZones(req.Age, req.RestingHR, req.Intensities, req.MaxHR)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"zones": zones})
}

// writeDomainError maps pipeline error kinds to HTTP statuses: validation and
// missing-data failures are the client's problem, everything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, timeseries.ErrMissingData):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
