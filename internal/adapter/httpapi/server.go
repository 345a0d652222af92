// Package httpapi exposes the service over HTTP: operational endpoints
// (healthz, readyz, metrics) and the JSON API consumed by the frontend.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/service"
	"github.com/couchcryptid/water-health-monitor/internal/store"
)

// Server wraps the HTTP listener and routes.
type Server struct {
	httpServer *http.Server
	service    *service.Service
	logger     *slog.Logger
}

// NewServer creates the API server on addr.
func NewServer(addr string, svc *service.Service, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: svc,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/predict", s.handlePredict)
	mux.HandleFunc("POST /api/samples", s.handleCreateSample)
	mux.HandleFunc("GET /api/samples", s.handleListSamples)
	mux.HandleFunc("POST /api/disease-reports", s.handleCreateDiseaseReport)
	mux.HandleFunc("GET /api/disease-reports", s.handleListDiseaseReports)
	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// predictRequest uses pointers so absent fields are distinguishable from zero.
type predictRequest struct {
	PH             *float64 `json:"ph"`
	Turbidity      *float64 `json:"turbidity"`
	BacterialCount *float64 `json:"bacterial_count"`
	Temperature    *float64 `json:"temperature"`
	Location       string   `json:"location"`
}

func (r predictRequest) missingFields() []string {
	var missing []string
	for _, c := range []struct {
		name  string
		value *float64
	}{
		{"ph", r.PH},
		{"turbidity", r.Turbidity},
		{"bacterial_count", r.BacterialCount},
		{"temperature", r.Temperature},
	} {
		if c.value == nil {
			missing = append(missing, c.name)
		}
	}
	return missing
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if missing := req.missingFields(); len(missing) > 0 {
		writeValidationError(w, domain.NewValidationError(missing...))
		return
	}

	pred, err := s.service.AssessRisk(r.Context(), *req.PH, *req.Turbidity, *req.BacterialCount, *req.Temperature, req.Location)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		s.logger.Error("risk assessment failed", "error", err)
		writeError(w, http.StatusInternalServerError, "risk assessment failed")
		return
	}

	writeJSON(w, http.StatusOK, pred)
}

type sampleResponse struct {
	Sample        domain.Sample         `json:"sample"`
	Notifications []domain.Notification `json:"notifications"`
}

func (s *Server) handleCreateSample(w http.ResponseWriter, r *http.Request) {
	var in store.SampleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	if !in.ContaminationLevel.Valid() {
		writeError(w, http.StatusBadRequest, "unknown contamination_level")
		return
	}

	sample, notifications, err := s.service.CreateSample(r.Context(), in)
	if err != nil {
		s.logger.Error("create sample failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, sampleResponse{Sample: sample, Notifications: orEmpty(notifications)})
}

type diseaseReportResponse struct {
	Report        domain.DiseaseReport  `json:"report"`
	Notifications []domain.Notification `json:"notifications"`
}

func (s *Server) handleCreateDiseaseReport(w http.ResponseWriter, r *http.Request) {
	var in store.DiseaseReportInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Disease == "" {
		writeError(w, http.StatusBadRequest, "disease is required")
		return
	}
	if in.Cases < 0 {
		writeError(w, http.StatusBadRequest, "cases must be non-negative")
		return
	}
	if !in.RiskLevel.Valid() {
		writeError(w, http.StatusBadRequest, "unknown risk_level")
		return
	}

	report, notifications, err := s.service.CreateDiseaseReport(r.Context(), in)
	if err != nil {
		s.logger.Error("create disease report failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, diseaseReportResponse{Report: report, Notifications: orEmpty(notifications)})
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	samples, err := s.service.Samples(r.Context(), limitParam(r))
	if err != nil {
		s.logger.Error("list samples failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list samples failed")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(samples))
}

func (s *Server) handleListDiseaseReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.service.DiseaseReports(r.Context(), limitParam(r))
	if err != nil {
		s.logger.Error("list disease reports failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list disease reports failed")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(reports))
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.service.Notifications(r.Context(), limitParam(r))
	if err != nil {
		s.logger.Error("list notifications failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list notifications failed")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(notifications))
}

// limitParam parses ?limit=N; 0 lets the service apply its default.
func limitParam(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// orEmpty keeps empty lists as [] instead of null in responses.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
