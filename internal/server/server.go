// Package server exposes the settlement engine over HTTP.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/calculation"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/config"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// maxBodyBytes bounds the answers payload
const maxBodyBytes = 1 << 20

// Config for the HTTP adapter.
type Config struct {
	Engine  *calculation.SettlementEngine
	Logger  *slog.Logger
	Metrics *Metrics
	Now     func() time.Time // Evaluation clock; defaults to time.Now
}

// Server wires the settlement engine to HTTP endpoints.
type Server struct {
	engine     *calculation.SettlementEngine
	normalizer *config.Normalizer
	logger     *slog.Logger
	metrics    *Metrics
	now        func() time.Time
}

// New creates a server, filling unset dependencies with defaults
func New(cfg Config) *Server {
	s := &Server{
		engine:     cfg.Engine,
		normalizer: config.NewNormalizer(),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        cfg.Now,
	}
	if s.engine == nil {
		s.engine = calculation.NewSettlementEngine()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Routes returns the router with every endpoint mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe(s.logger, s.metrics))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/outcome", s.handleOutcome)
		r.Get("/rules", s.handleRules)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Rules)
}

// handleOutcome handles POST /v1/outcome. The optional "now" query parameter
// (YYYY-MM-DD) fixes the evaluation date used for elapsed fee time.
func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := RequestID(ctx)

	now := s.now()
	if q := r.URL.Query().Get("now"); q != "" {
		t, err := time.Parse(time.DateOnly, q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "now must be a YYYY-MM-DD date", "")
			return
		}
		now = t
	}

	var raw config.RawAnswers
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		s.logger.WarnContext(ctx, "malformed answers payload", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "request body must be a JSON object of answers", "")
		return
	}

	profile, err := s.normalizer.Normalize(raw)
	if err != nil {
		var ve *config.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", ve.Message, ve.Field)
			return
		}
		s.logger.ErrorContext(ctx, "answers normalization failed", "request_id", requestID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error", "")
		return
	}

	outcome := s.engine.Evaluate(profile, now)
	s.metrics.IncrementOutcome(outcomeResult(outcome))

	s.logger.InfoContext(ctx, "settlement evaluated",
		"request_id", requestID,
		"visa_category", outcome.VisaCategory,
		"main_applicant_years", outcome.MainApplicantYears,
		"blocked", outcome.IsBlocked(),
	)
	writeJSON(w, http.StatusOK, outcome)
}

func outcomeResult(o *domain.Outcome) string {
	switch {
	case o.IsBlocked():
		return "blocked"
	case o.InsufficientInput:
		return "insufficient_input"
	default:
		return "settles"
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message, field string) {
	writeJSON(w, status, errorBody{Error: code, Message: message, Field: field})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
