// Package server exposes a trained detector over HTTP: code analysis,
// readiness reporting, and a health probe.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"codeanomaly/detector"
)

// Server wraps a detector with an HTTP boundary
type Server struct {
	detector *detector.Detector
	log      zerolog.Logger
}

// New creates a server around the given detector. The detector may still
// be training; requests arriving before it is ready get a 503.
func New(d *detector.Detector, log zerolog.Logger) *Server {
	return &Server{detector: d, log: log}
}

type analyzeRequest struct {
	Code string `json:"code"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router builds the HTTP routes
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Post("/analyze", s.handleAnalyze)

	return r
}

// ListenAndServe serves the router on addr until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("listening")
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.detector.Ready() {
		writeJSON(w, http.StatusOK, statusResponse{
			Status:  "ready",
			Message: "detector ready for analysis",
		})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "initializing",
		Message: "detector is still training",
	})
}

// handleAnalyze scores one submitted code sample. A failed analysis is
// reported as an error status, never as a NORMAL classification.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if strings.TrimSpace(req.Code) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "please provide some code to analyze"})
		return
	}

	result, err := s.detector.Score(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, detector.ErrNotTrained) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "detector is not trained yet"})
			return
		}
		s.log.Error().Err(err).Msg("analysis failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "could not complete analysis"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
