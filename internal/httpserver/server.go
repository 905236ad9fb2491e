package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/blackmichael/aws-newsroom/internal/config"
	"github.com/blackmichael/aws-newsroom/internal/domain"
)

// Server exposes the ingestion invocation interface to the external
// scheduler, plus a health endpoint.
type Server struct {
	cfg        *config.Config
	ingestion  *domain.IngestionService
	summaries  *domain.SummaryService
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates the HTTP server. summaries may be nil when no
// summarizer is configured; the endpoint then reports the feature as
// unavailable.
func NewServer(cfg *config.Config, ingestion *domain.IngestionService, summaries *domain.SummaryService, logger *slog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		ingestion: ingestion,
		summaries: summaries,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /ingest/news", s.handleIngestNews)
	mux.HandleFunc("POST /ingest/blog", s.handleIngestBlog)
	mux.HandleFunc("POST /summaries/generate", s.handleGenerateSummaries)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: withLogging(logger, mux),
		// Ingestion runs paginate a remote API with retries; allow them to
		// finish within the scheduler's own timeout.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIngestNews(w http.ResponseWriter, r *http.Request) {
	req, err := decodeWindowRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := s.ingestion.IngestNews(r.Context(), req)
	if err != nil {
		s.logger.Error("news ingestion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "IngestionError", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIngestBlog(w http.ResponseWriter, r *http.Request) {
	req, err := decodeWindowRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := s.ingestion.IngestBlog(r.Context(), req)
	if err != nil {
		s.logger.Error("blog ingestion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "IngestionError", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateSummaries(w http.ResponseWriter, r *http.Request) {
	if s.summaries == nil {
		writeError(w, http.StatusServiceUnavailable, "SummariesDisabled", "no summarizer is configured")
		return
	}

	var req struct {
		BatchSize int `json:"batchSize,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := s.summaries.GenerateSummaries(r.Context(), req.BatchSize)
	if err != nil {
		s.logger.Error("summary generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "SummaryError", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeWindowRequest parses the invocation body. An empty body means the
// default window.
func decodeWindowRequest(r *http.Request) (domain.WindowRequest, error) {
	var req domain.WindowRequest
	err := decodeBody(r, &req)
	return req, err
}

func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errType,
		"message": message,
	})
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
