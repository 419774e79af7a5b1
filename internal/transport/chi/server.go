// Package chi exposes the codex over HTTP: corpus CRUD, the relationship
// engine endpoints, oracle pass-through, health, and metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ProjectLunareth/Codex/internal/domain"
	domgraph "github.com/ProjectLunareth/Codex/internal/domain/graph"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
	logpkg "github.com/ProjectLunareth/Codex/internal/logger"
	"github.com/ProjectLunareth/Codex/internal/metrics"
	crossrefuc "github.com/ProjectLunareth/Codex/internal/usecase/crossref"
	entryuc "github.com/ProjectLunareth/Codex/internal/usecase/entry"
	graphuc "github.com/ProjectLunareth/Codex/internal/usecase/graph"
	healthuc "github.com/ProjectLunareth/Codex/internal/usecase/health"
	oracleuc "github.com/ProjectLunareth/Codex/internal/usecase/oracle"
	"github.com/ProjectLunareth/Codex/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services to HTTP handlers.
type Server struct {
	entries       *entryuc.Service
	crossrefs     *crossrefuc.Service
	graphs        *graphuc.Service
	oracle        *oracleuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	entries *entryuc.Service,
	crossrefs *crossrefuc.Service,
	graphs *graphuc.Service,
	oracle *oracleuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		entries:   entries,
		crossrefs: crossrefs,
		graphs:    graphs,
		oracle:    oracle,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEntryNotFound, http.StatusNotFound, codeEntryNotFound),
		sentinelHandler(domain.ErrInvalidEntry, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidLayoutMode, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrOracleNotConfigured, http.StatusNotImplemented, codeOracleDisabled),
		sentinelHandler(domain.ErrOracleProviderError, http.StatusBadGateway, codeOracleError),
	}
	return s
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chirouter.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chimw.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.getHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chirouter.Router) {
		r.Route("/entries", func(r chirouter.Router) {
			r.Post("/", s.ingestEntry)
			r.Get("/", s.listEntries)
			r.Get("/{id}", s.getEntry)
			r.Delete("/{id}", s.deleteEntry)
			r.Get("/{id}/cross-references", s.getCrossReferences)
		})
		r.Get("/search", s.search)
		r.Get("/graph", s.getGraph)
		r.Get("/stats", s.getStats)
		r.Route("/oracle", func(r chirouter.Router) {
			r.Post("/consult", s.consultOracle)
			r.Post("/sigil", s.generateSigil)
			r.Post("/echo", s.synthesizeEcho)
			r.Get("/consultations", s.listConsultations)
		})
	})

	return r
}

// ingestEntry handles POST /api/v1/entries.
func (s *Server) ingestEntry(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	e, err := s.entries.Ingest(r.Context(), entryuc.IngestRequest{
		ID:        req.ID,
		Filename:  req.Filename,
		Summary:   req.Summary,
		FullText:  req.FullText,
		KeyChunks: req.KeyChunks,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entryToResponse(&e, true))
}

// listEntries handles GET /api/v1/entries.
func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.EngineCorpusSize.Set(float64(len(entries)))

	writeJSON(w, http.StatusOK, entryListResponse{
		Entries: entriesToResponse(entries, false),
		Total:   len(entries),
	})
}

// getEntry handles GET /api/v1/entries/{id}.
func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.entries.Get(r.Context(), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryToResponse(&e, true))
}

// deleteEntry handles DELETE /api/v1/entries/{id}.
func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.entries.Delete(r.Context(), chirouter.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getCrossReferences handles GET /api/v1/entries/{id}/cross-references.
func (s *Server) getCrossReferences(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	start := time.Now()
	related, err := s.crossrefs.Find(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.EngineComputationsTotal.WithLabelValues("crossref").Inc()
	metrics.EngineComputationDuration.WithLabelValues("crossref").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, crossRefResponse{
		SourceID: id,
		Related:  entriesToResponse(related, false),
	})
}

// search handles GET /api/v1/search.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}

	start := time.Now()
	hits, err := s.entries.Search(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.EngineComputationsTotal.WithLabelValues("search").Inc()
	metrics.EngineComputationDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	resp := searchResponse{Query: query, Hits: make([]searchHitResponse, len(hits))}
	for i, h := range hits {
		resp.Hits[i] = searchHitResponse{
			Entry: entryToResponse(&h.Entry, false),
			Score: h.Score,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// getGraph handles GET /api/v1/graph.
func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := graphuc.Request{
		Mode:     domgraph.Mode(q.Get("mode")),
		Category: taxonomy.Category(q.Get("category")),
	}
	if raw := q.Get("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "threshold must be a number")
			return
		}
		req.Threshold = clampThreshold(threshold)
	}
	if raw := q.Get("width"); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "width must be an integer")
			return
		}
		req.Width = width
	}
	if raw := q.Get("height"); raw != "" {
		height, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "height must be an integer")
			return
		}
		req.Height = height
	}

	start := time.Now()
	result, err := s.graphs.Build(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.EngineComputationsTotal.WithLabelValues("graph").Inc()
	metrics.EngineComputationDuration.WithLabelValues("graph").Observe(time.Since(start).Seconds())

	mode := req.Mode
	if mode == "" {
		mode = domgraph.Circular
	}
	threshold := req.Threshold
	if threshold == 0 {
		threshold = domgraph.DefaultThreshold
	}
	writeJSON(w, http.StatusOK, graphToResponse(string(mode), threshold, result))
}

// getStats handles GET /api/v1/stats.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.entries.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

// consultOracle handles POST /api/v1/oracle/consult.
func (s *Server) consultOracle(w http.ResponseWriter, r *http.Request) {
	var req consultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	c, err := s.oracle.Consult(r.Context(), req.Query, req.Context)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, consultationToResponse(c))
}

// generateSigil handles POST /api/v1/oracle/sigil.
func (s *Server) generateSigil(w http.ResponseWriter, r *http.Request) {
	var req sigilRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "prompt is required")
		return
	}

	url, err := s.oracle.Sigil(r.Context(), req.Prompt)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sigilResponse{URL: url})
}

// synthesizeEcho handles POST /api/v1/oracle/echo. Responds with raw MP3.
func (s *Server) synthesizeEcho(w http.ResponseWriter, r *http.Request) {
	var req echoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}

	audio, err := s.oracle.Echo(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// listConsultations handles GET /api/v1/oracle/consultations.
func (s *Server) listConsultations(w http.ResponseWriter, r *http.Request) {
	records, err := s.oracle.Consultations(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]consultationResponse, len(records))
	for i, c := range records {
		out[i] = consultationToResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// getHealth handles GET /health.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToResponse(report, version.Version))
}

// clampThreshold forces the similarity threshold into its valid range.
func clampThreshold(v float64) float64 {
	if v < domgraph.MinThreshold {
		return domgraph.MinThreshold
	}
	if v > domgraph.MaxThreshold {
		return domgraph.MaxThreshold
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEntryNotFound,
		domain.ErrInvalidEntry,
		domain.ErrInvalidLayoutMode,
		domain.ErrOracleNotConfigured,
		domain.ErrOracleProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chimw.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
