// Package handler exposes the searcher over HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/cache"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/middleware"
)

// Engine runs a query; *searcher.Searcher implements it.
type Engine interface {
	Execute(query string, limit int) (*searcher.Response, error)
}

// Options carries the optional collaborators of a Handler. Nil fields are
// skipped.
type Options struct {
	Cache        *cache.QueryCache
	Tracker      analytics.Tracker
	Metrics      *metrics.Metrics
	DefaultLimit int
	MaxResults   int
}

type Handler struct {
	engine Engine
	opts   Options
	logger *slog.Logger
}

func New(engine Engine, opts Options) *Handler {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 100
	}
	return &Handler{
		engine: engine,
		opts:   opts,
		logger: slog.Default().With("component", "search-handler"),
	}
}

// Register mounts the search routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /searcher", h.Searcher)
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
}

// Searcher answers GET /searcher?query=... with the bare result array,
// every match included.
func (h *Handler) Searcher(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.run(w, r, r.URL.Query().Get("query"), 0)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, resp.Results)
}

// Search answers GET /api/v1/search?q=...&limit=n with a Response.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	limit := h.opts.DefaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, h.opts.MaxResults)
	}
	resp, ok := h.run(w, r, r.URL.Query().Get("q"), limit)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, query string, limit int) (*searcher.Response, bool) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if strings.TrimSpace(query) == "" {
		h.countQuery("empty_query")
		return &searcher.Response{Query: query, Terms: []string{}, Results: []searcher.Result{}}, true
	}

	var (
		resp     *searcher.Response
		err      error
		cacheHit bool
	)
	cacheStatus := "disabled"
	if h.opts.Cache != nil {
		resp, cacheHit, err = h.opts.Cache.GetOrCompute(ctx, query, limit, func() (*searcher.Response, error) {
			return h.engine.Execute(query, limit)
		})
		cacheStatus = "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
	} else {
		resp, err = h.engine.Execute(query, limit)
	}
	if err != nil {
		h.countQuery("error")
		status := apperrors.HTTPStatusCode(err)
		log.Error("search failed", "query", query, "status", status, "error", err)
		msg := "search failed"
		if status == http.StatusBadRequest {
			msg = "invalid query"
		}
		h.writeError(w, status, msg)
		return nil, false
	}

	latency := time.Since(start)
	outcome := "results"
	eventType := analytics.EventSearch
	if resp.Total == 0 {
		outcome = "zero_result"
		eventType = analytics.EventZeroResult
	}
	h.countQuery(outcome)
	if m := h.opts.Metrics; m != nil {
		m.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
		m.SearchResultsCount.Observe(float64(len(resp.Results)))
	}
	log.Info("search completed",
		"query", query,
		"total_hits", resp.Total,
		"returned", len(resp.Results),
		"cache", cacheStatus,
		"latency_ms", latency.Milliseconds(),
	)
	if h.opts.Tracker != nil {
		h.opts.Tracker.Track(analytics.SearchEvent{
			Type:      eventType,
			Query:     query,
			Terms:     resp.Terms,
			TotalHits: resp.Total,
			Returned:  len(resp.Results),
			LatencyMs: latency.Milliseconds(),
			CacheHit:  cacheHit,
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(ctx),
		})
	}
	return resp, true
}

func (h *Handler) countQuery(outcome string) {
	if h.opts.Metrics != nil {
		h.opts.Metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	}
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.opts.Cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.opts.Cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": strconv.FormatFloat(hitRate, 'f', 1, 64) + "%",
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.opts.Cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.opts.Cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
