package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"serpscope/crawler"
	"serpscope/search"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

const (
	msgQueryRequired = "Paramètre 'query' requis"
	msgUnavailable   = "Service temporairement indisponible"
)

// Searcher runs a complete search for one query
type Searcher interface {
	RunSearch(ctx context.Context, query string) (*search.SearchResponse, error)
}

// ErrorResponse is the body of every non-200 answer
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// withRequestID tags the request context with a fresh id, echoed in X-Request-ID
func (s *Server) withRequestID(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = crawler.NewRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)
		next(w, r.WithContext(crawler.WithRequestID(r.Context(), requestID)), ps)
	}
}

// ScrapeHandler handles GET /scrape?query=...
func (s *Server) ScrapeHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	ctx := crawler.WithQuery(r.Context(), query)
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}
	logger := crawler.GetContextLogger(ctx, s.logger)

	start := time.Now()
	response, err := s.searcher.RunSearch(ctx, query)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, msgQueryRequired)
			return
		}
		logger.Error("Search failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		writeError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	logger.Info("Search served",
		zap.Int("results", len(response.Results)),
		zap.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusOK, response)
}

// HealthHandler handles GET /health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.Encode(v)
}
