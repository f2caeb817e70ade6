package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Server represents the API server
type Server struct {
	searcher       Searcher
	requestTimeout time.Duration
	logger         *zap.Logger
	httpServer     *http.Server
}

// NewServer creates a new API server
func NewServer(searcher Searcher, port int, requestTimeout time.Duration, logger *zap.Logger) *Server {
	s := &Server{
		searcher:       searcher,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
	s.httpServer = &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes of the API
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/scrape", s.withRequestID(s.ScrapeHandler))
	router.GET("/health", s.HealthHandler)

	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		s.logger.Error("Handler panicked",
			zap.String("path", r.URL.Path),
			zap.Any("panic", v),
			zap.Stack("stack"))
		writeError(w, http.StatusServiceUnavailable, msgUnavailable)
	}

	return router
}

// Start starts the API server
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
