package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spacesedan/tubepulse/internal/models"
)

type Analyzer interface {
	AnalyzeVideo(ctx context.Context, videoID string) (*models.AnalysisResult, error)
	AnalyzeTheme(ctx context.Context, theme string) (*models.AnalysisResult, error)
}

type QuotaReader interface {
	QuotaUsage(ctx context.Context, api string) (int64, error)
}

type Options struct {
	Port               int
	CORSAllowedOrigins []string
	// Optional.
	Quota             QuotaReader
	SummarizerHealthy *atomic.Bool
}

type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	analyzer   Analyzer
	opts       Options
}

func New(analyzer Analyzer, opts Options) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		analyzer: analyzer,
		opts:     opts,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	origins := s.opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/quota", s.handleQuota)
		r.Route("/comments", func(r chi.Router) {
			r.Post("/url", s.handleAnalyzeVideo)
			r.Post("/theme", s.handleAnalyzeTheme)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	slog.Info("[Server] Listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("[Server] Shutting down...")
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		slog.Info("[Server] Request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Duration("elapsed", time.Since(start)))
	})
}
