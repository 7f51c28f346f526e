package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"chall/internal/catalog"
	"chall/internal/fragment"
	"chall/internal/prefs"
	"chall/internal/surface"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Config struct {
	Addr           string
	PageSize       int
	Lang           string
	Sections       map[surface.Region]string
	Preload        []string
	AllowedOrigins []string
}

type Server struct {
	cfg        Config
	entries    []catalog.Entry
	prefs      *prefs.Store
	fetcher    fragment.Fetcher
	cache      *fragment.Cache
	logger     *zap.Logger
	tmpl       *template.Template
	fragments  map[string]bool
	router     chi.Router
	httpServer *http.Server
}

type Option func(*Server)

// WithFragments enables fragment sections and the /fragments endpoint.
func WithFragments(f fragment.Fetcher) Option {
	return func(s *Server) { s.fetcher = f }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(cfg Config, entries []catalog.Entry, prefsStore *prefs.Store, opts ...Option) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = catalog.DefaultPageSize
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		cfg:     cfg,
		entries: entries,
		prefs:   prefsStore,
		cache:   fragment.NewCache(),
		logger:  zap.NewNop(),
		tmpl:    tmpl,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fragments = fragmentPaths(cfg)
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// fragmentPaths is the set of paths the fragment endpoint will serve: the
// configured sections and preload list.
func fragmentPaths(cfg Config) map[string]bool {
	paths := make(map[string]bool, len(cfg.Sections)+len(cfg.Preload))
	for _, p := range cfg.Sections {
		paths[strings.TrimPrefix(p, "/")] = true
	}
	for _, p := range cfg.Preload {
		paths[strings.TrimPrefix(p, "/")] = true
	}
	return paths
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handleIndex)
	r.Post("/theme", s.handleTheme)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "HX-Request", "HX-Current-URL", "HX-Target"},
			MaxAge:         300,
		}))
		r.Get("/fragments/*", s.handleFragment)
	})

	return r
}

func (s *Server) Handler() http.Handler { return s.router }

// Cache is the fragment cache shared by every request.
func (s *Server) Cache() *fragment.Cache { return s.cache }

// Preload warms the fragment cache. It is a no-op without fragments.
func (s *Server) Preload(ctx context.Context) <-chan struct{} {
	if s.fetcher == nil || len(s.cfg.Preload) == 0 {
		done := make(chan struct{})
		close(done)
		return done
	}
	loader := s.newLoader(surface.NewMemory())
	return loader.Preload(ctx, s.cfg.Preload)
}

func (s *Server) Start() error {
	s.logger.Info("listening", zap.String("addr", s.cfg.Addr), zap.Int("challenges", len(s.entries)))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) newLoader(surf surface.Surface) *fragment.Loader {
	return fragment.NewLoader(s.fetcher, surf,
		fragment.WithCache(s.cache),
		fragment.WithLogger(s.logger))
}
