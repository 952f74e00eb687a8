// Package site hosts the public Thinkin' Rocks website.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/platform/timeouts"
	siteapp "github.com/thinkinrocks/thinkin.rocks/internal/services/site/app"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/modules"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/observability"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
	sitestatic "github.com/thinkinrocks/thinkin.rocks/internal/services/site/static"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/preview"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/render"
	"go.uber.org/zap"
)

// Config defines startup inputs for the site service.
type Config struct {
	HTTPAddr     string
	Logger       *zap.Logger
	Applications storage.ApplicationStore
	Events       module.EventSource
	Content      module.ContentSource
	Shader       *shader.Store
	Pipeline     render.Pipeline
	MCPEnabled   bool
	Now          func() time.Time
}

// Server hosts the site HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	preview    *preview.Renderer
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module registry. The
// returned renderer keeps the preview surface in step with cfg.Shader and
// must be closed by the caller.
func NewHandler(cfg Config) (http.Handler, *preview.Renderer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := cfg.Shader
	if store == nil {
		store = shader.NewStore()
	}
	pipeline := cfg.Pipeline
	if pipeline == nil {
		pipeline = render.NewSoftware(
			render.WithLogger(logger.Named("render")),
			render.WithTextureLoader(render.NewTextureLoader(&http.Client{Timeout: timeouts.UpstreamRequest})),
		)
	}
	renderer := preview.New(store, pipeline, preview.WithLogger(logger.Named("preview")))

	deps := module.Dependencies{
		Logger:       logger,
		Applications: cfg.Applications,
		Events:       cfg.Events,
		Content:      cfg.Content,
		Shader:       store,
		Preview:      renderer,
		Pipeline:     pipeline,
		MCPEnabled:   cfg.MCPEnabled,
		Now:          cfg.Now,
	}
	h, err := siteapp.Composer{}.Compose(siteapp.ComposeInput{
		Dependencies: deps,
		Modules:      modules.Default(),
	})
	if err != nil {
		renderer.Close()
		return nil, nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(sitestatic.FS))))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), renderer, nil
}

// NewServer validates config and constructs a site server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.Applications == nil {
		return nil, errors.New("application store is required")
	}
	handler, renderer, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose site handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		preview:  renderer,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("site server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("site listening", zap.String("addr", s.httpAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown site http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve site http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.preview != nil {
		s.preview.Close()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
}
