package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/cognito-gateway/logger"
	"github.com/kbukum/cognito-gateway/observability"
	"github.com/kbukum/cognito-gateway/server/endpoint"
	"github.com/kbukum/cognito-gateway/server/middleware"
)

// Server is an HTTP server backed by Gin. Requests pass through the
// net/http middleware chain (request id, logging, CORS, body limit) before
// reaching the engine.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	handler    http.Handler
	config     Config
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a new Server. Gin-level middleware is not applied until
// ApplyMiddleware is called.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	mux := http.NewServeMux()
	mux.Handle("/", engine)

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(&cfg.CORS),
		middleware.BodySizeLimit(cfg.MaxBodySize),
	)
	handler := chain(mux)

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(handler, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		mux:        mux,
		handler:    handler,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the full middleware-wrapped handler. Useful in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Handle mounts an http.Handler at the given pattern on the root ServeMux,
// beside the Gin engine.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// ApplyMiddleware installs the Gin-level stack: panic recovery, request
// metrics and the error boundary. metrics may be nil.
func (s *Server) ApplyMiddleware(metrics *observability.Metrics) {
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.Metrics(metrics))
	s.engine.Use(middleware.ErrorBoundary(s.log))
}

// RegisterDefaultEndpoints registers <basePath>/health and <basePath>/info.
func (s *Server) RegisterDefaultEndpoints(basePath, serviceName string, checker endpoint.HealthChecker) {
	g := s.engine.Group(basePath)
	g.GET("/health", endpoint.Health(serviceName, checker))
	g.GET("/info", endpoint.Info(serviceName))
}
