package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/babelink/auth"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/server/endpoint"
	"github.com/kbukum/babelink/server/middleware"
)

// drainTimeout bounds Stop; long OCR or speech requests still running after
// it are cut off.
const drainTimeout = 5 * time.Second

// Server is the local command server: a gin engine with the standard
// middleware installed, served over HTTP/1.1 and h2c.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
	validator  auth.TokenValidator

	mu       sync.Mutex
	listener net.Listener
}

// New creates a server from an already defaulted config. When cfg.Auth is
// enabled the token validator is built here.
func New(cfg Config, log *logger.Logger) (*Server, error) {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	validator, err := auth.NewValidatorFromConfig(cfg.Auth)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		engine:    engine,
		config:    cfg,
		log:       log.WithComponent("server"),
		validator: validator,
	}
	engine.Use(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.BodySizeLimit(cfg.MaxBodySize),
		middleware.RequestLogger(s.log),
	)

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(cfg.IdleTimeout) * time.Second,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h2c.NewHandler(engine, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s, nil
}

// GinEngine returns the underlying gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the h2c-wrapped engine (used by tests with httptest).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Protected returns a route group that requires a bearer token when auth
// is enabled and is open otherwise.
func (s *Server) Protected(path string) *gin.RouterGroup {
	g := s.engine.Group(path)
	if s.validator != nil {
		g.Use(middleware.Auth(s.validator))
	}
	return g
}

// AuthEnabled reports whether protected routes require a token.
func (s *Server) AuthEnabled() bool {
	return s.validator != nil
}

// RegisterDefaultEndpoints registers /health and /info.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/info", endpoint.Info(serviceName))
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server stopped serving", logger.MergeWithError(nil, err))
		}
	}()

	s.log.Info("command server listening", logger.Fields(
		"addr", ln.Addr().String(),
		"auth", s.config.Auth.Describe(),
	))
	return nil
}

// Stop drains in-flight requests until ctx ends or drainTimeout passes,
// whichever comes first.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("command server draining")

	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
