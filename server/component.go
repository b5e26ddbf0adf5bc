package server

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/babelink/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*ServerComponent)(nil)
	_ component.Describable   = (*ServerComponent)(nil)
	_ component.RouteProvider = (*ServerComponent)(nil)
)

// ServerComponent runs a Server under the application lifecycle.
type ServerComponent struct {
	server *Server
}

// NewComponent wraps s.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

func (sc *ServerComponent) Name() string { return componentName }

func (sc *ServerComponent) Start(ctx context.Context) error { return sc.server.Start(ctx) }

func (sc *ServerComponent) Stop(ctx context.Context) error { return sc.server.Stop(ctx) }

// Health is unhealthy until the listener is bound.
func (sc *ServerComponent) Health(context.Context) component.Health {
	sc.server.mu.Lock()
	bound := sc.server.listener != nil
	sc.server.mu.Unlock()

	h := component.Health{Name: componentName, Status: component.StatusHealthy}
	if !bound {
		h.Status = component.StatusUnhealthy
		h.Message = "command server not listening"
	}
	return h
}

// Describe feeds the startup summary.
func (sc *ServerComponent) Describe() component.Description {
	cfg := sc.server.config
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s auth=%s", sc.server.Addr(), cfg.Auth.Describe()),
		Port:    cfg.Port,
	}
}

// Routes lists the registered routes for the startup summary: command
// routes before /health and /info, then by path and method.
func (sc *ServerComponent) Routes() []component.Route {
	infos := sc.server.engine.Routes()
	slices.SortFunc(infos, func(a, b gin.RouteInfo) int {
		return cmp.Or(
			cmpBool(systemPaths[a.Path], systemPaths[b.Path]),
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(methodOrder(a.Method), methodOrder(b.Method)),
		)
	})

	routes := make([]component.Route, len(infos))
	for i, r := range infos {
		routes[i] = component.Route{Method: r.Method, Path: r.Path, Handler: formatHandlerName(r.Handler)}
	}
	return routes
}

// cmpBool orders false before true.
func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
