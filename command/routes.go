package command

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/babelink/auth/authctx"
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/observability"
	"github.com/kbukum/babelink/server"
)

// RegisterRoutes publishes the dispatcher: POST /invoke/:command behind the
// server's auth guard and GET /commands.
func (d *Dispatcher) RegisterRoutes(s *server.Server) {
	s.Protected("/invoke").POST("/:command", d.invoke)
	s.GinEngine().GET("/commands", d.list)
}

func (d *Dispatcher) invoke(c *gin.Context) {
	name := c.Param("command")
	ctx := c.Request.Context()
	ctx, inv := observability.StartInvocation(ctx, d.service, name, logger.RequestIDFromContext(ctx), d.metrics)
	if caller := authctx.Subject(ctx); caller != "" {
		inv.SetCaller(caller)
	}

	result, err := d.invokeBody(ctx, c, name)
	inv.End(ctx, err)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, result)
}

func (d *Dispatcher) invokeBody(ctx context.Context, c *gin.Context, name string) (any, error) {
	body, err := c.GetRawData()
	if err != nil {
		if tooLarge := (*http.MaxBytesError)(nil); stderrors.As(err, &tooLarge) {
			e := errors.InvalidInput("body",
				fmt.Sprintf("request body exceeds %d bytes; raise server.max_body_size", tooLarge.Limit))
			e.HTTPStatus = http.StatusRequestEntityTooLarge
			return nil, e.WithCause(err)
		}
		return nil, errors.DecodeFailure("request body", err)
	}
	return d.Invoke(ctx, name, json.RawMessage(body))
}

func (d *Dispatcher) list(c *gin.Context) {
	server.RespondOK(c, d.Commands())
}
