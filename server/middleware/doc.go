// Package middleware holds the gin middleware of the command server.
//
// Server installs them with engine.Use, so they also run for the 404 and
// 405 answers gin produces for unknown routes:
//
//	engine.Use(
//	    middleware.Recovery(log),
//	    middleware.RequestID(),
//	    middleware.CORS(cfg.CORS),
//	    middleware.BodySizeLimit(cfg.MaxBodySize),
//	    middleware.RequestLogger(log),
//	)
//
// Auth is installed per route group on the routes that need a token.
package middleware
