// Package server is the local HTTP transport for the command backend: a gin
// engine served over HTTP/1.1 and h2c, bound to loopback by default.
//
// The engine carries the server/middleware handlers (recovery, request id,
// CORS for the desktop webview, body size limit, request logging), which
// also cover gin's 404 and 405 answers. Routes obtained from Protected
// additionally require a bearer token when auth is configured.
//
// Built-in endpoints (server/endpoint):
//
//   - GET /health  component health, including external tool availability
//   - GET /info    version and build information
package server
