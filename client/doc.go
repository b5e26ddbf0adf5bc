// Package client calls a running babelink backend over its command server.
// babelinkctl is built on it; the desktop front-end speaks the same protocol.
package client
