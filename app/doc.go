// Package app assembles the babelink backend: its configuration, the
// capability services behind each command and the bootstrap application
// that serves them.
package app
