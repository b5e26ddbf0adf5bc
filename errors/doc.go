// Package errors provides the closed error taxonomy shared by every babelink
// command. Each failure is an *AppError carrying a machine-readable code, an
// HTTP status for the command server and a retryable flag.
package errors
