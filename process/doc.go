// Package process runs the external tools babelink wraps (screencapture,
// tesseract, say, espeak, PowerShell, sqlite3, system_profiler).
//
// Arguments are passed as a vector, never through a shell. Every run can be
// bounded by a timeout; on expiry the child's process group receives SIGTERM
// and, after a grace period, SIGKILL. Failures come back as AppErrors so
// callers never mistake a failed tool for an empty success.
package process
