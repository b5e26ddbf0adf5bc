// Package permission reports which OS permissions the desktop app holds.
//
// Only macOS screen recording is actually queried, by reading the TCC
// database with sqlite3. Every other flag is assumed granted, and each flag
// carries its Provenance so callers can tell the two apart.
package permission
