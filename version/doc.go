// Package version exposes build information set through -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/babelink/version.Version=1.2.0"
package version
