// Package util holds small helpers shared by the babelink packages: size
// parsing for configuration, secret masking and text previews for logs.
package util
