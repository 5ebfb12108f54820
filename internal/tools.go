//go:build tools
// +build tools

// Package tools declares Go tool dependencies so `go mod tidy` doesn't prune
// them; none of these are imported by the emulator itself.
package tools

import (
	_ "golang.org/x/lint/golint"
	_ "golang.org/x/tools/cmd/stringer"
)
