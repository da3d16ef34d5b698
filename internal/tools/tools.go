//go:build tools

// Package tools pins the code-generation tools this repo's go:generate
// directives depend on (proctab.State and swap.ErrKind stringers), so
// `go mod tidy` keeps golang.org/x/tools in go.sum even though no
// regular build imports it.
package tools

import (
	_ "golang.org/x/tools/cmd/stringer"
)
