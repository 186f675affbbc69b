// pkg/core/interface.go
package core

import (
	"context"

	"github.com/arc-language/opusbind/pkg/directive"
)

// Strategy defines the common interface for all package discovery strategies
type Strategy interface {
	// Name returns the strategy name (e.g., "pkg-config", "vcpkg")
	Name() string

	// Applicable reports whether this strategy is the one to run for the
	// current platform and configuration
	Applicable() bool

	// Locate finds the named library. It never writes directives itself;
	// they are returned in the Result.
	Locate(ctx context.Context, name string) (*Result, error)
}

// Result is what a strategy produces
type Result struct {
	Package    Package
	Directives []directive.Directive
}

// IncludePaths is a shorthand for r.Package.IncludePaths
func (r *Result) IncludePaths() []string {
	return r.Package.IncludePaths
}
