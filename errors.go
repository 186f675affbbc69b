// errors.go
package opusbind

import "github.com/arc-language/opusbind/pkg/core"

var (
	// ErrPackageNotFound indicates the library was not found by the active strategy
	ErrPackageNotFound = core.ErrPackageNotFound

	// ErrPlatformNotSupported indicates no strategy applies to the target
	ErrPlatformNotSupported = core.ErrPlatformNotSupported

	// ErrEnvNotSet indicates a required environment variable is missing
	ErrEnvNotSet = core.ErrEnvNotSet

	// ErrToolNotFound indicates pkg-config or clang is missing
	ErrToolNotFound = core.ErrToolNotFound

	// ErrNoDeclarations indicates the header produced nothing to bind
	ErrNoDeclarations = core.ErrNoDeclarations
)

// Error wraps an error with additional context
type Error = core.Error

// ErrorKind classifies failures
type ErrorKind = core.ErrorKind

// Hint returns the remediation text carried by err, if any
func Hint(err error) string {
	return core.Hint(err)
}
