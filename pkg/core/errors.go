// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPackageNotFound indicates the library could not be found by the active strategy
	ErrPackageNotFound = errors.New("package not found")

	// ErrPlatformNotSupported indicates the strategy cannot run on this platform
	ErrPlatformNotSupported = errors.New("platform not supported")

	// ErrEnvNotSet indicates a required environment variable is missing
	ErrEnvNotSet = errors.New("environment variable not set")

	// ErrToolNotFound indicates an external tool (pkg-config, clang) is not in PATH
	ErrToolNotFound = errors.New("tool not found")

	// ErrNoDeclarations indicates the header produced nothing to bind
	ErrNoDeclarations = errors.New("no usable declarations")
)

// ErrorKind classifies failures
type ErrorKind string

const (
	KindDiscovery  ErrorKind = "discovery"
	KindFilesystem ErrorKind = "filesystem"
	KindParse      ErrorKind = "parse"
	KindGenerate   ErrorKind = "generate"
)

// Error wraps an error with additional context
type Error struct {
	Kind    ErrorKind // Failure class
	Op      string    // Operation that failed
	Package string    // Package name if applicable
	Hint    string    // Remediation text shown to the user
	Err     error     // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Discovery builds a discovery failure for a package
func Discovery(op, pkg, hint string, err error) *Error {
	return &Error{Kind: KindDiscovery, Op: op, Package: pkg, Hint: hint, Err: err}
}

// Hint returns the remediation text carried anywhere in err's chain
func Hint(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Hint
	}
	return ""
}
