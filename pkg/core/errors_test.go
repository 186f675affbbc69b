package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := Discovery("homebrew", "opus", "brew install opus", fmt.Errorf("%w: empty cellar", ErrPackageNotFound))
	assert.Equal(t, "homebrew opus: package not found: empty cellar", err.Error())

	plain := &Error{Kind: KindParse, Op: "dumping AST", Err: ErrToolNotFound}
	assert.Equal(t, "dumping AST: tool not found", plain.Error())
}

func TestErrorChain(t *testing.T) {
	inner := Discovery("vcpkg", "opus", "set VCPKG_ROOT", ErrEnvNotSet)
	wrapped := fmt.Errorf("locate: %w", inner)

	assert.True(t, errors.Is(wrapped, ErrEnvNotSet))
	assert.Equal(t, "set VCPKG_ROOT", Hint(wrapped))

	var e *Error
	assert.True(t, errors.As(wrapped, &e))
	assert.Equal(t, KindDiscovery, e.Kind)

	assert.Empty(t, Hint(errors.New("plain")))
}
