// pkg/registry/registry.go
package registry

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/BurntSushi/toml"
)

//go:embed deps
var builtin embed.FS

// Entry represents a single deps/<name>/index.toml file
type Entry struct {
	Name     string            `toml:"name"`
	Libs     []string          `toml:"libs"`
	Backends map[string]string `toml:"backends"`
}

// Registry provides lookup of per-package-manager names for a library
type Registry struct {
	fsys fs.FS
}

// New returns the registry compiled into the binary
func New() *Registry {
	sub, err := fs.Sub(builtin, "deps")
	if err != nil {
		panic(err)
	}
	return &Registry{fsys: sub}
}

// NewFromDir creates a Registry reading <dir>/<name>/index.toml files
func NewFromDir(dir string) *Registry {
	return &Registry{fsys: os.DirFS(dir)}
}

// Resolve takes a canonical package name and a backend,
// returns the backend-specific package name.
// e.g. Resolve("opus", "apt") -> "libopus-dev"
func (r *Registry) Resolve(name string, backend string) (string, error) {
	entry, err := r.Load(name)
	if err != nil {
		return "", err
	}

	pkgName, ok := entry.Backends[backend]
	if !ok {
		return "", fmt.Errorf("registry: package '%s' has no entry for backend '%s'", name, backend)
	}

	return pkgName, nil
}

// Load reads and parses <name>/index.toml
func (r *Registry) Load(name string) (*Entry, error) {
	p := path.Join(name, "index.toml")

	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, statErr := fs.Stat(r.fsys, name); statErr == nil {
				return nil, fmt.Errorf("registry: found package '%s' directory, but missing index.toml", name)
			}
		}
		return nil, fmt.Errorf("registry: package '%s' not found", name)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", name, err)
	}

	return &entry, nil
}

// DevPackage names the system package that ships name's headers for the
// given package manager, falling back to the "<name>-dev" convention
func (r *Registry) DevPackage(name, backend string) string {
	if backend != "" {
		if pkg, err := r.Resolve(name, backend); err == nil {
			return pkg
		}
	}
	return name + "-dev"
}
