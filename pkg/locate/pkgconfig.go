// pkg/locate/pkgconfig.go
package locate

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arc-language/opusbind/pkg/core"
	"github.com/arc-language/opusbind/pkg/directive"
	"github.com/arc-language/opusbind/pkg/platform"
	"github.com/arc-language/opusbind/pkg/registry"
)

// PkgConfig locates a library through the system pkg-config registry
type PkgConfig struct {
	Platform platform.Platform
	Enabled  bool   // linux_pkg_config
	Bin      string // pkg-config executable
	Manager  string // system package manager, for hints
	Registry *registry.Registry
	Run      platform.Runner
	Logger   zerolog.Logger
}

// Name returns the strategy name
func (p *PkgConfig) Name() string {
	return KindPkgConfig.String()
}

// Applicable reports whether pkg-config support is enabled on linux
func (p *PkgConfig) Applicable() bool {
	return p.Enabled && p.Platform.OS == platform.Linux
}

// Locate asks pkg-config for name's include directories. Linking is left to
// cgo's own "#cgo pkg-config" handling, so no link directives are returned.
func (p *PkgConfig) Locate(ctx context.Context, name string) (*core.Result, error) {
	bin := p.Bin
	if bin == "" {
		bin = "pkg-config"
	}
	run := p.Run
	if run == nil {
		run = platform.ExecRunner
	}

	p.Logger.Debug().Str("package", name).Str("bin", bin).Msg("probing pkg-config")

	if _, err := run(ctx, bin, "--exists", name); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, core.Discovery("pkg-config", name,
				fmt.Sprintf("install pkg-config or disable linux_pkg_config (looked for %q)", bin),
				fmt.Errorf("%w: %v", core.ErrToolNotFound, err))
		}
		return nil, core.Discovery("pkg-config", name, p.hint(name),
			fmt.Errorf("%w: %v", core.ErrPackageNotFound, err))
	}

	out, err := run(ctx, bin, "--cflags-only-I", name)
	if err != nil {
		return nil, core.Discovery("pkg-config", name, p.hint(name),
			fmt.Errorf("reading cflags: %w", err))
	}

	includes := parseIncludeFlags(string(out))
	p.Logger.Debug().Strs("include", includes).Msg("pkg-config include paths")

	return &core.Result{
		Package: core.Package{
			Name:         name,
			IncludePaths: includes,
			Strategy:     p.Name(),
		},
		Directives: []directive.Directive{
			{Kind: directive.PkgConfig, Value: name},
		},
	}, nil
}

func (p *PkgConfig) hint(name string) string {
	dev := name + "-dev"
	if p.Registry != nil {
		dev = p.Registry.DevPackage(name, p.Manager)
	}
	return fmt.Sprintf("unable to find '%s' development headers with pkg-config (linux_pkg_config is enabled). "+
		"Try installing '%s' from your system package manager.", name, dev)
}

// parseIncludeFlags extracts the directories of -I flags
func parseIncludeFlags(cflags string) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, field := range strings.Fields(cflags) {
		dir, ok := strings.CutPrefix(field, "-I")
		if !ok || dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}
