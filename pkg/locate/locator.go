// pkg/locate/locator.go
package locate

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/arc-language/opusbind/pkg/core"
	"github.com/arc-language/opusbind/pkg/env"
	"github.com/arc-language/opusbind/pkg/platform"
	"github.com/arc-language/opusbind/pkg/registry"
)

// Options configures a Locator
type Options struct {
	Config    *core.Config
	Platform  platform.Platform
	LookupEnv func(string) (string, bool) // defaults to os.LookupEnv
	Registry  *registry.Registry          // defaults to the built-in registry
	Run       platform.Runner             // defaults to platform.ExecRunner
	Logger    zerolog.Logger
}

// Locator runs the first applicable strategy of a fixed priority chain
type Locator struct {
	platform   platform.Platform
	strategies []core.Strategy
	logger     zerolog.Logger
}

// New builds the pkg-config → vcpkg → homebrew chain
func New(opts Options) *Locator {
	cfg := opts.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	reg := opts.Registry
	if reg == nil {
		if cfg.RegistryDir != "" {
			reg = registry.NewFromDir(cfg.RegistryDir)
		} else {
			reg = registry.New()
		}
	}

	root, rootSet := lookup(PinnedRootEnv)

	return &Locator{
		platform: opts.Platform,
		logger:   opts.Logger,
		strategies: []core.Strategy{
			&PkgConfig{
				Platform: opts.Platform,
				Enabled:  cfg.LinuxPkgConfig,
				Bin:      cfg.PkgConfigBin,
				Manager:  platform.SystemManager(opts.Platform),
				Registry: reg,
				Run:      opts.Run,
				Logger:   opts.Logger,
			},
			&Pinned{
				Platform: opts.Platform,
				Root:     root,
				Set:      rootSet,
				Logger:   opts.Logger,
			},
			&Cellar{
				Platform: opts.Platform,
				Root:     cfg.CellarRoot,
				Logger:   opts.Logger,
			},
		},
	}
}

// NewWithStrategies builds a Locator over an explicit chain
func NewWithStrategies(p platform.Platform, logger zerolog.Logger, strategies ...core.Strategy) *Locator {
	return &Locator{platform: p, strategies: strategies, logger: logger}
}

// Strategies returns the chain in priority order
func (l *Locator) Strategies() []core.Strategy {
	return l.strategies
}

// Select returns the first applicable strategy
func (l *Locator) Select() (core.Strategy, error) {
	for _, s := range l.strategies {
		if s.Applicable() {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: no discovery strategy applies to %s/%s",
		core.ErrPlatformNotSupported, l.platform.OS, l.platform.Arch)
}

// Locate runs the selected strategy once. Its failure is final: later
// strategies in the chain are not tried.
func (l *Locator) Locate(ctx context.Context, name string) (*core.Result, error) {
	if name == "" {
		return nil, fmt.Errorf("package name is required")
	}

	s, err := l.Select()
	if err != nil {
		return nil, core.Discovery("locate", name, "", err)
	}

	l.logger.Info().Str("package", name).Str("strategy", s.Name()).Msg("locating native library")

	res, err := s.Locate(ctx, name)
	if err != nil {
		return nil, err
	}

	if res.Package.LinkSearch != "" {
		e := env.FromDirectives(l.platform.OS, res.Directives)
		if lib := e.FindStaticLibrary(res.Package.LinkLib); lib == nil {
			ev := l.logger.Warn().
				Str("dir", res.Package.LinkSearch).
				Str("lib", res.Package.LinkLib)
			if shared := e.FindLibrary(res.Package.LinkLib); shared != nil {
				ev = ev.Str("shared", shared.Path)
			}
			ev.Msg("no static archive found in link search directory")
		}
	}

	return res, nil
}
