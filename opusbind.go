// opusbind.go

// Package opusbind locates libopus on the build host and generates cgo
// bindings for it. It is normally driven by go generate through
// cmd/opusbind.
package opusbind

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arc-language/opusbind/pkg/bindgen"
	"github.com/arc-language/opusbind/pkg/core"
	"github.com/arc-language/opusbind/pkg/directive"
	"github.com/arc-language/opusbind/pkg/env"
	"github.com/arc-language/opusbind/pkg/locate"
	"github.com/arc-language/opusbind/pkg/platform"
	"github.com/arc-language/opusbind/pkg/registry"
)

// Re-export types for convenience
type (
	Config       = core.Config
	Package      = core.Package
	Result       = core.Result
	Platform     = platform.Platform
	Directive    = directive.Directive
	Declarations = bindgen.Declarations
	Parser       = bindgen.Parser
	// RegistryEntry maps a library to its dev package per system manager
	RegistryEntry = registry.Entry
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Options configures a Builder. Zero values select the production behaviour.
type Options struct {
	Config    *core.Config
	LookupEnv func(string) (string, bool) // defaults to os.LookupEnv
	Parser    bindgen.Parser              // defaults to the clang front end
	Run       platform.Runner             // runs pkg-config and clang
	Stdout    io.Writer                   // directive side channel, defaults to os.Stdout
	Logger    zerolog.Logger
}

// Builder runs the locate → generate pipeline for one build
type Builder struct {
	config    *core.Config
	platform  platform.Platform
	locator   *locate.Locator
	generator *bindgen.Generator
	emitter   *directive.Emitter
	logger    zerolog.Logger
}

// Report describes a completed build
type Report struct {
	Platform platform.Platform
	Located  *core.Result
	Output   *bindgen.Output
}

// New creates a Builder for the target platform named by the environment
func New(opts Options) (*Builder, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	plat := platform.Detect()
	lookup := opts.LookupEnv
	if lookup != nil {
		plat = platform.FromEnv(lookup)
	} else {
		lookup = os.LookupEnv
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	parser := opts.Parser
	if parser == nil {
		parser = &bindgen.ClangParser{Bin: cfg.Clang, Run: opts.Run, Logger: opts.Logger}
	}

	return &Builder{
		config:   cfg,
		platform: plat,
		locator: locate.New(locate.Options{
			Config:    cfg,
			Platform:  plat,
			LookupEnv: lookup,
			Run:       opts.Run,
			Logger:    opts.Logger,
		}),
		generator: &bindgen.Generator{
			Parser:     parser,
			MacroRules: bindgen.DefaultMacroRules,
			Logger:     opts.Logger,
		},
		emitter: directive.NewEmitter(stdout),
		logger:  opts.Logger,
	}, nil
}

// Platform returns the target platform
func (b *Builder) Platform() platform.Platform {
	return b.platform
}

// Locator returns the discovery chain
func (b *Builder) Locator() *locate.Locator {
	return b.locator
}

// Locate finds the configured library and writes its directives
func (b *Builder) Locate(ctx context.Context) (*core.Result, error) {
	res, err := b.locator.Locate(ctx, b.config.Library)
	if err != nil {
		return nil, err
	}
	if err := b.emitter.Emit(res.Directives...); err != nil {
		return nil, fmt.Errorf("writing directives: %w", err)
	}
	return res, nil
}

// Run locates the library, generates the bindings and writes every
// directive. Any failure aborts the build.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	b.logger.Debug().
		Str("platform", b.platform.String()).
		Str("triple", b.platform.Triple()).
		Msg("starting build")

	res, err := b.Locate(ctx)
	if err != nil {
		return nil, err
	}

	e := env.FromDirectives(b.platform.OS, res.Directives)
	e.AddIncludePaths(res.IncludePaths()...)

	job := bindgen.Job{
		Header:           b.config.Header,
		IncludePaths:     res.IncludePaths(),
		Output:           b.output(),
		Package:          b.config.Package,
		Flags:            e.CompilerFlags(),
		ClangArgs:        b.config.ClangArgs,
		GenerateComments: b.config.GenerateComments,
	}

	// announced before generating so a failed run still names its inputs
	if err := b.emitter.Emit(job.Triggers()...); err != nil {
		return nil, fmt.Errorf("writing directives: %w", err)
	}

	out, err := b.generator.Generate(ctx, job)
	if err != nil {
		return nil, err
	}

	return &Report{Platform: b.platform, Located: res, Output: out}, nil
}

// Check reports whether the configured artifact needs regenerating
func (b *Builder) Check() (bool, []string, error) {
	return bindgen.Stale(b.output())
}

// output is the artifact path. A relative output lands next to the header
// unless it names a directory of its own.
func (b *Builder) output() string {
	out := b.config.Output
	if filepath.IsAbs(out) || filepath.Dir(out) != "." {
		return out
	}
	return filepath.Join(filepath.Dir(b.config.Header), out)
}
