// pkg/locate/pinned.go
package locate

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arc-language/opusbind/pkg/core"
	"github.com/arc-language/opusbind/pkg/directive"
	"github.com/arc-language/opusbind/pkg/platform"
)

// Pinned locates a library inside a vcpkg installation. The
// <root>/installed/<triple>/{include,lib} layout is vcpkg's and must match
// exactly.
type Pinned struct {
	Platform platform.Platform
	Root     string // VCPKG_ROOT
	Set      bool   // VCPKG_ROOT is present, even if empty
	Logger   zerolog.Logger
}

// Name returns the strategy name
func (p *Pinned) Name() string {
	return KindPinned.String()
}

// Applicable reports whether VCPKG_ROOT was provided. An empty value still
// counts; only an absent variable hands over to the cellar.
func (p *Pinned) Applicable() bool {
	return p.Set || p.Root != ""
}

// Locate computes the triple directory and returns its include directory
func (p *Pinned) Locate(ctx context.Context, name string) (*core.Result, error) {
	triple := p.Platform.Triple()
	base := filepath.Join(p.Root, "installed", triple)
	include := filepath.Join(base, "include")
	lib := linkName(name)

	p.Logger.Debug().Str("triple", triple).Str("base", base).Msg("using vcpkg installation")

	return &core.Result{
		Package: core.Package{
			Name:         name,
			IncludePaths: []string{include},
			LinkLib:      lib,
			LinkSearch:   filepath.Join(base, "lib"),
			Strategy:     p.Name(),
		},
		Directives: []directive.Directive{
			{Kind: directive.Info, Value: triple},
			directive.LinkStatic(lib),
			{Kind: directive.LinkSearch, Value: filepath.Join(base, "lib")},
			{Kind: directive.Include, Value: include},
		},
	}, nil
}
