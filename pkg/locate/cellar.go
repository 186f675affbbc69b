// pkg/locate/cellar.go
package locate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arc-language/opusbind/pkg/core"
	"github.com/arc-language/opusbind/pkg/directive"
	"github.com/arc-language/opusbind/pkg/platform"
)

// DefaultCellarRoot is the Homebrew cellar on Apple silicon
const DefaultCellarRoot = core.DefaultCellarRoot

// Cellar locates the newest installed version of a library in a Homebrew
// cellar laid out as <root>/<name>/<version>/{include,lib}
type Cellar struct {
	Platform platform.Platform
	Root     string
	Logger   zerolog.Logger
}

// Name returns the strategy name
func (c *Cellar) Name() string {
	return KindCellar.String()
}

// Applicable is always true: the cellar is the last resort, and Locate
// explains why it cannot serve other platforms
func (c *Cellar) Applicable() bool {
	return true
}

// Locate picks the lexicographically greatest version directory
func (c *Cellar) Locate(ctx context.Context, name string) (*core.Result, error) {
	if !c.Platform.Is(platform.MacOS, platform.Aarch64) {
		return nil, core.Discovery("homebrew", name,
			fmt.Sprintf("set %s to a vcpkg root with %s installed; the Homebrew fallback is only available on macOS aarch64", PinnedRootEnv, name),
			fmt.Errorf("%w: couldn't find %s, and %s/%s cannot fall back to homebrew",
				core.ErrEnvNotSet, PinnedRootEnv, c.Platform.OS, c.Platform.Arch))
	}

	root := c.Root
	if root == "" {
		root = DefaultCellarRoot
	}
	dir := filepath.Join(root, name)

	versions, err := listVersions(dir)
	if err != nil {
		return nil, core.Discovery("homebrew", name,
			fmt.Sprintf("make sure Homebrew and package %s are installed (brew install %s)", name, name),
			fmt.Errorf("%w: could not read %s: %v", core.ErrPackageNotFound, dir, err))
	}
	if len(versions) == 0 {
		return nil, core.Discovery("homebrew", name,
			fmt.Sprintf("brew install %s", name),
			fmt.Errorf("%w: there's no installed version of %s in %s", core.ErrPackageNotFound, name, root))
	}

	newest := versions[len(versions)-1]
	base := filepath.Join(dir, newest)
	include := filepath.Join(base, "include")
	lib := linkName(name)

	c.Logger.Debug().Strs("versions", versions).Str("selected", newest).Msg("scanned cellar")

	return &core.Result{
		Package: core.Package{
			Name:         name,
			IncludePaths: []string{include},
			LinkLib:      lib,
			LinkSearch:   filepath.Join(base, "lib"),
			Strategy:     c.Name(),
		},
		Directives: []directive.Directive{
			directive.LinkStatic(lib),
			{Kind: directive.LinkSearch, Value: filepath.Join(base, "lib")},
			{Kind: directive.Include, Value: include},
		},
	}, nil
}

// listVersions returns the sorted names of dir's subdirectories. Entries that
// cannot be stat'ed are skipped; only failing to read dir at all is an error.
func listVersions(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil && len(entries) == 0 {
		return nil, err
	}

	var versions []string
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		versions = append(versions, entry.Name())
	}

	sort.Strings(versions)
	return versions, nil
}
