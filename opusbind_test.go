package opusbind

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/opusbind/pkg/bindgen"
	"github.com/arc-language/opusbind/pkg/directive"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func stubParser(t *testing.T, wantInclude string) bindgen.Parser {
	return bindgen.ParserFunc(func(_ context.Context, req bindgen.Request) (*bindgen.Declarations, error) {
		assert.Equal(t, []string{wantInclude}, req.IncludePaths)
		return &bindgen.Declarations{
			Functions: []bindgen.Function{{
				Name:   "opus_get_version_string",
				Result: "const char *",
			}},
			Macros: []bindgen.Macro{{Name: "OPUS_OK", Value: 0}},
		}, nil
	})
}

type project struct {
	dir    string
	vcpkg  string
	config *Config
}

func newProject(t *testing.T) project {
	t.Helper()
	dir := t.TempDir()
	vcpkg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(vcpkg, "installed", "x64-osx", "include"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(vcpkg, "installed", "x64-osx", "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "opus_ffi.h"), []byte("#include <opus.h>\n"), 0644))

	cfg := DefaultConfig()
	cfg.Header = filepath.Join(dir, "opus_ffi.h")
	cfg.Package = "ffi"
	return project{dir: dir, vcpkg: vcpkg, config: cfg}
}

func TestRunWithPinnedInstall(t *testing.T) {
	p := newProject(t)
	include := filepath.Join(p.vcpkg, "installed", "x64-osx", "include")

	var stdout bytes.Buffer
	b, err := New(Options{
		Config:    p.config,
		LookupEnv: envMap(map[string]string{"GOOS": "darwin", "GOARCH": "amd64", "VCPKG_ROOT": p.vcpkg}),
		Parser:    stubParser(t, include),
		Stdout:    &stdout,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, "x64-osx", b.Platform().Triple())

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vcpkg", report.Located.Package.Strategy)
	assert.Equal(t, filepath.Join(p.dir, "opus_ffi.go"), report.Output.Path)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{
		"opusbind:info=x64-osx",
		"opusbind:link-lib=static=opus",
		"opusbind:link-search=" + filepath.Join(p.vcpkg, "installed", "x64-osx", "lib"),
		"opusbind:include=" + include,
		"opusbind:rerun-if-changed=" + p.config.Header,
		"opusbind:rerun-if-changed=" + include,
	}, lines)

	data, err := os.ReadFile(report.Output.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-I"+include)
	assert.Contains(t, string(data), "-lopus")
	assert.Contains(t, string(data), "func opus_get_version_string() *C.char {")

	stale, _, err := b.Check()
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestRunDiscoveryFailureWritesNothing(t *testing.T) {
	p := newProject(t)
	p.config.CellarRoot = filepath.Join(p.dir, "Cellar")

	var stdout bytes.Buffer
	b, err := New(Options{
		Config:    p.config,
		LookupEnv: envMap(map[string]string{"GOOS": "darwin", "GOARCH": "arm64"}),
		Parser: bindgen.ParserFunc(func(context.Context, bindgen.Request) (*bindgen.Declarations, error) {
			t.Fatal("parser must not run after a discovery failure")
			return nil, nil
		}),
		Stdout: &stdout,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	_, err = b.Run(context.Background())
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ErrorKind("discovery"), e.Kind)
	assert.Empty(t, stdout.String())

	_, statErr := os.Stat(filepath.Join(p.dir, "opus_ffi.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunUnsupportedPlatform(t *testing.T) {
	p := newProject(t)

	b, err := New(Options{
		Config:    p.config,
		LookupEnv: envMap(map[string]string{"GOOS": "windows", "GOARCH": "amd64"}),
		Parser:    stubParser(t, ""),
		Stdout:    &bytes.Buffer{},
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	_, err = b.Run(context.Background())
	assert.True(t, errors.Is(err, ErrEnvNotSet))
	assert.Contains(t, Hint(err), "VCPKG_ROOT")
}

func TestLocateOnlyEmitsDirectives(t *testing.T) {
	p := newProject(t)

	var stdout bytes.Buffer
	b, err := New(Options{
		Config:    p.config,
		LookupEnv: envMap(map[string]string{"GOOS": "darwin", "GOARCH": "amd64", "VCPKG_ROOT": p.vcpkg}),
		Parser:    stubParser(t, ""),
		Stdout:    &stdout,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	res, err := b.Locate(context.Background())
	require.NoError(t, err)
	assert.Len(t, directive.Filter(res.Directives, directive.Include), 1)
	assert.Contains(t, stdout.String(), "opusbind:include=")

	_, statErr := os.Stat(filepath.Join(p.dir, "opus_ffi.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Header = ""
	_, err := New(Options{Config: cfg})
	assert.Error(t, err)
}
