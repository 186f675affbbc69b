// pkg/env/library.go
package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/opusbind/pkg/directive"
)

// FromDirectives builds the Environment described by a strategy's directives
func FromDirectives(goos string, ds []directive.Directive) *Environment {
	e := &Environment{OS: goos}

	for _, d := range ds {
		switch d.Kind {
		case directive.Include:
			e.IncludePaths = appendUnique(e.IncludePaths, d.Value)
		case directive.LinkSearch:
			e.LibraryPaths = appendUnique(e.LibraryPaths, d.Value)
		case directive.LinkLib:
			lib := d.Value
			if rest, ok := strings.CutPrefix(lib, "static="); ok {
				lib = rest
				e.Static = true
			}
			e.LinkLibs = appendUnique(e.LinkLibs, lib)
		case directive.PkgConfig:
			e.PkgConfig = appendUnique(e.PkgConfig, d.Value)
		}
	}

	return e
}

// AddIncludePaths appends header directories not already present
func (e *Environment) AddIncludePaths(paths ...string) {
	for _, p := range paths {
		e.IncludePaths = appendUnique(e.IncludePaths, p)
	}
}

// FindStaticLibrary searches specifically for static libraries (.a, .lib)
func (e *Environment) FindStaticLibrary(name string) *Library {
	for _, dir := range e.LibraryPaths {
		for _, ext := range GetStaticLibraryExtensions(e.OS) {
			for _, filename := range libraryFileNames(name, ext) {
				fullPath := filepath.Join(dir, filename)
				if fileExists(fullPath) {
					return &Library{
						Name:     name,
						Path:     fullPath,
						Type:     ext,
						IsStatic: true,
					}
				}
			}
		}
	}

	return nil
}

// FindLibrary searches for a specific library by name, static or shared.
// Versioned shared objects (libopus.so.0) match too.
func (e *Environment) FindLibrary(name string) *Library {
	for _, dir := range e.LibraryPaths {
		for _, ext := range GetLibraryExtensions(e.OS) {
			for _, filename := range libraryFileNames(name, ext) {
				fullPath := filepath.Join(dir, filename)
				if fileExists(fullPath) {
					return &Library{
						Name:     name,
						Path:     fullPath,
						Type:     ext,
						IsStatic: ext == ".a" || ext == ".lib",
					}
				}

				matches, _ := filepath.Glob(filepath.Join(dir, filename+".*"))
				if len(matches) > 0 {
					return &Library{
						Name: name,
						Path: matches[0],
						Type: ext,
					}
				}
			}
		}
	}

	return nil
}

// CompilerFlags returns the flags for the cgo preamble
func (e *Environment) CompilerFlags() CompilerFlags {
	var flags CompilerFlags

	for _, dir := range e.IncludePaths {
		flags.IncludeFlags = append(flags.IncludeFlags, "-I"+dir)
	}
	for _, dir := range e.LibraryPaths {
		flags.LibraryFlags = append(flags.LibraryFlags, "-L"+dir)
	}
	for _, lib := range e.LinkLibs {
		// -l prefers a shared object when both exist; name the archive instead
		if e.Static {
			if archive := e.FindStaticLibrary(lib); archive != nil {
				flags.LinkFlags = append(flags.LinkFlags, archive.Path)
				continue
			}
		}
		flags.LinkFlags = append(flags.LinkFlags, "-l"+lib)
	}
	flags.PkgConfig = append(flags.PkgConfig, e.PkgConfig...)

	return flags
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
