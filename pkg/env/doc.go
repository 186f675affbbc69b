// pkg/env/doc.go

/*
Package env describes the native installation a strategy located and turns
it into compiler and linker flags for the cgo preamble.

Basic Usage:

	import "github.com/arc-language/opusbind/pkg/env"

	// Build from the directives a strategy returned
	e := env.FromDirectives("macos", result.Directives)

	// Check the archive is really there
	if lib := e.FindStaticLibrary("opus"); lib == nil {
		log.Printf("no static opus in %v", e.LibraryPaths)
	}

	// Get compiler flags
	flags := e.CompilerFlags()
	for _, flag := range flags.IncludeFlags {
		fmt.Println(flag) // -I/opt/homebrew/Cellar/opus/1.5.2/include
	}

Layouts:

vcpkg installs static archives without the "lib" prefix on Windows
(opus.lib) and with it elsewhere (libopus.a); Homebrew ships both the archive
and the shared library in <version>/lib. The lookups here know both forms.
*/
package env
