// pkg/env/types.go
package env

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "opus")
	Path     string // Absolute path to library file
	Type     string // Extension: ".so", ".a", ".dylib", ".dll", ".lib"
	IsStatic bool   // True for .a and .lib files
}

// Environment represents a located native installation
type Environment struct {
	OS           string   // Target OS, canonical name (macos, linux, windows)
	IncludePaths []string // Header directories
	LibraryPaths []string // Link search directories
	LinkLibs     []string // Libraries to link
	Static       bool     // Link LinkLibs statically
	PkgConfig    []string // Packages cgo should resolve through pkg-config
}

// CompilerFlags holds compiler and linker flags
type CompilerFlags struct {
	IncludeFlags []string // -I flags
	LibraryFlags []string // -L flags
	LinkFlags    []string // -l flags
	PkgConfig    []string // #cgo pkg-config packages
}
