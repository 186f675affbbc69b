// pkg/core/package.go
package core

// Package describes a located native library
type Package struct {
	Name         string   // Library name (e.g., "opus")
	IncludePaths []string // Header search directories
	LinkLib      string   // Library to link, without "lib" prefix (empty when pkg-config links)
	LinkSearch   string   // Directory holding the library archive
	Strategy     string   // Which strategy located it
}
