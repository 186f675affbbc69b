// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Canonical target names
const (
	MacOS   = "macos"
	Linux   = "linux"
	Windows = "windows"

	X86_64  = "x86_64"
	Aarch64 = "aarch64"
	X86     = "x86"
)

// Platform represents the build target
type Platform struct {
	OS   string // macos, linux, windows, ...
	Arch string // x86_64, aarch64, x86, ...
}

var osAliases = map[string]string{
	"darwin": MacOS,
	"macos":  MacOS,
	"osx":    MacOS,
}

var archAliases = map[string]string{
	"amd64":  X86_64,
	"x86_64": X86_64,
	"x64":    X86_64,
	"arm64":  Aarch64,
	"386":    X86,
	"i386":   X86,
	"i686":   X86,
}

// New builds a Platform from either Go (darwin/amd64) or target-style
// (macos/x86_64) names
func New(goos, goarch string) Platform {
	name := goos
	if alias, ok := osAliases[goos]; ok {
		name = alias
	}
	arch := goarch
	if alias, ok := archAliases[goarch]; ok {
		arch = alias
	}
	return Platform{OS: name, Arch: arch}
}

// Detect reads the target from the environment. go generate and go build
// export GOOS and GOARCH; outside of them the host values are used.
func Detect() Platform {
	return FromEnv(os.LookupEnv)
}

// FromEnv is Detect with an injectable environment lookup
func FromEnv(lookup func(string) (string, bool)) Platform {
	goos, ok := lookup("GOOS")
	if !ok || goos == "" {
		goos = runtime.GOOS
	}
	goarch, ok := lookup("GOARCH")
	if !ok || goarch == "" {
		goarch = runtime.GOARCH
	}
	return New(goos, goarch)
}

// Is reports whether the platform matches the canonical os and arch names
func (p Platform) Is(osName, arch string) bool {
	return p.OS == osName && p.Arch == arch
}

// String returns a string representation of the platform
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s (triple: %s)", p.OS, p.Arch, p.Triple())
}
