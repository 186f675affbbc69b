// pkg/locate/types.go
package locate

// Kind tags the discovery strategies, in priority order
type Kind string

const (
	// KindPkgConfig queries the system pkg-config registry (linux only, opt-in)
	KindPkgConfig Kind = "pkg-config"
	// KindPinned reads a vcpkg installation rooted at VCPKG_ROOT
	KindPinned Kind = "vcpkg"
	// KindCellar scans the local Homebrew cellar (macOS aarch64 only)
	KindCellar Kind = "homebrew"
)

// PinnedRootEnv names the variable holding the vcpkg root
const PinnedRootEnv = "VCPKG_ROOT"

// String returns the strategy name
func (k Kind) String() string {
	return string(k)
}

// linkName strips the "lib" prefix the linker adds back. Only one prefix is
// removed, and a bare "lib" is kept so the link directive never goes empty.
func linkName(name string) string {
	if len(name) > 3 && name[:3] == "lib" {
		return name[3:]
	}
	return name
}
