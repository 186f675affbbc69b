// pkg/platform/distro.go
package platform

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// SystemManager guesses which package manager provides development headers
// on this host. It only informs remediation hints.
func SystemManager(p Platform) string {
	return systemManager(p, "/etc")
}

func systemManager(p Platform, etc string) string {
	switch p.OS {
	case MacOS:
		return "brew"
	case Windows:
		return "vcpkg"
	case Linux:
	default:
		return ""
	}

	ids := releaseIDs(etc)
	switch {
	case ids["alpine"] || exists(filepath.Join(etc, "alpine-release")):
		return "apk"
	case ids["fedora"] || ids["rhel"] || ids["centos"] || exists(filepath.Join(etc, "fedora-release")):
		return "dnf"
	case ids["arch"] || ids["manjaro"] || exists(filepath.Join(etc, "arch-release")):
		return "pacman"
	case ids["opensuse"] || ids["suse"] || ids["sles"] || exists(filepath.Join(etc, "SuSE-release")):
		return "zypper"
	case ids["ubuntu"] || ids["debian"]:
		return "apt"
	default:
		return "dpkg"
	}
}

// releaseIDs collects the ID and ID_LIKE tokens of os-release
func releaseIDs(etc string) map[string]bool {
	ids := make(map[string]bool)

	f, err := os.Open(filepath.Join(etc, "os-release"))
	if err != nil {
		return ids
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok || (key != "ID" && key != "ID_LIKE") {
			continue
		}
		value = strings.Trim(value, `"'`)
		for _, id := range strings.Fields(strings.ToLower(value)) {
			ids[id] = true
			// opensuse-leap, opensuse-tumbleweed
			if prefix, _, found := strings.Cut(id, "-"); found {
				ids[prefix] = true
			}
		}
	}
	return ids
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
