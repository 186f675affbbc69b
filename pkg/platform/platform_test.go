package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriple(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
		want   string
	}{
		{"macos", "x86_64", "x64-osx"},
		{"macos", "aarch64", "arm64-osx"},
		{"darwin", "amd64", "x64-osx"},
		{"darwin", "arm64", "arm64-osx"},
		{"windows", "x86_64", "x64-windows-static"},
		{"windows", "amd64", "x64-windows-static"},
		{"windows", "x86", "x86-windows-static"},
		{"windows", "386", "x86-windows-static"},
		{"linux", "x86_64", "x86_64-linux"},
		{"linux", "amd64", "x86_64-linux"},
		{"linux", "aarch64", "aarch64-linux"},
		{"linux", "386", "x86-linux"},
		{"freebsd", "riscv64", "riscv64-freebsd"},
		{"macos", "x86", "x86-macos"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			p := New(tt.goos, tt.goarch)
			assert.Equal(t, tt.want, p.Triple())
			// deterministic
			assert.Equal(t, p.Triple(), New(tt.goos, tt.goarch).Triple())
		})
	}
}

func TestNewCanonicalises(t *testing.T) {
	assert.Equal(t, Platform{OS: MacOS, Arch: Aarch64}, New("darwin", "arm64"))
	assert.Equal(t, Platform{OS: Linux, Arch: X86_64}, New("linux", "amd64"))
	assert.Equal(t, Platform{OS: "plan9", Arch: "mips"}, New("plan9", "mips"))
	assert.True(t, New("darwin", "arm64").Is(MacOS, Aarch64))
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{"GOOS": "windows", "GOARCH": "amd64"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	assert.Equal(t, Platform{OS: Windows, Arch: X86_64}, FromEnv(lookup))

	empty := func(string) (string, bool) { return "", false }
	assert.Equal(t, New(runtime.GOOS, runtime.GOARCH), FromEnv(empty))
}

func TestSystemManager(t *testing.T) {
	tests := []struct {
		name    string
		release string
		marker  string
		want    string
	}{
		{"Ubuntu", "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n", "", "apt"},
		{"Debian", "ID=debian\n", "", "apt"},
		{"Fedora", "ID=fedora\n", "", "dnf"},
		{"Rocky", "ID=\"rocky\"\nID_LIKE=\"rhel centos fedora\"\n", "", "dnf"},
		{"Alpine", "ID=alpine\n", "", "apk"},
		{"Arch", "ID=arch\n", "", "pacman"},
		{"Tumbleweed", "ID=\"opensuse-tumbleweed\"\nID_LIKE=\"opensuse suse\"\n", "", "zypper"},
		{"ArchMarker", "", "arch-release", "pacman"},
		{"Unknown", "ID=gentoo\n", "", "dpkg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			etc := t.TempDir()
			if tt.release != "" {
				require.NoError(t, os.WriteFile(filepath.Join(etc, "os-release"), []byte(tt.release), 0644))
			}
			if tt.marker != "" {
				require.NoError(t, os.WriteFile(filepath.Join(etc, tt.marker), nil, 0644))
			}
			assert.Equal(t, tt.want, systemManager(New("linux", "amd64"), etc))
		})
	}

	assert.Equal(t, "brew", systemManager(New("darwin", "arm64"), t.TempDir()))
	assert.Equal(t, "vcpkg", systemManager(New("windows", "amd64"), t.TempDir()))
	assert.Equal(t, "", systemManager(New("plan9", "amd64"), t.TempDir()))
}
