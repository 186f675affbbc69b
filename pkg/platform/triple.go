// pkg/platform/triple.go
package platform

import "strings"

// shortArch maps canonical architectures to the alias used in port triples
var shortArch = map[string]string{
	X86_64:  "x64",
	Aarch64: "arm64",
}

// ShortArch returns the port-style architecture alias
func (p Platform) ShortArch() string {
	if s, ok := shortArch[p.Arch]; ok {
		return s
	}
	return p.Arch
}

// Triple returns the directory name prebuilt artifacts are installed under
// (the <triple> in <root>/installed/<triple>). Unknown combinations fall back
// to "{arch}-{os}" with the canonical architecture name.
func (p Platform) Triple() string {
	arch := p.ShortArch()

	var triple string
	switch {
	case p.OS == MacOS && arch == "x64":
		triple = "x64-osx"
	case p.OS == MacOS && arch == "arm64":
		triple = "arm64-osx"
	case p.OS == Windows:
		triple = "x64-windows-static"
	default:
		triple = p.Arch + "-" + p.OS
	}

	if arch == X86 {
		triple = strings.Replace(triple, "x64", "x86", 1)
	}
	return triple
}
