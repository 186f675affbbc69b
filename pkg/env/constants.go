// pkg/env/constants.go
package env

// GetLibraryExtensions returns file extensions to look for based on the target OS
func GetLibraryExtensions(goos string) []string {
	switch goos {
	case "macos", "darwin":
		return []string{".dylib", ".a"}
	case "windows":
		return []string{".dll", ".lib"}
	default: // linux, etc.
		return []string{".so", ".a"}
	}
}

// GetStaticLibraryExtensions returns only static library extensions
func GetStaticLibraryExtensions(goos string) []string {
	switch goos {
	case "windows":
		return []string{".lib", ".a"} // MSVC archive, then mingw
	default:
		return []string{".a"}
	}
}

// libraryFileNames lists candidate file names for name with ext
func libraryFileNames(name, ext string) []string {
	if ext == ".lib" || ext == ".dll" {
		return []string{name + ext, "lib" + name + ext}
	}
	return []string{"lib" + name + ext}
}
