// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is looked up in the working directory
	DefaultConfigFile = "opusbind.yaml"

	// DefaultLibrary is the native library the tool binds
	DefaultLibrary = "opus"

	// DefaultHeader is the umbrella header, relative to the working directory
	DefaultHeader = "opus_ffi.h"

	// DefaultOutput is the generated file, relative to the working directory
	DefaultOutput = "opus_ffi.go"

	// DefaultCellarRoot is the Homebrew cellar on Apple silicon
	DefaultCellarRoot = "/opt/homebrew/Cellar"
)

// Config holds opusbind configuration
type Config struct {
	Library          string   `yaml:"library"`
	Header           string   `yaml:"header"`
	Output           string   `yaml:"output"`
	Package          string   `yaml:"package"`
	LinuxPkgConfig   bool     `yaml:"linux_pkg_config"`
	CellarRoot       string   `yaml:"cellar_root"`
	Clang            string   `yaml:"clang"`
	ClangArgs        []string `yaml:"clang_args,omitempty"`
	PkgConfigBin     string   `yaml:"pkg_config_bin"`
	GenerateComments bool     `yaml:"generate_comments"`
	RegistryDir      string   `yaml:"registry_dir"`
	Debug            bool     `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Library:        DefaultLibrary,
		Header:         DefaultHeader,
		Output:         DefaultOutput,
		Package:        defaultPackage(),
		LinuxPkgConfig: envBool("OPUSBIND_PKG_CONFIG"),
		CellarRoot:     DefaultCellarRoot,
		Clang:          "clang",
		PkgConfigBin:   "pkg-config",
	}
}

// LoadConfig loads configuration from file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("OPUSBIND_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// The environment wins over the file so CI can flip pkg-config on
	if envBool("OPUSBIND_PKG_CONFIG") {
		cfg.LinuxPkgConfig = true
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks the fields every build needs
func (c *Config) Validate() error {
	if c.Library == "" {
		return fmt.Errorf("config: library is required")
	}
	if c.Header == "" {
		return fmt.Errorf("config: header is required")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output is required")
	}
	if c.Package == "" {
		return fmt.Errorf("config: package is required")
	}
	return nil
}

// go generate exports GOPACKAGE for the package holding the directive
func defaultPackage() string {
	if pkg := os.Getenv("GOPACKAGE"); pkg != "" {
		return pkg
	}
	return "ffi"
}

func envBool(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
