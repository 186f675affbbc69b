// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arc-language/opusbind"
	"github.com/arc-language/opusbind/pkg/core"
)

var (
	cfgFile   string
	debug     bool
	pkgConfig bool
	config    *core.Config
	configErr error
	logger    = zerolog.Nop()
)

// rootCmd represents the base command. Without a subcommand it generates.
var rootCmd = &cobra.Command{
	Use:   "opusbind",
	Short: "Locate libopus and generate cgo bindings",
	Long: `opusbind - libopus build helper

Finds the libopus headers and static library for the target platform
(pkg-config on Linux, a vcpkg root, or the Homebrew cellar on Apple silicon)
and writes a cgo binding file for the umbrella header.

Usually run through go generate:
  //go:generate go run github.com/arc-language/opusbind/cmd/opusbind`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./opusbind.yaml or $OPUSBIND_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&pkgConfig, "pkg-config", false, "use pkg-config on Linux")

	// Add commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(tripleCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	config, configErr = core.LoadConfig(cfgFile)
	if configErr != nil {
		config = core.DefaultConfig()
	}

	// Override config with flags
	if pkgConfig {
		config.LinuxPkgConfig = true
	}
	if debug {
		config.Debug = true
	}

	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "opusbind").
		Logger()
}

// newBuilder creates the pipeline for the loaded config, writing directives
// to the command's stdout
func newBuilder(cmd *cobra.Command) (*opusbind.Builder, error) {
	if configErr != nil {
		return nil, fmt.Errorf("loading config: %w", configErr)
	}
	return opusbind.New(opusbind.Options{
		Config: config,
		Stdout: cmd.OutOrStdout(),
		Logger: logger,
	})
}
