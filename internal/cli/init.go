// internal/cli/init.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/opusbind/pkg/core"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default opusbind.yaml",
	Long: `Write the current configuration (defaults plus flags and environment
overrides) to the config file so it can be edited.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return fmt.Errorf("loading config: %w", configErr)
	}

	path := cfgFile
	if path == "" {
		path = core.DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := core.SaveConfig(config, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", okMark, path)
	return nil
}
