// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "opusbind version %s\n", color.New(color.FgGreen, color.Bold).Sprint(Version))
		fmt.Fprintln(w, "libopus locator and cgo binding generator")
		fmt.Fprintln(w, "https://github.com/arc-language/opusbind")
	},
}
