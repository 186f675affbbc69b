// internal/cli/locate.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/opusbind/pkg/platform"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Locate the library without generating bindings",
	Long:  `Run the discovery strategy for the target platform and print its directives.`,
	Args:  cobra.NoArgs,
	RunE:  runLocate,
}

func runLocate(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	if config.Debug {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "Platform: %s\n", b.Platform())
		for _, s := range b.Locator().Strategies() {
			fmt.Fprintf(w, "  %s applicable=%t\n", s.Name(), s.Applicable())
		}
		for _, tool := range []string{config.PkgConfigBin, config.Clang} {
			fmt.Fprintf(w, "  %s in PATH=%t\n", tool, platform.CommandExists(tool))
		}
	}

	res, err := b.Locate(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Failed to locate %s\n", failMark, config.Library)
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Found %s via %s (include: %s)\n",
		okMark, res.Package.Name, res.Package.Strategy, strings.Join(res.IncludePaths(), ", "))
	return nil
}
