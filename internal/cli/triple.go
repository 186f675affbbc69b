// internal/cli/triple.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tripleCmd = &cobra.Command{
	Use:   "triple",
	Short: "Print the vcpkg triple for the target platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), b.Platform().Triple())
		return nil
	},
}
