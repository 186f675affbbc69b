// internal/cli/check.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrStale is returned by check when the bindings must be regenerated
var ErrStale = errors.New("bindings are out of date")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the bindings need regenerating",
	Long: `Compare the generated file against the inputs recorded in its
//opusbind:depend lines. Exits non-zero when any input is missing or newer.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	stale, reasons, err := b.Check()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !stale {
		fmt.Fprintf(w, "%s Bindings are up to date\n", okMark)
		return nil
	}
	for _, r := range reasons {
		fmt.Fprintf(w, "%s %s\n", failMark, r)
	}
	return ErrStale
}
