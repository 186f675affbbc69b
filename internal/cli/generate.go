// internal/cli/generate.go
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okMark   = color.New(color.FgGreen, color.Bold).Sprint("✓")
	failMark = color.New(color.FgRed, color.Bold).Sprint("✗")
	warnMark = color.New(color.FgYellow, color.Bold).Sprint("!")
)

var (
	generateHeader   string
	generateOutput   string
	generatePackage  string
	generateComments bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Locate the library and write the bindings",
	Long: `Locate libopus for the target platform, then parse the umbrella header
and write the generated Go file. Directives are printed on stdout as
opusbind:<kind>=<value> lines.

Examples:
  opusbind generate
  opusbind generate --header opus_ffi.h --output opus_ffi.go --package ffi
  GOOS=darwin GOARCH=arm64 opusbind generate`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateHeader, "header", "", "umbrella header")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "generated file")
	generateCmd.Flags().StringVar(&generatePackage, "package", "", "package clause of the generated file")
	generateCmd.Flags().BoolVar(&generateComments, "comments", false, "copy header doc comments into the bindings")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateHeader != "" {
		config.Header = generateHeader
	}
	if generateOutput != "" {
		config.Output = generateOutput
	}
	if generatePackage != "" {
		config.Package = generatePackage
	}
	if generateComments {
		config.GenerateComments = true
	}

	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	report, err := b.Run(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Failed to generate bindings for %s\n", failMark, config.Library)
		return err
	}

	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "%s Found %s via %s\n", okMark, config.Library, report.Located.Package.Strategy)
	fmt.Fprintf(w, "%s Wrote %s\n", okMark, report.Output.Path)
	if n := len(report.Output.Skipped); n > 0 {
		fmt.Fprintf(w, "%s Skipped %d declarations cgo cannot express\n", warnMark, n)
	}

	return nil
}
