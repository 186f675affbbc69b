// cmd/opusbind/main.go
package main

import (
	"fmt"
	"os"

	"github.com/arc-language/opusbind"
	"github.com/arc-language/opusbind/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := opusbind.Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
