// Command cssdom is a thin CLI consumer of the cssdom parsing library: it
// exists to give the configuration, diagnostics-rendering, and glob
// stacks a concrete home, not as part of the library's public surface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssdom",
	Short: "Parse and lint CSS stylesheets",
	Long: `cssdom parses CSS source into a rule/declaration/value tree and
reports recoverable diagnostics as it goes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("quirks", false, "Enable quirks mode (legacy colors written as a bare '#' plus hex digits)")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject registry-invalid declarations instead of flagging them")
	rootCmd.PersistentFlags().String("config", ".cssdom.yaml", "Config file path")
	rootCmd.PersistentFlags().String("charset", "", "External charset hint (e.g. from a Content-Type header), overridden by a BOM")
	rootCmd.PersistentFlags().Bool("color", false, "Force colored diagnostic output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stdout")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lintCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
