package main

import (
	"fmt"
	"os"

	"github.com/solheim/cssdom"
	"github.com/solheim/cssdom/logger"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <files...>",
	Short: "Parse CSS files and report diagnostics",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("quiet", false, "Suppress per-file success output")
}

func runParse(cmd *cobra.Command, args []string) error {
	files, err := expandFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched: %v", args)
	}

	quirks := boolWithFallback("quirks", false)
	strict := boolWithFallback("strict", false)
	useColors := boolWithFallback("color", false)
	quiet := boolWithFallback("quiet", false)
	verbose := boolWithFallback("verbose", false)
	charset := stringWithFallback("charset", "")

	failed := false
	for _, file := range files {
		if verbose {
			logger.ProgressLogger.Printf("parsing %s", file)
		}
		ok := parseOneFile(file, quirks, strict, useColors, quiet, charset)
		if !ok {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

// parseOneFile parses file and prints one rendered diagnostic per error.
// It returns false if the file could not be read or produced any error.
func parseOneFile(file string, quirks, strict, useColors, quiet bool, charset string) bool {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, renderStyle(styleRed, err.Error(), useColors))
		return false
	}

	p := cssdom.NewBytes(src).WithCharsetHint(charset)
	p.SetQuirksMode(quirks)
	if strict {
		p.Strict()
	}
	sheet := p.Result()

	for _, e := range sheet.Errors {
		fmt.Println(renderDiagnostic(file, src, e, useColors))
	}
	if len(sheet.Errors) == 0 && !quiet {
		fmt.Printf("%s %s: %d rules\n", renderStyle(styleCyan, "ok", useColors), file, len(sheet.Rules))
	}
	return len(sheet.Errors) == 0
}
