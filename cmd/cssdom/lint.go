package main

import (
	"fmt"
	"os"

	"github.com/solheim/cssdom"
	"github.com/solheim/cssdom/declaration"
	"github.com/solheim/cssdom/logger"
	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/rule"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <files...>",
	Short: "Parse CSS files and flag registry-invalid declarations",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	files, err := expandFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched: %v", args)
	}

	quirks := boolWithFallback("quirks", false)
	useColors := boolWithFallback("color", false)
	verbose := boolWithFallback("verbose", false)
	charset := stringWithFallback("charset", "")
	reg := registry.NewDefault()

	failed := false
	for _, file := range files {
		if verbose {
			logger.ProgressLogger.Printf("linting %s", file)
		}
		ok := lintOneFile(file, quirks, useColors, charset, reg)
		if !ok {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

// lintOneFile parses file in lenient mode (so every declaration survives
// for inspection) and separately re-validates each declaration against
// reg, reporting the ones the registry rejects.
func lintOneFile(file string, quirks, useColors bool, charset string, reg registry.PropertyRegistry) bool {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, renderStyle(styleRed, err.Error(), useColors))
		return false
	}

	p := cssdom.NewBytes(src).WithCharsetHint(charset)
	p.SetQuirksMode(quirks)
	sheet := p.Result()

	for _, e := range sheet.Errors {
		fmt.Println(renderDiagnostic(file, src, e, useColors))
	}

	clean := len(sheet.Errors) == 0
	for _, d := range collectDeclarations(sheet.Rules) {
		outcome := reg.Validate(d.Name, d.Value)
		if outcome != registry.Invalid {
			continue
		}
		clean = false
		msg := fmt.Sprintf("%s: property %q rejects its declared value", file, d.Name)
		logger.WarningLogger.Print(msg)
		fmt.Println(renderStyle(styleYellow, msg, useColors))
	}
	return clean
}

// collectDeclarations walks the rule tree, gathering every declaration
// carried by a style rule, at-rule body, or keyframe block.
func collectDeclarations(rules []rule.Rule) []declaration.Declaration {
	var out []declaration.Declaration
	for _, r := range rules {
		switch r := r.(type) {
		case *rule.Style:
			out = append(out, r.Declarations...)
		case *rule.Page:
			out = append(out, r.Declarations...)
		case *rule.FontFace:
			out = append(out, r.Declarations...)
		case *rule.Media:
			out = append(out, collectDeclarations(r.Rules)...)
		case *rule.Supports:
			out = append(out, collectDeclarations(r.Rules)...)
		case *rule.Document:
			out = append(out, collectDeclarations(r.Rules)...)
		case *rule.Keyframes:
			for _, kf := range r.Keyframes {
				out = append(out, kf.Declarations...)
			}
		}
	}
	return out
}
