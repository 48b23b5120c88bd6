package main

import (
	"fmt"
	"strings"

	"github.com/solheim/cssdom/diag"
)

// renderDiagnostic formats one diagnostic as a colored, boxed block with
// the offending source line and a caret under the reported column.
func renderDiagnostic(file string, src []byte, e diag.Error, useColors bool) string {
	lines := strings.Split(string(src), "\n")
	var snippet string
	if e.Line >= 1 && e.Line <= len(lines) {
		line := lines[e.Line-1]
		caret := strings.Repeat(" ", max(0, e.Column-1)) + "^"
		snippet = "\n" + line + "\n" + renderStyle(styleYellow, caret, useColors)
	}

	header := fmt.Sprintf("%s:%d:%d: %s", file, e.Line, e.Column, e.Message)
	body := fmt.Sprintf("%s [%s]%s", renderStyle(styleRed, header, useColors), renderStyle(styleGray, string(e.Code), useColors), snippet)
	if !useColors {
		return body
	}
	return boxStyle.Render(body)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
