package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// expandFiles resolves each argument as a doublestar pattern (plain file
// paths match themselves) and returns the deduplicated union, in the order
// patterns were given.
func expandFiles(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				matches = []string{pattern}
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
