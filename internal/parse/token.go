// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"iter"
	"strings"
)

// Words returns the whitespace-delimited words of one column's text in
// reading order: line by line, left to right within a line. Blank lines
// yield nothing and no word contains whitespace. The sequence is finite,
// lazy, and restartable.
func Words(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(text) {
			for _, word := range strings.Fields(line) {
				if !yield(word) {
					return
				}
			}
		}
	}
}
