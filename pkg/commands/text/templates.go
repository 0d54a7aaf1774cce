// Package text normalizes the help text of the prereq commands.
package text

import (
	"strings"
)

// Indentation prefixes every line of a command's examples.
const Indentation = `  `

// LongDesc trims the surrounding whitespace of a long description and removes the indentation
// the raw string literal picked up from the source.
func LongDesc(s string) string {
	if len(s) == 0 {
		return s
	}

	return dedent(strings.TrimSpace(s))
}

// Examples trims the examples and indents each line with Indentation.
func Examples(s string) string {
	if len(s) == 0 {
		return s
	}

	s = strings.TrimSpace(s)
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	for line := range strings.SplitSeq(s, "\n") {
		lines = append(lines, Indentation+strings.TrimSpace(line))
	}

	return strings.Join(lines, "\n")
}

// dedent strips the leading whitespace of every line.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " \t")
	}

	return strings.Join(lines, "\n")
}
