// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteLines writes each line followed by a newline, prefixed by indent.
func WriteLines(w io.Writer, indent string, lines []string) {
	for _, line := range lines {
		Writef(w, "%s%s\n", indent, line)
	}
}
