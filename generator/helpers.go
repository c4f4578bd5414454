package generator

import (
	"golang.org/x/tools/imports"
)

// formatAndFixImports formats Go source code and fixes imports.
// It removes imports the rendered code does not use and adds standard
// library imports it references but does not declare.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}
