package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/induct/apiary/contract"
)

// Layout maps target packages and classes to file locations.
//
// A unit for package p and class C lives at Root/p/C.go. When TrimPrefix
// is set and p starts with it, the prefix is removed first, so a module's
// own import path can be mapped onto its source tree.
type Layout struct {
	// Root is the output directory
	Root string
	// TrimPrefix is an import path prefix removed from target packages
	TrimPrefix string
}

// Dir returns the directory holding the units of pkg.
func (l Layout) Dir(pkg string) string {
	rel := pkg
	if prefix := strings.TrimSuffix(l.TrimPrefix, "/"); prefix != "" {
		switch {
		case rel == prefix:
			rel = ""
		case strings.HasPrefix(rel, prefix+"/"):
			rel = strings.TrimPrefix(rel, prefix+"/")
		}
	}
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// Path returns the file location of class in pkg.
func (l Layout) Path(pkg, class string) string {
	return filepath.Join(l.Dir(pkg), class+".go")
}

// PathFor returns the file location of a fully-qualified unit name of the
// form "<package>.<class>".
func (l Layout) PathFor(fqn string) (string, error) {
	pkg, class, ok := contract.SplitQualifiedName(fqn)
	if !ok {
		return "", fmt.Errorf("compiler: malformed unit name %q", fqn)
	}
	return l.Path(pkg, class), nil
}
