// This file turns contract names and type expressions into Go identifiers
// and qualified types for the rendered client.

package generator

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"strings"
	"unicode"

	"golang.org/x/tools/go/ast/astutil"
)

// localNames are identifiers the client template declares inside each
// method. Parameters that would shadow them are renamed.
var localNames = map[string]bool{
	"c": true, "ctx": true, "req": true, "err": true, "params": true,
}

// escapeIdent appends an underscore to name until it no longer collides
// with a keyword or one of the taken identifiers.
func escapeIdent(name string, taken map[string]bool) string {
	for token.IsKeyword(name) || taken[name] {
		name += "_"
	}
	return name
}

// packageIdent derives a usable package identifier from an import path.
// Characters that cannot appear in identifiers are dropped and a leading
// digit is prefixed with "pkg".
func packageIdent(importPath string) string {
	base := path.Base(importPath)
	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	name := b.String()
	if name == "" {
		return "pkg"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "pkg" + name
	}
	return escapeIdent(name, nil)
}

// isStdImport reports whether importPath names a standard library package,
// whose first path element has no dot.
func isStdImport(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

// qualifyType rewrites a Go type expression so that bare exported
// identifiers refer to the package imported as qualifier. Identifiers that
// are already selectors, and field or method names inside inline struct and
// interface types, are left alone. An empty qualifier only normalizes the
// expression.
func qualifyType(expr, qualifier string) (string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return "", fmt.Errorf("invalid type expression %q: %w", expr, err)
	}

	if qualifier != "" {
		result := astutil.Apply(node, func(cur *astutil.Cursor) bool {
			ident, ok := cur.Node().(*ast.Ident)
			if !ok || !ident.IsExported() {
				return true
			}
			if _, isSelector := cur.Parent().(*ast.SelectorExpr); isSelector {
				return true
			}
			if cur.Name() == "Names" {
				return true
			}
			cur.Replace(&ast.SelectorExpr{X: ast.NewIdent(qualifier), Sel: ast.NewIdent(ident.Name)})
			return false
		}, nil)
		node = result.(ast.Expr)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), node); err != nil {
		return "", fmt.Errorf("formatting type expression %q: %w", expr, err)
	}
	return buf.String(), nil
}

// isNilable reports whether a type expression already admits nil, so an
// optional parameter of that type needs no extra pointer.
func isNilable(expr string) bool {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return false
	}
	switch t := node.(type) {
	case *ast.StarExpr, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.InterfaceType:
		return true
	case *ast.ArrayType:
		return t.Len == nil
	case *ast.Ident:
		return t.Name == "any" || t.Name == "error"
	default:
		return false
	}
}

// formatMultilineComment formats text as a Go doc comment starting with
// name. Blank lines in text are dropped.
func formatMultilineComment(text, name, indent string) string {
	if text == "" {
		return ""
	}

	var buf strings.Builder
	lines := strings.Split(text, "\n")

	first := strings.TrimSpace(lines[0])
	buf.WriteString(indent)
	buf.WriteString("// ")
	buf.WriteString(name)
	if first != "" {
		if !strings.HasPrefix(first, name+" ") {
			buf.WriteString(" ")
			buf.WriteString(first)
		} else {
			buf.WriteString(strings.TrimPrefix(first, name))
		}
	}
	buf.WriteString("\n")

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		buf.WriteString(indent)
		buf.WriteString("// ")
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return buf.String()
}
