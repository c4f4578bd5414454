package compiler

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/logging"
	"golang.org/x/tools/go/packages"
)

// loadMode loads imported packages with their full dependency graph so that
// types shared between imports keep a single identity.
const loadMode = packages.NeedName | packages.NeedTypes | packages.NeedImports | packages.NeedDeps

// Checker type-checks a directory of generated source against the packages
// of a Go module.
type Checker struct {
	moduleDir string
	logger    logging.Logger
}

// NewChecker creates a Checker resolving imports from the module rooted at
// (or containing) moduleDir. An empty moduleDir means the working directory.
func NewChecker(moduleDir string, logger logging.Logger) *Checker {
	return &Checker{moduleDir: moduleDir, logger: logging.OrNop(logger)}
}

// Check parses and type-checks the package in dir. It returns every
// diagnostic produced; an error is returned only when the checker itself
// could not run.
func (c *Checker) Check(dir string) ([]apiaryerrors.Diagnostic, error) {
	fset := token.NewFileSet()
	files, diags, err := parsePackage(fset, dir)
	if err != nil {
		return nil, err
	}
	if len(diags) > 0 {
		return diags, nil
	}

	imports := collectImports(files)
	pkgs := make(map[string]*types.Package, len(imports))
	if len(imports) > 0 {
		loaded, err := packages.Load(&packages.Config{Mode: loadMode, Dir: c.moduleDir}, imports...)
		if err != nil {
			return nil, fmt.Errorf("compiler: loading imports: %w", err)
		}
		for _, p := range loaded {
			for _, e := range p.Errors {
				diags = append(diags, packageDiagnostic(e))
			}
			if p.Types != nil {
				pkgs[p.PkgPath] = p.Types
			}
		}
		c.logger.Debug("loaded imports", "dir", dir, "requested", len(imports), "loaded", len(pkgs))
	}

	conf := types.Config{
		Importer: mapImporter(pkgs),
		Error: func(err error) {
			var te types.Error
			if !errors.As(err, &te) {
				diags = append(diags, apiaryerrors.Diagnostic{Severity: apiaryerrors.SeverityError, Message: err.Error()})
				return
			}
			d := positionDiagnostic(te.Fset.Position(te.Pos), te.Msg)
			if te.Soft {
				d.Severity = apiaryerrors.SeverityWarning
			}
			diags = append(diags, d)
		},
	}
	// Errors are delivered through conf.Error.
	_, _ = conf.Check(files[0].Name.Name, fset, files, nil)

	return diags, nil
}

// parsePackage parses the non-test Go files of dir. Syntax errors are
// returned as diagnostics.
func parsePackage(fset *token.FileSet, dir string) ([]*ast.File, []apiaryerrors.Diagnostic, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("compiler: reading package directory: %w", err)
	}

	var (
		files []*ast.File
		diags []apiaryerrors.Diagnostic
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(dir, name)
		file, err := parser.ParseFile(fset, path, nil, parser.AllErrors|parser.SkipObjectResolution)
		if err != nil {
			var list scanner.ErrorList
			if !errors.As(err, &list) {
				return nil, nil, fmt.Errorf("compiler: parsing %s: %w", path, err)
			}
			for _, e := range list {
				diags = append(diags, positionDiagnostic(e.Pos, e.Msg))
			}
			continue
		}
		files = append(files, file)
	}

	if len(files) == 0 && len(diags) == 0 {
		return nil, nil, fmt.Errorf("compiler: no Go files in %s", dir)
	}
	return files, diags, nil
}

// collectImports returns the sorted, distinct import paths of files.
func collectImports(files []*ast.File) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, f := range files {
		for _, spec := range f.Imports {
			p, err := strconv.Unquote(spec.Path.Value)
			if err != nil || p == "unsafe" || seen[p] {
				continue
			}
			seen[p] = true
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

type mapImporter map[string]*types.Package

func (m mapImporter) Import(path string) (*types.Package, error) {
	if path == "unsafe" {
		return types.Unsafe, nil
	}
	if pkg, ok := m[path]; ok {
		return pkg, nil
	}
	return nil, fmt.Errorf("package %q could not be loaded", path)
}

func positionDiagnostic(pos token.Position, msg string) apiaryerrors.Diagnostic {
	return apiaryerrors.Diagnostic{
		Severity: apiaryerrors.SeverityError,
		File:     pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Message:  msg,
	}
}

// packageDiagnostic converts a loader error whose position has the form
// "file:line:col", "file:line" or "".
func packageDiagnostic(e packages.Error) apiaryerrors.Diagnostic {
	d := apiaryerrors.Diagnostic{Severity: apiaryerrors.SeverityError, Message: e.Msg}
	if e.Pos == "" || e.Pos == "-" {
		return d
	}

	parts := strings.Split(e.Pos, ":")
	nums := make([]int, 0, 2)
	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}
	d.File = strings.Join(parts, ":")
	if len(nums) > 0 {
		d.Line = nums[0]
	}
	if len(nums) > 1 {
		d.Column = nums[1]
	}
	return d
}
