package contract

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"path"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/internal/naming"
	"github.com/induct/apiary/internal/pathutil"
	"golang.org/x/mod/module"
)

// reservedMethods would collide with members of the generated client type.
var reservedMethods = map[string]bool{
	"Base": true,
}

// Validate checks that the contract can be generated from. Every problem is
// reported as an *apiaryerrors.ValidationError; multiple problems are joined
// with errors.Join so errors.As finds the first.
//
// Duplicate environment names are rejected here even though
// ResolveEnvironment tolerates them.
func (c *Contract) Validate() error {
	if c == nil {
		return &apiaryerrors.ValidationError{Message: "contract is nil"}
	}

	v := &validator{contract: c.Name, path: pathutil.Get()}
	defer pathutil.Put(v.path)

	if !isExportedIdent(c.Name) {
		v.add("name", "%q is not an exported Go identifier", c.Name)
	}
	if err := module.CheckImportPath(c.Namespace); err != nil {
		v.addCause("namespace", err, "invalid import path %q", c.Namespace)
	}
	v.path.Push("imports")
	for i, imp := range c.Imports {
		if err := module.CheckImportPath(imp); err != nil {
			v.path.PushIndex(i)
			v.addCause("", err, "invalid import path %q", imp)
			v.path.Pop()
		}
	}
	v.path.Pop()

	if c.Config == nil {
		v.add("config", "contract declares no generation config")
	} else {
		v.path.Push("config")
		v.validateConfig(c)
		v.path.Pop()
	}

	v.path.Push("calls")
	methods := make(map[string]int, len(c.Calls))
	for i, call := range c.Calls {
		v.path.PushIndex(i)
		v.validateCall(call)
		if method := MethodName(call.Name); call.Name != "" {
			if prev, dup := methods[method]; dup {
				v.add("name", "method %s already declared by calls[%d]", method, prev)
			} else {
				methods[method] = i
			}
		}
		v.path.Pop()
	}
	v.path.Pop()

	return errors.Join(v.errs...)
}

// validator collects problems. Fields are relative to path; an empty field
// names the path itself.
type validator struct {
	contract string
	path     *pathutil.FieldPath
	errs     []error
}

func (v *validator) field(name string) string {
	if name == "" {
		return v.path.String()
	}
	return v.path.Field(name)
}

func (v *validator) add(field, format string, args ...any) {
	v.errs = append(v.errs, &apiaryerrors.ValidationError{
		Contract: v.contract,
		Field:    v.field(field),
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) addCause(field string, cause error, format string, args ...any) {
	v.errs = append(v.errs, &apiaryerrors.ValidationError{
		Contract: v.contract,
		Field:    v.field(field),
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
	})
}

func (v *validator) validateConfig(c *Contract) {
	if _, err := c.Config.ParamFormat.Convention(); err != nil {
		v.addCause("paramFormat", err, "unsupported parameter format %q", c.Config.ParamFormat)
	}

	pkg := c.TargetPackage()
	if err := module.CheckImportPath(pkg); err != nil {
		v.addCause("targetPackage", err, "invalid target package %q", pkg)
	} else if name := path.Base(pkg); !token.IsIdentifier(name) {
		v.add("targetPackage", "last element of %q is not a valid package name", pkg)
	}
	if class := c.TargetClass(); !isExportedIdent(class) {
		v.add("targetClassName", "%q is not an exported Go identifier", class)
	}

	v.path.Push("environments")
	defer v.path.Pop()
	seen := make(map[string]bool, len(c.Config.Environments))
	for i, env := range c.Config.Environments {
		v.path.PushIndex(i)
		switch {
		case env.Name == "":
			v.add("name", "environment name is empty")
		case seen[env.Name]:
			v.add("name", "duplicate environment %q", env.Name)
		}
		seen[env.Name] = true
		if env.Root == "" {
			v.add("root", "environment %q has no root", env.Name)
		}
		v.path.Pop()
	}
}

func (v *validator) validateCall(call CallDescriptor) {
	if !token.IsIdentifier(call.Name) {
		v.add("name", "%q is not a valid Go identifier", call.Name)
	} else if reservedMethods[MethodName(call.Name)] {
		v.add("name", "method name %s is reserved", MethodName(call.Name))
	}
	if call.Returns == "" {
		v.add("returns", "call %q declares no result type", call.Name)
	} else if _, err := parser.ParseExpr(call.Returns); err != nil {
		v.addCause("returns", err, "invalid type expression %q", call.Returns)
	}

	v.path.Push("params")
	defer v.path.Pop()
	seen := make(map[string]bool, len(call.Params))
	for j, p := range call.Params {
		v.path.PushIndex(j)
		switch {
		case !token.IsIdentifier(p.Name):
			v.add("name", "%q is not a valid Go identifier", p.Name)
		case seen[p.Name]:
			v.add("name", "duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true
		if p.Type == "" {
			v.add("type", "parameter %q has no type", p.Name)
		} else if _, err := parser.ParseExpr(p.Type); err != nil {
			v.addCause("type", err, "invalid type expression %q", p.Type)
		}
		v.path.Pop()
	}
}

// MethodName returns the exported Go method name for a call name.
func MethodName(callName string) string {
	return naming.ToTitleCase(callName)
}

func isExportedIdent(s string) bool {
	return token.IsIdentifier(s) && token.IsExported(s)
}
