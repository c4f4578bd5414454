// Package contract models the declarative API contracts apiary generates
// clients from.
//
// A [Contract] names a Go interface, the package that declares it, the
// remote calls the interface exposes and a [GenerationConfig] describing
// where the generated implementation goes and which environments it can
// target. Contracts are usually read from YAML with [ParseFile]:
//
//	c, err := contract.ParseFile("nasa.yaml")
//	if err != nil {
//	    return err
//	}
//	env, err := contract.ResolveEnvironment(c, "local")
//
// A Contract is read-only once parsed; every function in this package
// treats it as such.
package contract

import (
	"strings"

	"github.com/induct/apiary/internal/naming"
)

// Placeholders expanded in GenerationConfig.TargetPackage and TargetClassName.
const (
	// RootPlaceholder expands to the contract namespace.
	RootPlaceholder = "${root}"
	// ClientNamePlaceholder expands to the contract name.
	ClientNamePlaceholder = "${clientName}"
)

// Defaults applied when the generation config leaves a target unset.
const (
	DefaultTargetPackage   = RootPlaceholder + "/impl"
	DefaultTargetClassName = ClientNamePlaceholder + "Client"
)

// ParamFormat names the case convention applied to parameter names to form
// wire keys.
type ParamFormat string

// Supported parameter formats.
const (
	LowerCamel      ParamFormat = "lowerCamel"
	UpperCamel      ParamFormat = "upperCamel"
	LowerUnderscore ParamFormat = "lowerUnderscore"
	UpperUnderscore ParamFormat = "upperUnderscore"
	LowerHyphen     ParamFormat = "lowerHyphen"
)

// Convention resolves the format to a naming convention. The empty format
// is lowerCamel.
func (f ParamFormat) Convention() (naming.Convention, error) {
	return naming.ParseConvention(string(f))
}

// WireKey applies the format to a parameter name. Unknown formats leave the
// name untouched; Contract.Validate rejects them beforehand.
func (f ParamFormat) WireKey(name string) string {
	c, err := f.Convention()
	if err != nil {
		return name
	}
	return c.Apply(name)
}

// Contract describes a Go interface whose methods are remote calls.
type Contract struct {
	// Name is the interface name, e.g. "NASA".
	Name string `yaml:"name" json:"name"`
	// Namespace is the import path of the package declaring the interface
	// and the types its calls return.
	Namespace string `yaml:"namespace" json:"namespace"`
	// Imports lists additional import paths referenced by type expressions.
	Imports []string `yaml:"imports,omitempty" json:"imports,omitempty"`
	// Description is copied into the generated type comment.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Config is required; a contract without one cannot be generated.
	Config *GenerationConfig `yaml:"config" json:"config"`
	// Calls are rendered in declaration order.
	Calls []CallDescriptor `yaml:"calls" json:"calls"`
}

// GenerationConfig controls naming and placement of the generated client.
type GenerationConfig struct {
	ParamFormat     ParamFormat   `yaml:"paramFormat,omitempty" json:"paramFormat,omitempty"`
	TargetPackage   string        `yaml:"targetPackage,omitempty" json:"targetPackage,omitempty"`
	TargetClassName string        `yaml:"targetClassName,omitempty" json:"targetClassName,omitempty"`
	Environments    []Environment `yaml:"environments" json:"environments"`
}

// Environment binds a name to the scheme and authority prepended to every
// call path.
type Environment struct {
	Name string `yaml:"name" json:"name"`
	Root string `yaml:"root" json:"root"`
}

// CallDescriptor describes one remote call.
type CallDescriptor struct {
	// Name becomes the exported method name.
	Name string `yaml:"name" json:"name"`
	// Path is appended verbatim to the environment root.
	Path string `yaml:"path" json:"path"`
	// Returns is a Go type expression. Bare exported identifiers refer to
	// the namespace package.
	Returns string `yaml:"returns" json:"returns"`
	// Doc is an optional description for the generated method comment.
	Doc    string      `yaml:"doc,omitempty" json:"doc,omitempty"`
	Params []Parameter `yaml:"params,omitempty" json:"params,omitempty"`
}

// Parameter is a named, typed argument of a call.
type Parameter struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// TargetPackage returns the import path of the generated package with
// placeholders expanded.
func (c *Contract) TargetPackage() string {
	tmpl := DefaultTargetPackage
	if c.Config != nil && c.Config.TargetPackage != "" {
		tmpl = c.Config.TargetPackage
	}
	return c.expand(tmpl)
}

// TargetClass returns the name of the generated type with placeholders
// expanded.
func (c *Contract) TargetClass() string {
	tmpl := DefaultTargetClassName
	if c.Config != nil && c.Config.TargetClassName != "" {
		tmpl = c.Config.TargetClassName
	}
	return c.expand(tmpl)
}

// UnitName returns the fully-qualified name the generated type registers
// under: "<target package>.<target class>".
func (c *Contract) UnitName() string {
	return QualifiedName(c.TargetPackage(), c.TargetClass())
}

// EnvironmentNames lists declared environments in order.
func (c *Contract) EnvironmentNames() []string {
	if c.Config == nil {
		return nil
	}
	names := make([]string, 0, len(c.Config.Environments))
	for _, env := range c.Config.Environments {
		names = append(names, env.Name)
	}
	return names
}

func (c *Contract) expand(tmpl string) string {
	return strings.NewReplacer(
		RootPlaceholder, c.Namespace,
		ClientNamePlaceholder, c.Name,
	).Replace(tmpl)
}

// QualifiedName joins an import path and a type name.
func QualifiedName(pkgPath, name string) string {
	return pkgPath + "." + name
}

// SplitQualifiedName splits "<import path>.<name>" at the last dot.
// The boolean is false when there is no dot.
func SplitQualifiedName(fqn string) (pkgPath, name string, ok bool) {
	i := strings.LastIndex(fqn, ".")
	if i <= 0 || i == len(fqn)-1 {
		return "", "", false
	}
	// Import paths may contain dots in their first element, type names may not.
	if strings.Contains(fqn[i+1:], "/") {
		return "", "", false
	}
	return fqn[:i], fqn[i+1:], true
}
