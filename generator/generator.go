package generator

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"
	"text/template"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/apiclient"
	"github.com/induct/apiary/contract"
	"github.com/induct/apiary/logging"
)

// Runtime packages every generated client imports.
const (
	runtimeImport = "github.com/induct/apiary/apiclient"
	injectImport  = "github.com/induct/apiary/inject"
)

// Generator renders client source from contracts. A Generator holds no
// per-call state and is safe for concurrent use.
type Generator struct {
	tmpl   *template.Template
	logger logging.Logger
}

// Option configures a Generator.
type Option func(*generateConfig) error

// generateConfig holds configuration for a Generator
type generateConfig struct {
	templateText *string
	logger       logging.Logger
}

// WithTemplate replaces the built-in client template. The template receives
// a *ClientFileData.
func WithTemplate(text string) Option {
	return func(cfg *generateConfig) error {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("generator: template cannot be empty")
		}
		cfg.templateText = &text
		return nil
	}
}

// WithLogger sets the logger for render diagnostics.
// Default: NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{logger: logging.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// New creates a Generator.
func New(opts ...Option) (*Generator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		tmpl:   defaultTemplates.Lookup(clientTemplateName),
		logger: logging.OrNop(cfg.logger),
	}
	if cfg.templateText != nil {
		tmpl, err := parseTemplate(*cfg.templateText)
		if err != nil {
			return nil, fmt.Errorf("generator: parsing template: %w", err)
		}
		g.tmpl = tmpl
	}
	return g, nil
}

// Render produces the source of a client implementing c for env, declared
// as type targetClass in package targetPackage.
//
// Rendering is pure: identical inputs yield identical bytes. When the
// rendered text is not valid Go it is returned unformatted so that
// compilation can report what is wrong with it.
func (g *Generator) Render(c *contract.Contract, targetPackage, targetClass string, env contract.Environment) ([]byte, error) {
	data, err := buildClientFileData(c, targetPackage, targetClass, env)
	if err != nil {
		return nil, err
	}

	buf := getRenderBuffer(len(c.Calls))
	defer putRenderBuffer(buf, len(c.Calls))

	if err := g.tmpl.Execute(buf, data); err != nil {
		return nil, &apiaryerrors.GenerationError{Op: "render", Message: "executing client template", Cause: err}
	}

	raw := bytes.Clone(buf.Bytes())
	formatted, err := formatAndFixImports(targetClass+".go", raw)
	if err != nil {
		g.logger.Debug("rendered source does not format", "class", targetClass, "error", err)
		return stampDigest(raw), nil
	}

	g.logger.Debug("rendered client", "contract", c.Name, "package", targetPackage, "class", targetClass, "bytes", len(formatted))
	return stampDigest(formatted), nil
}

// digestPlaceholder has the width of a hex SHA-256 so stamping never
// changes the formatting of the file.
var digestPlaceholder = strings.Repeat("0", 64)

// stampDigest replaces the digest placeholder with the digest of src.
// Source without a placeholder is returned unchanged.
func stampDigest(src []byte) []byte {
	quoted := []byte(strconv.Quote(digestPlaceholder))
	if !bytes.Contains(src, quoted) {
		return src
	}
	return bytes.Replace(src, quoted, []byte(strconv.Quote(apiclient.SourceDigest(src))), 1)
}

func buildClientFileData(c *contract.Contract, targetPackage, targetClass string, env contract.Environment) (*ClientFileData, error) {
	if c == nil {
		return nil, &apiaryerrors.ValidationError{Message: "contract is nil"}
	}
	if c.Config == nil {
		return nil, &apiaryerrors.ValidationError{Contract: c.Name, Field: "config", Message: "contract declares no generation config"}
	}

	data := &ClientFileData{
		PackageName: packageIdent(targetPackage),
		Source: SourceData{
			Contract:    c.Name,
			Namespace:   c.Namespace,
			Environment: env.Name,
			Root:        env.Root,
		},
		TypeName:        targetClass,
		ConstructorName: "New" + targetClass,
		UnitConst:       targetClass + "UnitName",
		UnitName:        contract.QualifiedName(targetPackage, targetClass),
		StdImports:      []ImportData{{Path: "context"}},
		Digest:          digestPlaceholder,
	}

	// A client generated into the namespace package itself refers to the
	// contract's types without a qualifier.
	qualifier := ""
	taken := map[string]bool{"apiclient": true, "inject": true, "context": true}
	data.Imports = append(data.Imports, ImportData{Path: runtimeImport}, ImportData{Path: injectImport})
	if c.Namespace != targetPackage {
		qualifier = packageIdent(c.Namespace)
		imp := ImportData{Path: c.Namespace}
		if qualifier != path.Base(c.Namespace) {
			imp.Alias = qualifier
		}
		data.Imports = append(data.Imports, imp)
		taken[qualifier] = true
	}
	seen := map[string]bool{"context": true, runtimeImport: true, injectImport: true, c.Namespace: true}
	for _, extra := range c.Imports {
		if seen[extra] {
			continue
		}
		seen[extra] = true
		if isStdImport(extra) {
			data.StdImports = append(data.StdImports, ImportData{Path: extra})
		} else {
			data.Imports = append(data.Imports, ImportData{Path: extra})
		}
		taken[packageIdent(extra)] = true
	}

	if qualifier != "" {
		data.InterfaceType = qualifier + "." + c.Name
	} else {
		data.InterfaceType = c.Name
	}
	data.Description = formatMultilineComment(c.Description, targetClass, "")

	for _, call := range c.Calls {
		m, err := buildMethodData(call, env, c.Config.ParamFormat, qualifier, taken)
		if err != nil {
			return nil, &apiaryerrors.ValidationError{Contract: c.Name, Field: "calls." + call.Name, Message: "cannot render call", Cause: err}
		}
		data.Methods = append(data.Methods, m)
	}

	return data, nil
}

func buildMethodData(call contract.CallDescriptor, env contract.Environment, paramFormat contract.ParamFormat, qualifier string, taken map[string]bool) (MethodData, error) {
	m := MethodData{
		Name:  contract.MethodName(call.Name),
		Route: env.Root + call.Path,
	}

	result, err := qualifyType(call.Returns, qualifier)
	if err != nil {
		return MethodData{}, err
	}
	m.ResultType = result

	doc := call.Doc
	if doc == "" {
		doc = "calls GET " + m.Route + "."
	}
	m.Comment = formatMultilineComment(doc, m.Name, "")

	signature := []string{"ctx context.Context"}
	reserved := make(map[string]bool, len(localNames)+len(taken))
	for name := range localNames {
		reserved[name] = true
	}
	for name := range taken {
		reserved[name] = true
	}

	for _, p := range call.Params {
		goType, err := qualifyType(p.Type, qualifier)
		if err != nil {
			return MethodData{}, err
		}
		pd := ParamData{
			VarName:  escapeIdent(p.Name, reserved),
			WireKey:  paramFormat.WireKey(p.Name),
			Optional: p.Optional,
		}
		reserved[pd.VarName] = true
		if p.Optional && !isNilable(goType) {
			goType = "*" + goType
			pd.Deref = true
		}
		pd.GoType = goType
		signature = append(signature, pd.VarName+" "+pd.GoType)
		m.Params = append(m.Params, pd)
	}
	m.Signature = strings.Join(signature, ", ")

	return m, nil
}
