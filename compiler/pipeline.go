package compiler

import (
	"fmt"
	"path/filepath"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/apiclient"
	"github.com/induct/apiary/contract"
	"github.com/induct/apiary/logging"
)

// Artifact is rendered source bound to its location. It is not modified
// after creation.
type Artifact struct {
	// Source is the rendered Go source
	Source []byte
	// Package is the target import path
	Package string
	// Class is the target type name
	Class string
	// Path is the file location under the layout root
	Path string
	// Digest is the SourceDigest of Source
	Digest string
}

// UnitName returns the fully-qualified name the unit registers under.
func (a *Artifact) UnitName() string {
	return contract.QualifiedName(a.Package, a.Class)
}

// Compiled is an artifact whose compilation produced no diagnostics.
type Compiled struct {
	Artifact    *Artifact
	Diagnostics []apiaryerrors.Diagnostic
}

// Pipeline writes artifacts under a layout and compiles them.
type Pipeline struct {
	layout  Layout
	checker *Checker
	logger  logging.Logger
}

// Option configures a Pipeline.
type Option func(*pipelineConfig) error

type pipelineConfig struct {
	moduleDir string
	logger    logging.Logger
}

// WithModuleDir sets the directory of the Go module whose packages
// generated source may import.
// Default: the working directory
func WithModuleDir(dir string) Option {
	return func(cfg *pipelineConfig) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("compiler: resolving module directory: %w", err)
		}
		cfg.moduleDir = abs
		return nil
	}
}

// WithLogger sets the logger.
// Default: NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *pipelineConfig) error {
		cfg.logger = l
		return nil
	}
}

// NewPipeline creates a Pipeline writing under layout.
func NewPipeline(layout Layout, opts ...Option) (*Pipeline, error) {
	if layout.Root == "" {
		return nil, fmt.Errorf("compiler: layout root cannot be empty")
	}
	cfg := &pipelineConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	logger := logging.OrNop(cfg.logger)
	return &Pipeline{
		layout:  layout,
		checker: NewChecker(cfg.moduleDir, logger),
		logger:  logger,
	}, nil
}

// Layout returns the pipeline's layout.
func (p *Pipeline) Layout() Layout {
	return p.layout
}

// Artifact binds source for class in pkg to its layout location.
func (p *Pipeline) Artifact(pkg, class string, src []byte) *Artifact {
	return &Artifact{
		Source:  src,
		Package: pkg,
		Class:   class,
		Path:    p.layout.Path(pkg, class),
		Digest:  apiclient.SourceDigest(src),
	}
}

// Compile type-checks the package holding a written artifact.
func (p *Pipeline) Compile(a *Artifact) (*Compiled, error) {
	diags, err := p.checker.Check(filepath.Dir(a.Path))
	if err != nil {
		return nil, &apiaryerrors.CompilationError{Path: a.Path, Cause: err}
	}
	if len(diags) > 0 {
		p.logger.Debug("compilation produced diagnostics", "path", a.Path, "count", len(diags))
		return nil, &apiaryerrors.CompilationError{Path: a.Path, Diagnostics: diags}
	}
	return &Compiled{Artifact: a, Diagnostics: []apiaryerrors.Diagnostic{}}, nil
}

// Materialize writes the artifact and compiles it. The written file is
// kept when compilation fails.
func (p *Pipeline) Materialize(a *Artifact) (*Compiled, error) {
	if err := Write(a); err != nil {
		return nil, err
	}
	p.logger.Debug("wrote artifact", "path", a.Path, "bytes", len(a.Source))

	compiled, err := p.Compile(a)
	if err != nil {
		return nil, err
	}
	p.logger.Info("compiled artifact", "unit", a.UnitName(), "path", a.Path)
	return compiled, nil
}
