package apiary

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/apiclient"
	"github.com/induct/apiary/compiler"
	"github.com/induct/apiary/contract"
	"github.com/induct/apiary/generator"
	"github.com/induct/apiary/inject"
	"github.com/induct/apiary/loader"
	"github.com/induct/apiary/logging"
)

// Pipeline stages named by apiaryerrors.GenerationFailure.
const (
	StageValidate    = "validate"
	StageResolve     = "resolve"
	StageRender      = "render"
	StageMaterialize = "materialize"
	StageLoad        = "load"
)

// Apiary generates clients from contracts. It is safe for concurrent use;
// concurrent runs at the same target race on the write step and at most
// one of them succeeds.
type Apiary struct {
	generator *generator.Generator
	pipeline  *compiler.Pipeline
	loader    *loader.Loader
	logger    logging.Logger
}

// Option configures an Apiary.
type Option func(*config) error

type config struct {
	resolver      inject.Resolver
	registry      *apiclient.Registry
	logger        logging.Logger
	moduleDir     string
	trimPrefix    string
	generatorOpts []generator.Option
}

// WithResolver sets the resolver supplying client dependencies. Types it
// does not bind fall back to defaults: http.DefaultClient as the
// apiclient.Transport, UserAgent() as the apiclient.UserAgent and the
// Apiary's logger.
func WithResolver(r inject.Resolver) Option {
	return func(cfg *config) error {
		cfg.resolver = r
		return nil
	}
}

// WithRegistry sets the registry linked units are looked up in.
// Default: apiclient.DefaultRegistry
func WithRegistry(r *apiclient.Registry) Option {
	return func(cfg *config) error {
		cfg.registry = r
		return nil
	}
}

// WithLogger sets the logger.
// Default: NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// WithModuleDir sets the Go module generated source is compiled against.
// Default: the working directory
func WithModuleDir(dir string) Option {
	return func(cfg *config) error {
		if dir == "" {
			return fmt.Errorf("apiary: module directory cannot be empty")
		}
		cfg.moduleDir = dir
		return nil
	}
}

// WithTrimPrefix removes an import path prefix when mapping target
// packages below the output root.
func WithTrimPrefix(prefix string) Option {
	return func(cfg *config) error {
		cfg.trimPrefix = prefix
		return nil
	}
}

// WithGeneratorOptions passes options to the source generator.
func WithGeneratorOptions(opts ...generator.Option) Option {
	return func(cfg *config) error {
		cfg.generatorOpts = append(cfg.generatorOpts, opts...)
		return nil
	}
}

// New creates an Apiary writing generated source below outputRoot.
func New(outputRoot string, opts ...Option) (*Apiary, error) {
	if outputRoot == "" {
		return nil, fmt.Errorf("apiary: output root cannot be empty")
	}
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	logger := logging.OrNop(cfg.logger)

	gen, err := generator.New(append([]generator.Option{generator.WithLogger(logger)}, cfg.generatorOpts...)...)
	if err != nil {
		return nil, err
	}

	pipelineOpts := []compiler.Option{compiler.WithLogger(logger)}
	if cfg.moduleDir != "" {
		pipelineOpts = append(pipelineOpts, compiler.WithModuleDir(cfg.moduleDir))
	}
	pipeline, err := compiler.NewPipeline(compiler.Layout{Root: outputRoot, TrimPrefix: cfg.trimPrefix}, pipelineOpts...)
	if err != nil {
		return nil, err
	}

	defaults := inject.New()
	inject.Bind[apiclient.Transport](defaults, http.DefaultClient)
	inject.Bind(defaults, apiclient.UserAgent(UserAgent()))
	inject.Bind(defaults, logger)

	return &Apiary{
		generator: gen,
		pipeline:  pipeline,
		loader:    loader.New(cfg.registry, inject.Chain(cfg.resolver, defaults), loader.WithLogger(logger)),
		logger:    logger,
	}, nil
}

// Layout returns the layout generated source is written under.
func (a *Apiary) Layout() compiler.Layout {
	return a.pipeline.Layout()
}

// ArtifactPath returns where the client for c is written, or "" for a nil
// contract.
func (a *Apiary) ArtifactPath(c *contract.Contract) string {
	if c == nil {
		return ""
	}
	return a.pipeline.Layout().Path(c.TargetPackage(), c.TargetClass())
}

// Clean removes the client previously written for c so the next run can
// write it again. A missing file is not an error.
func (a *Apiary) Clean(c *contract.Contract) error {
	path := a.ArtifactPath(c)
	if path == "" {
		return &apiaryerrors.ValidationError{Message: "contract is nil"}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("apiary: removing %s: %w", path, err)
	}
	a.logger.Debug("removed generated client", "path", path)
	return nil
}

// Render validates c and returns the client source for environmentName
// without writing it.
func (a *Apiary) Render(c *contract.Contract, environmentName string) ([]byte, error) {
	r := a.newRun(c, environmentName)
	env, err := r.prepare(c, environmentName)
	if err != nil {
		return nil, err
	}
	src, err := a.generator.Render(c, c.TargetPackage(), c.TargetClass(), env)
	if err != nil {
		return nil, r.fail(StageRender, err)
	}
	return src, nil
}

// Materialize validates c, renders the client for environmentName, writes
// it under the output root and compiles it. It is the build-time half of
// GenerateClient.
func (a *Apiary) Materialize(c *contract.Contract, environmentName string) (*compiler.Compiled, error) {
	r := a.newRun(c, environmentName)
	compiled, _, err := r.materialize(c, environmentName)
	return compiled, err
}

// GenerateClient produces an instance implementing the interface c
// describes, bound to the environment named environmentName.
//
// Any failure is returned as *apiaryerrors.GenerationFailure. The generated
// file is not removed when a later stage fails.
func (a *Apiary) GenerateClient(c *contract.Contract, environmentName string) (any, error) {
	r := a.newRun(c, environmentName)
	compiled, env, err := r.materialize(c, environmentName)
	if err != nil {
		return nil, err
	}

	instance, err := a.loader.LoadFor(a.pipeline.Layout(), compiled.Artifact.UnitName(), env, compiled.Artifact.Digest)
	if err != nil {
		return nil, r.fail(StageLoad, err)
	}
	r.log.Info("generated client", "unit", compiled.Artifact.UnitName(), "path", compiled.Artifact.Path)
	return instance, nil
}

// Generate is GenerateClient with the instance asserted to T, normally the
// contract's interface type.
func Generate[T any](a *Apiary, c *contract.Contract, environmentName string) (T, error) {
	var zero T
	v, err := a.GenerateClient(c, environmentName)
	if err != nil {
		return zero, err
	}
	client, ok := v.(T)
	if !ok {
		return zero, &apiaryerrors.GenerationFailure{
			Contract: c.Name,
			Stage:    StageLoad,
			Cause: &apiaryerrors.LoadError{
				Unit:    c.UnitName(),
				Message: fmt.Sprintf("instance %T does not implement %s", v, inject.TypeOf[T]()),
			},
		}
	}
	return client, nil
}

// run carries the logger of one pipeline run.
type run struct {
	a        *Apiary
	contract string
	log      logging.Logger
}

func (a *Apiary) newRun(c *contract.Contract, environmentName string) *run {
	name := ""
	if c != nil {
		name = c.Name
	}
	return &run{
		a:        a,
		contract: name,
		log:      a.logger.With("run", uuid.NewString(), "contract", name, "environment", environmentName),
	}
}

func (r *run) fail(stage string, err error) error {
	r.log.Error("client generation failed", "stage", stage, "error", err)
	return &apiaryerrors.GenerationFailure{Contract: r.contract, Stage: stage, Cause: err}
}

// prepare runs the validate and resolve stages.
func (r *run) prepare(c *contract.Contract, environmentName string) (contract.Environment, error) {
	if c == nil {
		return contract.Environment{}, r.fail(StageValidate, &apiaryerrors.ValidationError{Message: "contract is nil"})
	}
	if err := c.Validate(); err != nil {
		return contract.Environment{}, r.fail(StageValidate, err)
	}
	env, err := contract.ResolveEnvironment(c, environmentName)
	if err != nil {
		return contract.Environment{}, r.fail(StageResolve, err)
	}
	return env, nil
}

func (r *run) materialize(c *contract.Contract, environmentName string) (*compiler.Compiled, contract.Environment, error) {
	env, err := r.prepare(c, environmentName)
	if err != nil {
		return nil, contract.Environment{}, err
	}

	pkg, class := c.TargetPackage(), c.TargetClass()
	src, err := r.a.generator.Render(c, pkg, class, env)
	if err != nil {
		return nil, env, r.fail(StageRender, err)
	}
	r.log.Debug("rendered client", "package", pkg, "class", class)

	compiled, err := r.a.pipeline.Materialize(r.a.pipeline.Artifact(pkg, class, src))
	if err != nil {
		return nil, env, r.fail(StageMaterialize, err)
	}
	return compiled, env, nil
}
