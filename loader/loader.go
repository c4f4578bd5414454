// Package loader turns compiled client artifacts into live instances.
//
// Go links code at build time, so a generated client becomes loadable once
// its package is part of the program: the package registers an
// [apiclient.Unit] from init, the way database/sql drivers register
// themselves. Blank-import the generated package to link it:
//
//	import _ "example.com/clients/nasa/generated"
//
// The [Loader] then checks that the artifact exists under the layout, finds
// the unit by fully-qualified name and constructs it with the dependencies
// of an explicit [inject.Resolver].
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/apiclient"
	"github.com/induct/apiary/compiler"
	"github.com/induct/apiary/contract"
	"github.com/induct/apiary/inject"
	"github.com/induct/apiary/logging"
)

// Loader constructs registered units.
type Loader struct {
	registry *apiclient.Registry
	resolver inject.Resolver
	logger   logging.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
// Default: NopLogger
func WithLogger(l logging.Logger) Option {
	return func(ld *Loader) {
		ld.logger = logging.OrNop(l)
	}
}

// New creates a Loader looking units up in registry and constructing them
// with resolver. A nil registry selects apiclient.DefaultRegistry.
func New(registry *apiclient.Registry, resolver inject.Resolver, opts ...Option) *Loader {
	if registry == nil {
		registry = apiclient.DefaultRegistry
	}
	ld := &Loader{registry: registry, resolver: resolver, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load constructs the unit registered as fqn whose artifact lives under
// layout. Failures are reported as *apiaryerrors.LoadError.
func (l *Loader) Load(layout compiler.Layout, fqn string) (any, error) {
	unit, err := l.lookup(layout, fqn)
	if err != nil {
		return nil, err
	}
	return l.construct(unit)
}

// LoadFor is Load with the additional requirement that the linked unit was
// generated for env from source with the given digest. A unit linked from
// another generation fails with a LoadError wrapping
// apiaryerrors.ErrStaleUnit.
func (l *Loader) LoadFor(layout compiler.Layout, fqn string, env contract.Environment, digest string) (any, error) {
	unit, err := l.lookup(layout, fqn)
	if err != nil {
		return nil, err
	}
	if unit.Environment != env.Name || unit.Root != env.Root {
		return nil, &apiaryerrors.LoadError{
			Unit: fqn,
			Message: fmt.Sprintf("unit was linked for environment %q (%s), not %q (%s); regenerate and rebuild",
				unit.Environment, unit.Root, env.Name, env.Root),
			Cause: apiaryerrors.ErrStaleUnit,
		}
	}
	if unit.Digest != digest {
		return nil, &apiaryerrors.LoadError{
			Unit: fqn,
			Message: fmt.Sprintf("unit was linked from source with digest %s, not %s; regenerate and rebuild",
				shortDigest(unit.Digest), shortDigest(digest)),
			Cause: apiaryerrors.ErrStaleUnit,
		}
	}
	return l.construct(unit)
}

func shortDigest(d string) string {
	if d == "" {
		return "(none)"
	}
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

func (l *Loader) lookup(layout compiler.Layout, fqn string) (apiclient.Unit, error) {
	path, err := layout.PathFor(fqn)
	if err != nil {
		return apiclient.Unit{}, &apiaryerrors.LoadError{Unit: fqn, Message: "invalid unit name", Cause: err}
	}
	if _, err := os.Stat(path); err != nil {
		msg := "cannot access artifact"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "artifact not found"
		}
		return apiclient.Unit{}, &apiaryerrors.LoadError{Unit: fqn, Path: path, Message: msg, Cause: err}
	}

	unit, ok := l.registry.Lookup(fqn)
	if !ok {
		return apiclient.Unit{}, &apiaryerrors.LoadError{
			Unit:    fqn,
			Path:    path,
			Message: "package is not linked into this program",
			Cause:   apiaryerrors.ErrUnitNotFound,
		}
	}
	return unit, nil
}

func (l *Loader) construct(unit apiclient.Unit) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &apiaryerrors.LoadError{Unit: unit.Name, Message: "constructor panicked", Cause: fmt.Errorf("%v", r)}
		}
	}()

	v, err = unit.New(l.resolver)
	if err != nil {
		return nil, &apiaryerrors.LoadError{Unit: unit.Name, Message: "constructor failed", Cause: err}
	}
	if v == nil {
		return nil, &apiaryerrors.LoadError{Unit: unit.Name, Message: "constructor returned no instance"}
	}
	l.logger.Debug("loaded unit", "unit", unit.Name, "environment", unit.Environment)
	return v, nil
}
