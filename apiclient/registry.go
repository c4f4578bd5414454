package apiclient

import (
	"fmt"
	"slices"
	"sync"

	"github.com/induct/apiary/inject"
)

// Constructor builds a client instance with dependencies from r.
type Constructor func(r inject.Resolver) (any, error)

// Unit describes a generated client linked into the program.
type Unit struct {
	// Name is the fully-qualified name "<package>.<type>"
	Name string
	// Environment is the environment the unit was generated for
	Environment string
	// Root is the environment root baked into the unit's routes
	Root string
	// Digest is the SourceDigest of the file the unit was generated as
	Digest string
	// New constructs an instance
	New Constructor
}

// Registry maps fully-qualified unit names to units.
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	units map[string]Unit
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]Unit)}
}

// DefaultRegistry receives the registrations of generated packages.
var DefaultRegistry = NewRegistry()

// Register adds u. It panics if the unit has no name or constructor, or if
// its name is already registered.
func (r *Registry) Register(u Unit) {
	if u.Name == "" {
		panic("apiclient: Register with empty name")
	}
	if u.New == nil {
		panic("apiclient: Register constructor is nil for " + u.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.units[u.Name]; dup {
		panic(fmt.Sprintf("apiclient: Register called twice for %s", u.Name))
	}
	r.units[u.Name] = u
}

// Lookup returns the unit registered under name.
func (r *Registry) Lookup(name string) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[name]
	return u, ok
}

// Names returns the registered unit names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register adds u to DefaultRegistry. Generated packages call it from init.
func Register(u Unit) {
	DefaultRegistry.Register(u)
}
