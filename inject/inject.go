// Package inject provides the explicit dependency container handed to
// generated client constructors.
//
// Bindings are keyed by Go type. Interfaces are bound through their type
// parameter so the key is the interface, not the concrete value:
//
//	c := inject.New()
//	inject.Bind[apiclient.Transport](c, http.DefaultClient)
//	inject.Provide(c, func(r inject.Resolver) (logging.Logger, error) {
//	    return logging.NewSlogAdapter(nil), nil
//	})
//
//	t, err := inject.Resolve[apiclient.Transport](c)
package inject

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotBound is returned when no binding exists for a requested type.
var ErrNotBound = errors.New("inject: no binding for type")

// Resolver supplies dependencies by type.
type Resolver interface {
	Resolve(t reflect.Type) (any, error)
}

// Provider constructs a value on demand. It may resolve its own
// dependencies through r.
type Provider func(r Resolver) (any, error)

// Container is a Resolver backed by type-keyed bindings. A Container is safe
// for concurrent use.
type Container struct {
	mu        sync.RWMutex
	providers map[reflect.Type]Provider
	parent    Resolver
}

// New creates an empty Container.
func New() *Container {
	return &Container{providers: make(map[reflect.Type]Provider)}
}

// Extend creates a Container that falls back to parent for types it does
// not bind itself.
func Extend(parent Resolver) *Container {
	child := New()
	child.parent = parent
	return child
}

// Child is shorthand for Extend(c).
func (c *Container) Child() *Container {
	return Extend(c)
}

// Register binds t to p, replacing any previous binding.
func (c *Container) Register(t reflect.Type, p Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[t] = p
}

// Resolve implements Resolver.
func (c *Container) Resolve(t reflect.Type) (any, error) {
	c.mu.RLock()
	p, ok := c.providers[t]
	c.mu.RUnlock()

	if !ok {
		if c.parent != nil {
			return c.parent.Resolve(t)
		}
		return nil, fmt.Errorf("%w %s", ErrNotBound, t)
	}

	v, err := p(c)
	if err != nil {
		return nil, fmt.Errorf("inject: providing %s: %w", t, err)
	}
	return v, nil
}

// Bound reports whether t has a binding in c or its parents.
func (c *Container) Bound(t reflect.Type) bool {
	c.mu.RLock()
	_, ok := c.providers[t]
	c.mu.RUnlock()
	if ok {
		return true
	}
	if parent, isContainer := c.parent.(*Container); isContainer {
		return parent.Bound(t)
	}
	return false
}

var _ Resolver = (*Container)(nil)

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Bind binds T to a fixed value.
func Bind[T any](c *Container, v T) {
	c.Register(TypeOf[T](), func(Resolver) (any, error) { return v, nil })
}

// Provide binds T to a constructor invoked on every resolution.
func Provide[T any](c *Container, fn func(r Resolver) (T, error)) {
	c.Register(TypeOf[T](), func(r Resolver) (any, error) { return fn(r) })
}

// Singleton binds T to a constructor invoked at most once. A failed
// construction is not cached.
func Singleton[T any](c *Container, fn func(r Resolver) (T, error)) {
	var (
		mu    sync.Mutex
		done  bool
		value T
	)
	c.Register(TypeOf[T](), func(r Resolver) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return value, nil
		}
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		value, done = v, true
		return value, nil
	})
}

// Resolve fetches T from r.
func Resolve[T any](r Resolver) (T, error) {
	var zero T
	if r == nil {
		return zero, fmt.Errorf("%w %s: nil resolver", ErrNotBound, TypeOf[T]())
	}
	v, err := r.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("inject: binding for %s holds %T", TypeOf[T](), v)
	}
	return typed, nil
}

// ResolveOr fetches T from r, returning fallback when T is not bound.
// Other resolution errors are returned unchanged.
func ResolveOr[T any](r Resolver, fallback T) (T, error) {
	v, err := Resolve[T](r)
	if errors.Is(err, ErrNotBound) {
		return fallback, nil
	}
	if err != nil {
		return v, err
	}
	return v, nil
}

// Chain returns a Resolver that consults resolvers in order and answers
// with the first one binding the requested type. Nil resolvers are skipped.
func Chain(resolvers ...Resolver) Resolver {
	return chain(resolvers)
}

type chain []Resolver

func (c chain) Resolve(t reflect.Type) (any, error) {
	for _, r := range c {
		if r == nil {
			continue
		}
		v, err := r.Resolve(t)
		if errors.Is(err, ErrNotBound) {
			continue
		}
		return v, err
	}
	return nil, fmt.Errorf("%w %s", ErrNotBound, t)
}
