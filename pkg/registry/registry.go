package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/thermoprops/pkg/ports"
)

// ErrUnknownKind is returned by Build when no factory is registered for a kind.
var ErrUnknownKind = errors.New("engine kind not registered")

// Factory builds a property engine.
// It receives the context of the caller, which must not outlive the build.
type Factory func(ctx context.Context) (ports.PropertyEngine, error)

// Registry maps engine kinds to the factories that build them.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory to the registry.
// If a factory with the same kind exists, it is overwritten.
func (r *Registry) Register(kind string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = fn
}

// Kinds lists the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Build looks up the factory of kind and runs it.
func (r *Registry) Build(ctx context.Context, kind string) (ports.PropertyEngine, error) {
	r.mu.RLock()
	fn, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	e, err := fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("build %s engine: %w", kind, err)
	}
	return e, nil
}
