// Package ops implements the operation library: named, parameterized,
// stateless image transforms applied to a region of a buffer.
package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

// Operation is a single named image transform. Implementations must be
// stateless: Apply never mutates its input buffer and may be called
// concurrently.
type Operation interface {
	// Name returns the registry key for this operation.
	Name() string

	// Apply runs the transform over the region of buf described by region,
	// returning a new buffer. Parameters outside the region are untouched.
	Apply(buf *imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error)

	// ValidateParams rejects out-of-range parameters with a human-readable
	// reason. A rejection is a local refusal to run, not a fatal error;
	// the caller decides whether it aborts the pipeline.
	ValidateParams(params map[string]float64) error
}

// Registry maps operation names to implementations.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// Register adds an operation under its name, replacing any previous entry.
func (r *Registry) Register(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op.Name()] = op
}

// Lookup resolves an operation by name.
func (r *Registry) Lookup(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// Names returns the registered operation names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry holds the operations registered by this package's init
// functions.
var defaultRegistry = NewRegistry()

// Default returns the registry pre-populated with the built-in operations.
func Default() *Registry {
	return defaultRegistry
}

// Lookup resolves an operation from the default registry.
func Lookup(name string) (Operation, error) {
	return defaultRegistry.Lookup(name)
}

// param returns the named parameter or fallback when absent.
func param(params map[string]float64, key string, fallback float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return fallback
}

// clampByte converts a float pixel value back to the 0..255 range.
func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
