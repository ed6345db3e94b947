package compute

import (
	"sort"

	"github.com/san-kum/isingsim/internal/ising"
)

// Backend is an external Metropolis engine that works on a borrowed lattice
// buffer. The buffer is handed over once by Attach and mutated in place by
// every Update call; it must never be reallocated while attached.
type Backend interface {
	Name() string
	Available() bool
	// Attach stores a non-owning handle to an l×l row-major spin buffer and
	// seeds the backend's own random stream.
	Attach(spins []int8, l int, seed int64) error
	// Update runs mcs sweeps of l² single-site trials at inverse temperature
	// beta and reduced field.
	Update(mcs int, beta, field float64) error
	// Handle returns the buffer passed to Attach, or nil.
	Handle() []int8
	Cleanup()
}

// Registry maps backend names to constructors. Nothing is probed or
// compiled until Lookup is called.
type Registry struct {
	backends map[string]func() Backend
}

func NewRegistry() *Registry {
	r := &Registry{backends: make(map[string]func() Backend)}
	r.Register("cpu", func() Backend { return NewCPUBackend() })
	return r
}

func (r *Registry) Register(name string, fn func() Backend) {
	if name == "" || fn == nil {
		return
	}
	r.backends[name] = fn
}

// Lookup builds the named backend. Unknown or unavailable backends return a
// resource error.
func (r *Registry) Lookup(name string) (Backend, error) {
	fn, ok := r.backends[name]
	if !ok {
		return nil, ising.ResourceErrorf("lookup backend", "unknown backend %q (available: %v)", name, r.Names())
	}
	b := fn()
	if !b.Available() {
		return nil, ising.ResourceErrorf("lookup backend", "backend %q is not available on this host", name)
	}
	return b, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
