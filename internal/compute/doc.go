// Package compute provides external Metropolis backends.
//
// A backend receives a borrowed handle to the lattice buffer once, at
// attachment, and mutates it in place on every update:
//
//	reg := compute.NewRegistry()
//	backend, err := reg.Lookup("cpu")
//	err = backend.Attach(lat.Spins(), lat.Len(), seed)
//	err = backend.Update(mcs, 1/temperature, field)
//
// The handle is valid only while the owning simulation is alive. Lattices are
// never resized, so the handle cannot go stale through the public API.
//
// Backends are selected explicitly through a [Registry]; importing this
// package has no side effects.
package compute
