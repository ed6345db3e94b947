package engines

import (
	"github.com/san-kum/isingsim/internal/compute"
	"github.com/san-kum/isingsim/internal/ising"
)

// External adapts a compute.Backend to the Engine contract. The backend holds
// its own random stream, so the state's source is not consumed.
type External struct {
	backend compute.Backend
	lattice *ising.Lattice
}

func NewExternal(b compute.Backend) *External {
	return &External{backend: b}
}

func (e *External) Name() string { return string(KindExternal) + ":" + e.backend.Name() }

func (e *External) Backend() compute.Backend { return e.backend }

// Attach hands the backend a borrowed handle to the lattice buffer.
func (e *External) Attach(lat *ising.Lattice, seed int64) error {
	if err := e.backend.Attach(lat.Spins(), lat.Len(), seed); err != nil {
		return err
	}
	e.lattice = lat
	return nil
}

func (e *External) Advance(lat *ising.Lattice, _ ising.Random, mcs int, temperature, field float64) error {
	if err := ising.ValidateSteps("external advance", mcs); err != nil {
		return err
	}
	if err := ising.ValidateParams("external advance", temperature, field); err != nil {
		return err
	}
	if e.lattice != lat {
		return ising.ResourceErrorf("external advance", "backend %s is not attached to this lattice", e.backend.Name())
	}
	h := e.backend.Handle()
	spins := lat.Spins()
	if len(h) != len(spins) || &h[0] != &spins[0] {
		return ising.ResourceErrorf("external advance", "backend %s holds a stale lattice handle", e.backend.Name())
	}
	return e.backend.Update(mcs, 1.0/temperature, field)
}

// Close releases the backend and drops the borrowed handle.
func (e *External) Close() error {
	e.backend.Cleanup()
	e.lattice = nil
	return nil
}
