package engines

import (
	"fmt"

	"github.com/san-kum/isingsim/internal/compute"
	"github.com/san-kum/isingsim/internal/ising"
)

// Engine advances a lattice by mcs Monte Carlo steps in place.
type Engine interface {
	Name() string
	Advance(lat *ising.Lattice, src ising.Random, mcs int, temperature, field float64) error
}

// LengthValidator is implemented by engines with constraints on L.
type LengthValidator interface {
	ValidateLength(l int) error
}

// Attacher is implemented by engines that must bind to the lattice buffer
// once, before the first Advance.
type Attacher interface {
	Attach(lat *ising.Lattice, seed int64) error
}

// FlipCounter is implemented by engines that count accepted flips.
type FlipCounter interface {
	AcceptedFlips() int64
}

type Kind string

const (
	KindSequential   Kind = "sequential"
	KindCheckerboard Kind = "checkerboard"
	KindExternal     Kind = "external"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSequential, KindCheckerboard, KindExternal:
		return k, nil
	case "":
		return KindSequential, nil
	}
	return "", ising.DomainErrorf("parse engine", "unknown engine %q", s)
}

func Kinds() []Kind {
	return []Kind{KindSequential, KindCheckerboard, KindExternal}
}

// Options selects an engine for a lattice of side Length.
type Options struct {
	Kind    Kind
	Length  int
	Workers int
	// Backend names the compute backend for KindExternal.
	Backend  string
	Registry *compute.Registry
}

// New builds the engine described by opts.
func New(opts Options) (Engine, error) {
	switch opts.Kind {
	case KindSequential, "":
		return NewSequential(), nil
	case KindCheckerboard:
		return NewCheckerboard(opts.Length, opts.Workers)
	case KindExternal:
		reg := opts.Registry
		if reg == nil {
			reg = compute.NewRegistry()
		}
		name := opts.Backend
		if name == "" {
			name = "cpu"
		}
		b, err := reg.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("external engine: %w", err)
		}
		return NewExternal(b), nil
	}
	return nil, ising.DomainErrorf("new engine", "unknown engine %q", opts.Kind)
}
