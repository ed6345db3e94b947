package ising

// Lattice is an L×L torus of spins stored row-major. Cell (i, j) is row i,
// column j; every index is taken modulo L.
type Lattice struct {
	l     int
	spins []int8
}

// NewLattice allocates a fully magnetized (+1) lattice of side l.
func NewLattice(l int) (*Lattice, error) {
	if l <= 0 {
		return nil, DomainErrorf("new lattice", "length must be positive, got %d", l)
	}
	spins := make([]int8, l*l)
	for i := range spins {
		spins[i] = 1
	}
	return &Lattice{l: l, spins: spins}, nil
}

// Len returns the side length L.
func (lat *Lattice) Len() int { return lat.l }

// Sites returns L².
func (lat *Lattice) Sites() int { return len(lat.spins) }

func (lat *Lattice) wrap(i int) int {
	return (i%lat.l + lat.l) % lat.l
}

// Index returns the buffer offset of the wrapped coordinates (i, j).
func (lat *Lattice) Index(i, j int) int {
	return lat.wrap(i)*lat.l + lat.wrap(j)
}

func (lat *Lattice) Get(i, j int) int8 {
	return lat.spins[lat.Index(i, j)]
}

// Set writes v at (i, j). Only ±1 is accepted.
func (lat *Lattice) Set(i, j int, v int8) error {
	if v != 1 && v != -1 {
		return DomainErrorf("set", "spin must be -1 or +1, got %d", v)
	}
	lat.spins[lat.Index(i, j)] = v
	return nil
}

// Flip negates the spin at (i, j).
func (lat *Lattice) Flip(i, j int) {
	lat.spins[lat.Index(i, j)] *= -1
}

// Invert negates every spin.
func (lat *Lattice) Invert() {
	for k := range lat.spins {
		lat.spins[k] = -lat.spins[k]
	}
}

// NeighborSum returns the sum of the up, down, left and right neighbours of
// (i, j) under periodic wrap.
func (lat *Lattice) NeighborSum(i, j int) int {
	i, j = lat.wrap(i), lat.wrap(j)
	return lat.neighborSum(i, j)
}

// neighborSum expects i and j already in [0, L).
func (lat *Lattice) neighborSum(i, j int) int {
	l := lat.l
	up, down := i-1, i+1
	if up < 0 {
		up = l - 1
	}
	if down == l {
		down = 0
	}
	left, right := j-1, j+1
	if left < 0 {
		left = l - 1
	}
	if right == l {
		right = 0
	}
	s := lat.spins
	return int(s[up*l+j]) + int(s[down*l+j]) + int(s[i*l+left]) + int(s[i*l+right])
}

// NeighborSumAt is NeighborSum addressed by buffer offset.
func (lat *Lattice) NeighborSumAt(idx int) int {
	return lat.neighborSum(idx/lat.l, idx%lat.l)
}

// SpinSource draws independent uniform spins.
type SpinSource interface {
	Spin() int8
}

// InitializeRandom sets every site independently from src, row-major.
func (lat *Lattice) InitializeRandom(src SpinSource) {
	for k := range lat.spins {
		lat.spins[k] = src.Spin()
	}
}

// Spins returns the backing buffer. The slice is borrowed: callers may mutate
// cells in place but must keep them in {-1, +1}.
func (lat *Lattice) Spins() []int8 { return lat.spins }

// Copy returns an independent copy of the spin buffer.
func (lat *Lattice) Copy() []int8 {
	c := make([]int8, len(lat.spins))
	copy(c, lat.spins)
	return c
}

// Validate reports the first cell outside {-1, +1}.
func (lat *Lattice) Validate() error {
	for k, v := range lat.spins {
		if v != 1 && v != -1 {
			return ConsistencyErrorf("validate", "site (%d, %d) holds %d", k/lat.l, k%lat.l, v)
		}
	}
	return nil
}
