package ising

// Color names one of the two checkerboard sub-lattices.
type Color uint8

const (
	// ColorA holds the sites with odd (row+col) parity; it is updated first.
	ColorA Color = iota
	// ColorB holds the sites with even (row+col) parity.
	ColorB
)

func (c Color) String() string {
	if c == ColorA {
		return "A"
	}
	return "B"
}

// Checkerboard partitions an even L×L torus into two sub-lattices with no
// nearest neighbours in common. Site lists are stored as buffer offsets in
// row-major order.
type Checkerboard struct {
	l     int
	sites [2][]int
}

// NewCheckerboard builds the partition. Odd L has no valid two-colouring on a
// torus and is rejected.
func NewCheckerboard(l int) (*Checkerboard, error) {
	if l <= 0 {
		return nil, DomainErrorf("checkerboard", "length must be positive, got %d", l)
	}
	if l%2 != 0 {
		return nil, DomainErrorf("checkerboard", "length must be even, got %d", l)
	}
	half := l * l / 2
	c := &Checkerboard{l: l}
	c.sites[ColorA] = make([]int, 0, half)
	c.sites[ColorB] = make([]int, 0, half)
	for i := 0; i < l; i++ {
		for j := 0; j < l; j++ {
			col := c.Color(i, j)
			c.sites[col] = append(c.sites[col], i*l+j)
		}
	}
	return c, nil
}

func (c *Checkerboard) Len() int { return c.l }

// Color returns the sub-lattice of (i, j); indices wrap.
func (c *Checkerboard) Color(i, j int) Color {
	if ((i%c.l+c.l)%c.l+(j%c.l+c.l)%c.l)%2 == 1 {
		return ColorA
	}
	return ColorB
}

// Sites returns the buffer offsets of one colour. The slice must not be
// modified.
func (c *Checkerboard) Sites(col Color) []int { return c.sites[col] }
