package compute

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/isingsim/internal/ising"
)

// CPUBackend is the in-process reference backend. It keeps row views into
// the attached buffer and draws from its own PCG stream.
type CPUBackend struct {
	l    int
	buf  []int8
	rows [][]int8
	rng  *rand.Rand
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Handle() []int8  { return c.buf }

func (c *CPUBackend) Cleanup() {
	c.buf, c.rows, c.rng, c.l = nil, nil, nil, 0
}

func (c *CPUBackend) Attach(spins []int8, l int, seed int64) error {
	if l <= 0 || len(spins) != l*l {
		return ising.ResourceErrorf("attach", "buffer of %d cells does not match length %d", len(spins), l)
	}
	c.l = l
	c.buf = spins
	c.rows = make([][]int8, l)
	for i := 0; i < l; i++ {
		c.rows[i] = spins[i*l : (i+1)*l : (i+1)*l]
	}
	stream := ising.DeriveSeed(seed, 1)
	c.rng = rand.New(rand.NewPCG(uint64(stream), uint64(seed)))
	return nil
}

func (c *CPUBackend) Update(mcs int, beta, field float64) error {
	if c.buf == nil {
		return ising.ResourceErrorf("update", "backend %s has no attached lattice", c.Name())
	}
	l := c.l
	s := c.rows
	fl := float64(l)
	for c0 := 0; c0 < mcs; c0++ {
		for c1 := 0; c1 < l*l; c1++ {
			i := int(math.Floor(c.rng.Float64() * fl))
			j := int(math.Floor(c.rng.Float64() * fl))

			de := float64(s[i][(j+1)%l])
			de += float64(s[i][(j-1+l)%l])
			de += float64(s[(i+1)%l][j])
			de += float64(s[(i-1+l)%l][j])
			de *= 2 * float64(s[i][j])
			de += 2.0 * field * float64(s[i][j])

			p := math.Exp(-beta * de)
			if c.rng.Float64() < p {
				s[i][j] *= -1
			}
		}
	}
	return nil
}
