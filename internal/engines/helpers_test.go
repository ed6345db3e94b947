package engines_test

import (
	"math"

	"github.com/san-kum/isingsim/internal/engines"
	"github.com/san-kum/isingsim/internal/ising"
)

// recordingRandom forwards to a Source and keeps every draw in order.
type recordingRandom struct {
	src    *ising.Source
	ints   []int
	floats []float64
}

func (r *recordingRandom) IntN(n int) int {
	v := r.src.IntN(n)
	r.ints = append(r.ints, v)
	return v
}

func (r *recordingRandom) Float64() float64 {
	v := r.src.Float64()
	r.floats = append(r.floats, v)
	return v
}

// referenceTrials replays recorded draws through a direct Hamiltonian
// difference: H = E - hM, accept when exp(-ΔH/T) > u.
func referenceTrials(lat *ising.Lattice, ints []int, floats []float64, temperature, field float64) int {
	hamiltonian := func() float64 {
		return float64(ising.Energy(lat)) - field*float64(ising.Magnetization(lat))
	}

	accepted := 0
	for t := range floats {
		i, j := ints[2*t], ints[2*t+1]
		before := hamiltonian()
		lat.Flip(i, j)
		dh := hamiltonian() - before
		if math.Exp(-dh/temperature) > floats[t] {
			accepted++
			continue
		}
		lat.Flip(i, j)
	}
	return accepted
}

type moments struct {
	n            int
	e1, e2       float64
	m1, m2, mAbs float64
}

func (m *moments) add(e, mag int) {
	m.n++
	m.e1 += float64(e)
	m.e2 += float64(e) * float64(e)
	m.m1 += float64(mag)
	m.m2 += float64(mag) * float64(mag)
	m.mAbs += math.Abs(float64(mag))
}

func (m *moments) meanE() float64 { return m.e1 / float64(m.n) }
func (m *moments) meanM() float64 { return m.m1 / float64(m.n) }

// run advances one step at a time and accumulates observables.
func run(eng engines.Engine, lat *ising.Lattice, src ising.Random, warmup, samples int, temperature, field float64) (*moments, error) {
	if warmup > 0 {
		if err := eng.Advance(lat, src, warmup, temperature, field); err != nil {
			return nil, err
		}
	}
	acc := &moments{}
	for k := 0; k < samples; k++ {
		if err := eng.Advance(lat, src, 1, temperature, field); err != nil {
			return nil, err
		}
		acc.add(ising.Energy(lat), ising.Magnetization(lat))
	}
	return acc, nil
}

// exactMeanEnergy enumerates every configuration of an L×L lattice.
func exactMeanEnergy(l int, temperature, field float64) float64 {
	lat, _ := ising.NewLattice(l)
	n := l * l
	var z, ez float64
	for mask := 0; mask < 1<<n; mask++ {
		spins := lat.Spins()
		for k := 0; k < n; k++ {
			spins[k] = 1
			if mask&(1<<k) != 0 {
				spins[k] = -1
			}
		}
		e := float64(ising.Energy(lat))
		w := math.Exp(-(e - field*float64(ising.Magnetization(lat))) / temperature)
		z += w
		ez += e * w
	}
	return ez / z
}

func randomLattice(l int, seed int64) *ising.Lattice {
	lat, _ := ising.NewLattice(l)
	lat.InitializeRandom(ising.NewSource(seed))
	return lat
}
