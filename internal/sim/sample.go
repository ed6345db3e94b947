package sim

import (
	"github.com/san-kum/isingsim/internal/ising"
	"github.com/san-kum/isingsim/internal/metrics"
)

// Record is the immutable result of one sampling run. Moments are totals
// over the lattice, not per site.
type Record struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Field       float64 `json:"field" yaml:"field"`
	Age         int     `json:"age" yaml:"age"`
	SampleSize  int     `json:"sampleSize" yaml:"sampleSize"`
	Length      int     `json:"length" yaml:"length"`
	Seed        int64   `json:"seed" yaml:"seed"`
	Engine      string  `json:"engine" yaml:"engine"`
	Energy1     float64 `json:"energy1" yaml:"energy1"`
	Magnet1     float64 `json:"magnet1" yaml:"magnet1"`
	Energy2     float64 `json:"energy2" yaml:"energy2"`
	Magnet2     float64 `json:"magnet2" yaml:"magnet2"`
	MagnetAbs   float64 `json:"magnetAbs" yaml:"magnetAbs"`
}

// Sample performs sampleSize updates of sampleStep sweeps each and averages
// the synchronized observables after every one.
func (s *Simulation) Sample(sampleSize int, temperature, field float64, sampleStep int) (Record, error) {
	if sampleSize <= 0 {
		return Record{}, ising.DomainErrorf("sample", "sample size must be positive, got %d", sampleSize)
	}
	if sampleStep <= 0 {
		return Record{}, ising.DomainErrorf("sample", "sample step must be positive, got %d", sampleStep)
	}
	if err := ising.ValidateParams("sample", temperature, field); err != nil {
		return Record{}, err
	}

	m := metrics.NewMoments()
	for k := 0; k < sampleSize; k++ {
		if err := s.Update(sampleStep, temperature, field); err != nil {
			return Record{}, err
		}
		m.Observe(s.energy, s.magnet)
	}

	return Record{
		Temperature: temperature,
		Field:       field,
		Age:         s.age,
		SampleSize:  sampleSize,
		Length:      s.lattice.Len(),
		Seed:        s.seed,
		Engine:      s.engine.Name(),
		Energy1:     m.Energy1.Value(),
		Magnet1:     m.Magnet1.Value(),
		Energy2:     m.Energy2.Value(),
		Magnet2:     m.Magnet2.Value(),
		MagnetAbs:   m.MagnetAbs.Value(),
	}, nil
}
