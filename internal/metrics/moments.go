package metrics

import "math"

// Metric accumulates one statistic over synchronized (E, M) observations.
type Metric interface {
	Name() string
	Observe(energy, magnet int)
	Value() float64
	Reset()
}

// Moment is the running mean of E^p, M^p or |M|.
type Moment struct {
	name    string
	pick    func(energy, magnet int) float64
	power   int
	sum     float64
	samples int
}

func NewEnergyMoment(power int) *Moment {
	return &Moment{
		name:  momentName("energy", power),
		pick:  func(e, _ int) float64 { return float64(e) },
		power: power,
	}
}

func NewMagnetMoment(power int) *Moment {
	return &Moment{
		name:  momentName("magnet", power),
		pick:  func(_, m int) float64 { return float64(m) },
		power: power,
	}
}

func NewAbsMagnetMoment() *Moment {
	return &Moment{
		name:  "magnetAbs",
		pick:  func(_, m int) float64 { return math.Abs(float64(m)) },
		power: 1,
	}
}

func momentName(base string, power int) string {
	switch power {
	case 1:
		return base + "1"
	case 2:
		return base + "2"
	}
	return base
}

func (m *Moment) Name() string { return m.name }

func (m *Moment) Observe(energy, magnet int) {
	x := m.pick(energy, magnet)
	v := x
	for p := 1; p < m.power; p++ {
		v *= x
	}
	m.sum += v
	m.samples++
}

func (m *Moment) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Moment) Reset() {
	m.sum = 0
	m.samples = 0
}

// Moments is the standard sampling bundle: ⟨E⟩, ⟨M⟩, ⟨E²⟩, ⟨M²⟩ and ⟨|M|⟩.
type Moments struct {
	Energy1   *Moment
	Magnet1   *Moment
	Energy2   *Moment
	Magnet2   *Moment
	MagnetAbs *Moment
	samples   int
}

func NewMoments() *Moments {
	return &Moments{
		Energy1:   NewEnergyMoment(1),
		Magnet1:   NewMagnetMoment(1),
		Energy2:   NewEnergyMoment(2),
		Magnet2:   NewMagnetMoment(2),
		MagnetAbs: NewAbsMagnetMoment(),
	}
}

func (m *Moments) all() []Metric {
	return []Metric{m.Energy1, m.Magnet1, m.Energy2, m.Magnet2, m.MagnetAbs}
}

func (m *Moments) Observe(energy, magnet int) {
	for _, mt := range m.all() {
		mt.Observe(energy, magnet)
	}
	m.samples++
}

func (m *Moments) Count() int { return m.samples }

func (m *Moments) Values() map[string]float64 {
	out := make(map[string]float64, 5)
	for _, mt := range m.all() {
		out[mt.Name()] = mt.Value()
	}
	return out
}

func (m *Moments) Reset() {
	for _, mt := range m.all() {
		mt.Reset()
	}
	m.samples = 0
}
