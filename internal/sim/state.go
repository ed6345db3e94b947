package sim

import (
	"io"

	"github.com/san-kum/isingsim/internal/compute"
	"github.com/san-kum/isingsim/internal/engines"
	"github.com/san-kum/isingsim/internal/ising"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/snapshot"
)

// Observer is notified after every synchronized update.
type Observer interface {
	OnUpdate(u metrics.Update)
}

// Config selects the lattice size, seed and update engine of a simulation.
type Config struct {
	Length   int
	Seed     int64
	Engine   engines.Kind
	Backend  string
	Workers  int
	Registry *compute.Registry
}

// Simulation owns one lattice and its random stream. Energy and
// magnetization are cached and match the lattice at the last
// synchronization point (construction, Update, Randomize, Recompute).
type Simulation struct {
	lattice   *ising.Lattice
	src       *ising.Source
	engine    engines.Engine
	seed      int64
	age       int
	energy    int
	magnet    int
	flips     int64
	observers []Observer
}

func New(cfg Config) (*Simulation, error) {
	if cfg.Length <= 0 {
		return nil, ising.DomainErrorf("new simulation", "length must be positive, got %d", cfg.Length)
	}
	eng, err := engines.New(engines.Options{
		Kind:     cfg.Engine,
		Length:   cfg.Length,
		Workers:  cfg.Workers,
		Backend:  cfg.Backend,
		Registry: cfg.Registry,
	})
	if err != nil {
		return nil, err
	}
	return NewWithEngine(cfg.Length, cfg.Seed, eng)
}

// NewWithEngine builds a randomly initialized L×L state driven by eng.
func NewWithEngine(l int, seed int64, eng engines.Engine) (*Simulation, error) {
	lat, err := ising.NewLattice(l)
	if err != nil {
		return nil, err
	}
	if v, ok := eng.(engines.LengthValidator); ok {
		if err := v.ValidateLength(l); err != nil {
			return nil, err
		}
	}

	s := &Simulation{
		lattice: lat,
		src:     ising.NewSource(seed),
		engine:  eng,
		seed:    seed,
	}
	lat.InitializeRandom(s.src)

	if a, ok := eng.(engines.Attacher); ok {
		if err := a.Attach(lat, seed); err != nil {
			return nil, err
		}
	}
	s.sync()
	return s, nil
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Update advances the lattice by mcs sweeps and resynchronizes E and M.
func (s *Simulation) Update(mcs int, temperature, field float64) error {
	if err := ising.ValidateSteps("update", mcs); err != nil {
		return err
	}
	if err := ising.ValidateParams("update", temperature, field); err != nil {
		return err
	}
	if err := s.engine.Advance(s.lattice, s.src, mcs, temperature, field); err != nil {
		return err
	}
	if err := s.lattice.Validate(); err != nil {
		return err
	}
	s.age += mcs
	s.sync()
	s.notify(mcs, temperature, field)
	return nil
}

func (s *Simulation) notify(mcs int, temperature, field float64) {
	var delta int64
	if fc, ok := s.engine.(engines.FlipCounter); ok {
		total := fc.AcceptedFlips()
		delta = total - s.flips
		s.flips = total
	}
	if len(s.observers) == 0 {
		return
	}
	u := metrics.Update{
		Engine:        s.engine.Name(),
		Length:        s.lattice.Len(),
		Temperature:   temperature,
		Field:         field,
		Steps:         mcs,
		Age:           s.age,
		Energy:        s.energy,
		Magnetization: s.magnet,
		AcceptedFlips: delta,
	}
	for _, o := range s.observers {
		o.OnUpdate(u)
	}
}

func (s *Simulation) sync() {
	s.energy = ising.Energy(s.lattice)
	s.magnet = ising.Magnetization(s.lattice)
}

// Randomize redraws every site from the state's stream. Age is unchanged.
func (s *Simulation) Randomize() {
	s.lattice.InitializeRandom(s.src)
	s.sync()
}

// Recompute validates the lattice and resynchronizes E and M.
func (s *Simulation) Recompute() error {
	if err := s.lattice.Validate(); err != nil {
		return err
	}
	s.sync()
	return nil
}

// Snapshot packs the current lattice one bit per site.
func (s *Simulation) Snapshot(p snapshot.Padding) []byte {
	return snapshot.Encode(s.lattice.Spins(), p)
}

// Close releases engine resources such as an attached backend.
func (s *Simulation) Close() error {
	if c, ok := s.engine.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Spins returns a row-major copy of the lattice.
func (s *Simulation) Spins() []int8 { return s.lattice.Copy() }

func (s *Simulation) Energy() int        { return s.energy }
func (s *Simulation) Magnetization() int { return s.magnet }
func (s *Simulation) Age() int           { return s.age }
func (s *Simulation) Length() int        { return s.lattice.Len() }
func (s *Simulation) Seed() int64        { return s.seed }
func (s *Simulation) EngineName() string { return s.engine.Name() }
