package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/isingsim/internal/engines"
	"github.com/san-kum/isingsim/internal/ising"
	"github.com/san-kum/isingsim/internal/sim"
	"github.com/san-kum/isingsim/internal/snapshot"
)

const (
	DefaultLength      = 32
	DefaultTemperature = 2.269
	DefaultSampleSize  = 1000
	DefaultSampleStep  = 1
	DefaultThermalize  = 200
	DefaultTMin        = 1.5
	DefaultTMax        = 3.5
	DefaultPoints      = 21
)

type Config struct {
	Length      int         `yaml:"length"`
	Seed        int64       `yaml:"seed"`
	Engine      string      `yaml:"engine"`
	Backend     string      `yaml:"backend,omitempty"`
	Temperature float64     `yaml:"temperature"`
	Field       float64     `yaml:"field"`
	SampleSize  int         `yaml:"sample_size"`
	SampleStep  int         `yaml:"sample_step"`
	Thermalize  int         `yaml:"thermalize"`
	Workers     int         `yaml:"workers"`
	Padding     string      `yaml:"padding"`
	Sweep       SweepConfig `yaml:"sweep"`
}

type SweepConfig struct {
	TMin   float64 `yaml:"t_min"`
	TMax   float64 `yaml:"t_max"`
	Points int     `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Length:      DefaultLength,
		Seed:        1,
		Engine:      string(engines.KindSequential),
		Temperature: DefaultTemperature,
		SampleSize:  DefaultSampleSize,
		SampleStep:  DefaultSampleStep,
		Thermalize:  DefaultThermalize,
		Padding:     snapshot.ZeroPad.String(),
		Sweep: SweepConfig{
			TMin:   DefaultTMin,
			TMax:   DefaultTMax,
			Points: DefaultPoints,
		},
	}
}

// Load overlays the file at path on the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path on cfg. Keys absent from the file keep
// their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first field that would make a run ill-defined.
func (c *Config) Validate() error {
	const op = "config"
	if c.Length <= 0 {
		return ising.DomainErrorf(op, "length must be positive, got %d", c.Length)
	}
	kind, err := engines.ParseKind(c.Engine)
	if err != nil {
		return err
	}
	if kind == engines.KindCheckerboard && c.Length%2 != 0 {
		return ising.DomainErrorf(op, "checkerboard engine needs an even length, got %d", c.Length)
	}
	if err := ising.ValidateParams(op, c.Temperature, c.Field); err != nil {
		return err
	}
	if c.SampleSize <= 0 {
		return ising.DomainErrorf(op, "sample_size must be positive, got %d", c.SampleSize)
	}
	if c.SampleStep <= 0 {
		return ising.DomainErrorf(op, "sample_step must be positive, got %d", c.SampleStep)
	}
	if c.Thermalize < 0 {
		return ising.DomainErrorf(op, "thermalize must be non-negative, got %d", c.Thermalize)
	}
	if _, err := snapshot.ParsePadding(c.Padding); err != nil {
		return err
	}
	if c.Sweep.Points <= 0 {
		return ising.DomainErrorf(op, "sweep.points must be positive, got %d", c.Sweep.Points)
	}
	if c.Sweep.TMin <= 0 || c.Sweep.TMax < c.Sweep.TMin {
		return ising.DomainErrorf(op, "sweep range [%v, %v] is invalid", c.Sweep.TMin, c.Sweep.TMax)
	}
	return nil
}

// Temperatures returns the sweep grid.
func (c *Config) Temperatures() []float64 {
	return sim.Temperatures(c.Sweep.TMin, c.Sweep.TMax, c.Sweep.Points)
}

// SimConfig maps the file onto a simulation constructor config.
func (c *Config) SimConfig() (sim.Config, error) {
	kind, err := engines.ParseKind(c.Engine)
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Length:  c.Length,
		Seed:    c.Seed,
		Engine:  kind,
		Backend: c.Backend,
		Workers: c.Workers,
	}, nil
}

func (c *Config) SnapshotPadding() snapshot.Padding {
	p, err := snapshot.ParsePadding(c.Padding)
	if err != nil {
		return snapshot.ZeroPad
	}
	return p
}
