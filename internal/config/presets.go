package config

import "sort"

var Presets = map[string]*Config{
	"critical": {
		Length: 32, Seed: 1, Engine: "sequential", Temperature: 2.269,
		SampleSize: 2000, SampleStep: 1, Thermalize: 500,
	},
	"ordered": {
		Length: 32, Seed: 1, Engine: "sequential", Temperature: 1.5,
		SampleSize: 1000, SampleStep: 1, Thermalize: 200,
	},
	"disordered": {
		Length: 32, Seed: 1, Engine: "sequential", Temperature: 3.5,
		SampleSize: 1000, SampleStep: 1, Thermalize: 100,
	},
	"field": {
		Length: 32, Seed: 1, Engine: "checkerboard", Temperature: 2.5, Field: 0.5,
		SampleSize: 1000, SampleStep: 1, Thermalize: 200,
	},
	"quick": {
		Length: 8, Seed: 1, Engine: "sequential", Temperature: 2.269,
		SampleSize: 100, SampleStep: 1, Thermalize: 20,
		Sweep: SweepConfig{TMin: 1.5, TMax: 3.5, Points: 5},
	},
}

// GetPreset returns a copy of the named preset layered on the defaults, or
// nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	def := DefaultConfig()
	if cfg.Padding == "" {
		cfg.Padding = def.Padding
	}
	if cfg.Sweep.Points == 0 {
		cfg.Sweep = def.Sweep
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
