package sim

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/isingsim/internal/ising"
)

// SampleObserver is implemented by observers that also count sampled
// observations.
type SampleObserver interface {
	OnSample(engine string, n int)
}

// SweepConfig describes an ensemble of independent simulations over a
// temperature grid at fixed field.
type SweepConfig struct {
	Base         Config
	Temperatures []float64
	Field        float64
	SampleSize   int
	SampleStep   int
	Thermalize   int
	Workers      int
	Observers    []Observer
	Logger       *slog.Logger
}

// Sweep runs one simulation per temperature. Point k is seeded with
// Base.Seed+k, so results do not depend on scheduling. Records come back in
// the order of Temperatures.
func Sweep(ctx context.Context, cfg SweepConfig) ([]Record, error) {
	if len(cfg.Temperatures) == 0 {
		return nil, ising.DomainErrorf("sweep", "no temperatures given")
	}
	if cfg.Thermalize < 0 {
		return nil, ising.DomainErrorf("sweep", "thermalize must be non-negative, got %d", cfg.Thermalize)
	}
	for _, t := range cfg.Temperatures {
		if err := ising.ValidateParams("sweep", t, cfg.Field); err != nil {
			return nil, err
		}
	}
	step := cfg.SampleStep
	if step == 0 {
		step = 1
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	start := time.Now()
	records := make([]Record, len(cfg.Temperatures))

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for idx, t := range cfg.Temperatures {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := runPoint(cfg, idx, t, step, log)
			if err != nil {
				return err
			}
			records[idx] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("sweep complete",
		"points", len(records),
		"length", cfg.Base.Length,
		"field", cfg.Field,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return records, nil
}

func runPoint(cfg SweepConfig, idx int, temperature float64, step int, log *slog.Logger) (Record, error) {
	base := cfg.Base
	base.Seed += int64(idx)

	s, err := New(base)
	if err != nil {
		return Record{}, err
	}
	defer s.Close()
	for _, o := range cfg.Observers {
		s.AddObserver(o)
	}

	log.Debug("sweep point start", "index", idx, "temperature", temperature, "seed", base.Seed)
	if cfg.Thermalize > 0 {
		if err := s.Update(cfg.Thermalize, temperature, cfg.Field); err != nil {
			return Record{}, err
		}
	}
	rec, err := s.Sample(cfg.SampleSize, temperature, cfg.Field, step)
	if err != nil {
		return Record{}, err
	}
	for _, o := range cfg.Observers {
		if so, ok := o.(SampleObserver); ok {
			so.OnSample(s.EngineName(), rec.SampleSize)
		}
	}
	log.Debug("sweep point done",
		"index", idx,
		"temperature", temperature,
		"energy1", rec.Energy1,
		"magnetAbs", rec.MagnetAbs)
	return rec, nil
}

// Temperatures returns n evenly spaced points on [lo, hi].
func Temperatures(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	d := (hi - lo) / float64(n-1)
	for k := range out {
		out[k] = lo + float64(k)*d
	}
	out[n-1] = hi
	return out
}
