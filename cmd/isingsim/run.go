package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/analysis"
	"github.com/san-kum/isingsim/internal/sim"
	"github.com/san-kum/isingsim/internal/storage"
)

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	s, err := sim.New(simCfg)
	if err != nil {
		return err
	}
	defer s.Close()

	slog.Debug("starting run",
		"engine", s.EngineName(),
		"length", cfg.Length,
		"seed", cfg.Seed,
		"temperature", cfg.Temperature,
		"field", cfg.Field)

	start := time.Now()
	if cfg.Thermalize > 0 {
		if err := s.Update(cfg.Thermalize, cfg.Temperature, cfg.Field); err != nil {
			return err
		}
	}
	trace := analysis.NewTrace()
	s.AddObserver(trace)
	rec, err := s.Sample(cfg.SampleSize, cfg.Temperature, cfg.Field, cfg.SampleStep)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	p := analysis.Derive(rec)

	fmt.Println(header(fmt.Sprintf("%s  L=%d  T=%.4f  h=%.4f", rec.Engine, rec.Length, rec.Temperature, rec.Field)))
	fmt.Println(kv("age", fmt.Sprintf("%d sweeps", rec.Age)))
	fmt.Println(kv("samples", fmt.Sprintf("%d x %d", rec.SampleSize, cfg.SampleStep)))
	fmt.Println(kv("elapsed", elapsed.Round(time.Millisecond).String()))
	fmt.Println(kv("<E>/N", fmt.Sprintf("%.6f", p.Energy)))
	fmt.Println(kv("<M>/N", fmt.Sprintf("%.6f", p.Magnetization)))
	fmt.Println(kv("<|M|>/N", fmt.Sprintf("%.6f", p.AbsMagnet)))
	fmt.Println(kv("C", fmt.Sprintf("%.6f", p.SpecificHeat)))
	fmt.Println(kv("chi", fmt.Sprintf("%.6f", p.Susceptibility)))

	n := float64(rec.Length * rec.Length)
	energies, magnets := trace.Energy(), trace.AbsMagnet()
	fmt.Println(kv("tau E", fmt.Sprintf("%.2f samples", analysis.IntegratedTime(energies))))
	fmt.Println(kv("tau |M|", fmt.Sprintf("%.2f samples", analysis.IntegratedTime(magnets))))
	fmt.Println(kv("err <E>/N", fmt.Sprintf("%.2e", analysis.CorrelatedError(energies)/n)))
	fmt.Println(kv("err <|M|>/N", fmt.Sprintf("%.2e", analysis.CorrelatedError(magnets)/n)))

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Kind:     "run",
		Engine:   rec.Engine,
		Length:   rec.Length,
		Seed:     rec.Seed,
		Field:    rec.Field,
		Padding:  cfg.Padding,
		Records:  []sim.Record{rec},
		Snapshot: s.Snapshot(cfg.SnapshotPadding()),
	})
	if err != nil {
		return err
	}
	fmt.Println(kv("run id", runID))
	return nil
}
