package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/analysis"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/sim"
	"github.com/san-kum/isingsim/internal/storage"
)

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	obs, err := analysis.ParseObservable(observable)
	if err != nil {
		return err
	}
	base, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := sim.SweepConfig{
		Base:         base,
		Temperatures: cfg.Temperatures(),
		Field:        cfg.Field,
		SampleSize:   cfg.SampleSize,
		SampleStep:   cfg.SampleStep,
		Thermalize:   cfg.Thermalize,
		Workers:      cfg.Workers,
		Logger:       slog.Default(),
	}

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			return err
		}
		sweep.Observers = append(sweep.Observers, rec)

		srv := serveMetrics(metricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	fmt.Printf("sweeping %d temperatures on L=%d...\n", len(sweep.Temperatures), cfg.Length)
	records, err := sim.Sweep(ctx, sweep)
	if err != nil {
		return err
	}

	points := analysis.DeriveAll(records)
	printSweepTable(points)

	if plotCurve {
		fmt.Println()
		fmt.Println(plotObservable(points, obs))
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Kind:    "sweep",
		Engine:  records[0].Engine,
		Length:  cfg.Length,
		Seed:    cfg.Seed,
		Field:   cfg.Field,
		Records: records,
	})
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(kv("run id", runID))
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()
	slog.Info("serving metrics", "addr", addr)
	return srv
}

// printSweepTable highlights the row where the specific heat peaks.
func printSweepTable(points []analysis.Point) {
	peak := analysis.PeakIndex(analysis.Curve(points, analysis.SpecificHeat))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tE/N\tM/N\t|M|/N\tC\tCHI\t")
	for k, p := range points {
		mark := ""
		if k == peak {
			mark = "*"
		}
		fmt.Fprintf(w, "%.4f\t%.5f\t%.5f\t%.5f\t%.5f\t%.5f\t%s\n",
			p.Temperature, p.Energy, p.Magnetization, p.AbsMagnet, p.SpecificHeat, p.Susceptibility, mark)
	}
	w.Flush()

	if peak >= 0 {
		fmt.Println()
		fmt.Println(peakStyle.Render(fmt.Sprintf("C peaks at T=%.4f", points[peak].Temperature)) +
			dimStyle.Render(fmt.Sprintf("  (Onsager Tc=%.4f)", analysis.CriticalTemperature)))
	}
}

func plotObservable(points []analysis.Point, obs analysis.Observable) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := points[0].Temperature, points[len(points)-1].Temperature
	return asciigraph.Plot(analysis.Curve(points, obs),
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s vs T in [%.3f, %.3f]", obs, lo, hi)),
	)
}
