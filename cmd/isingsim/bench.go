package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/compute"
	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/engines"
	"github.com/san-kum/isingsim/internal/sim"
)

func benchEngines(cmd *cobra.Command, args []string) error {
	lengths := []int{16, 32, 64, 128}

	fmt.Printf("benchmarking engines at T=%.3f, %d sweeps per point\n\n", config.DefaultTemperature, benchSweeps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENGINE\tL\tTIME\tSWEEPS/SEC\tSITES/SEC")

	for _, kind := range engines.Kinds() {
		for _, l := range lengths {
			s, err := sim.New(sim.Config{Length: l, Seed: 42, Engine: kind, Workers: workers})
			if err != nil {
				return err
			}

			start := time.Now()
			err = s.Update(benchSweeps, config.DefaultTemperature, 0)
			elapsed := time.Since(start)
			s.Close()
			if err != nil {
				return err
			}

			sec := elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%d\t%v\t%.1f\t%.3g\n",
				s.EngineName(),
				l,
				elapsed.Round(time.Microsecond),
				float64(benchSweeps)/sec,
				float64(benchSweeps*l*l)/sec,
			)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tENGINE\tL\tT\tH\tSAMPLES\tTHERMALIZE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.3f\t%d\t%d\n",
			name, p.Engine, p.Length, p.Temperature, p.Field, p.SampleSize, p.Thermalize)
	}
	return w.Flush()
}

func listBackends(cmd *cobra.Command, args []string) error {
	reg := compute.NewRegistry()
	for _, name := range reg.Names() {
		status := "available"
		if _, err := reg.Lookup(name); err != nil {
			status = err.Error()
		}
		fmt.Printf("  %s  %s\n", name, dimStyle.Render(status))
	}
	return nil
}
