package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/analysis"
	"github.com/san-kum/isingsim/internal/export"
	"github.com/san-kum/isingsim/internal/snapshot"
	"github.com/san-kum/isingsim/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tENGINE\tL\tSEED\tFIELD\tPOINTS\tTIME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3f\t%d\t%s\n",
			run.ID,
			run.Kind,
			run.Engine,
			run.Length,
			run.Seed,
			run.Field,
			run.Points,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}

	meta := data.Metadata
	fmt.Println(header(meta.ID))
	fmt.Println(kv("kind", meta.Kind))
	fmt.Println(kv("engine", meta.Engine))
	fmt.Println(kv("length", fmt.Sprint(meta.Length)))
	fmt.Println(kv("seed", fmt.Sprint(meta.Seed)))
	fmt.Println(kv("field", fmt.Sprintf("%.4f", meta.Field)))
	fmt.Println(kv("snapshot", fmt.Sprint(meta.HasSnapshot)))
	fmt.Println()

	if len(data.Records) == 0 {
		fmt.Println("no records")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tAGE\tSAMPLES\t<E>\t<M>\t<E2>\t<M2>\t<|M|>")
	for _, r := range data.Records {
		fmt.Fprintf(w, "%.4f\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.Temperature, r.Age, r.SampleSize, r.Energy1, r.Magnet1, r.Energy2, r.Magnet2, r.MagnetAbs)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	printSweepTable(data.Derived)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	obs, err := analysis.ParseObservable(observable)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("run %s has %d record(s); plot needs a sweep", meta.ID, len(records))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("engine: %s  L=%d  h=%.3f\n\n", meta.Engine, meta.Length, meta.Field)
	points := analysis.DeriveAll(records)
	fmt.Println(plotObservable(points, obs))

	if svgPath == "" {
		return nil
	}
	temps := make([]float64, len(points))
	for k, p := range points {
		temps[k] = p.Temperature
	}
	svg := export.CurveToSVG(temps, analysis.Curve(points, obs), 640, 360, "#00cccc")
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("\nwrote %s\n", svgPath)
	return nil
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if !meta.HasSnapshot {
		return fmt.Errorf("run %s has no snapshot", meta.ID)
	}
	data, err := st.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	if svgPath != "" {
		bits, err := snapshot.Decode(data, meta.Length*meta.Length)
		if err != nil {
			return err
		}
		svg, err := export.LatticeToSVG(bits, meta.Length, 8, "#ff88ff")
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}

	out, err := renderLattice(data, meta.Length)
	if err != nil {
		return err
	}
	fmt.Println(header(fmt.Sprintf("%s  L=%d  padding=%s", meta.ID, meta.Length, meta.Padding)))
	fmt.Print(out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.WriteJSON(os.Stdout, data)
	}
	if err := storage.ExportJSON(outPath, data); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", data.Metadata.ID, outPath)
	return nil
}
