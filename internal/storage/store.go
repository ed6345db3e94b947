package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/isingsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	snapshotFile = "snapshot.bin"
)

var sampleHeader = []string{
	"temperature", "field", "age", "sampleSize", "length", "seed", "engine",
	"energy1", "magnet1", "energy2", "magnet2", "magnetAbs",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Engine      string    `json:"engine"`
	Length      int       `json:"length"`
	Seed        int64     `json:"seed"`
	Field       float64   `json:"field"`
	Points      int       `json:"points"`
	Padding     string    `json:"padding,omitempty"`
	HasSnapshot bool      `json:"hasSnapshot"`
	Timestamp   time.Time `json:"timestamp"`
}

// Run is what Save persists: metadata, one CSV row per record and an
// optional packed snapshot of the final lattice.
type Run struct {
	Kind     string
	Engine   string
	Length   int
	Seed     int64
	Field    float64
	Padding  string
	Records  []sim.Record
	Snapshot []byte
}

func (s *Store) Save(run Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", slug(run.Kind), now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Kind:        run.Kind,
		Engine:      run.Engine,
		Length:      run.Length,
		Seed:        run.Seed,
		Field:       run.Field,
		Points:      len(run.Records),
		Padding:     run.Padding,
		HasSnapshot: len(run.Snapshot) > 0,
		Timestamp:   now,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), run.Records); err != nil {
		return "", err
	}
	if meta.HasSnapshot {
		if err := os.WriteFile(filepath.Join(runDir, snapshotFile), run.Snapshot, 0644); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func slug(s string) string {
	if s == "" {
		return "run"
	}
	return strings.NewReplacer(":", "-", "/", "-", " ", "-").Replace(s)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, records []sim.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			formatFloat(r.Temperature),
			formatFloat(r.Field),
			strconv.Itoa(r.Age),
			strconv.Itoa(r.SampleSize),
			strconv.Itoa(r.Length),
			strconv.FormatInt(r.Seed, 10),
			r.Engine,
			formatFloat(r.Energy1),
			formatFloat(r.Magnet1),
			formatFloat(r.Energy2),
			formatFloat(r.Magnet2),
			formatFloat(r.MagnetAbs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatFloat keeps full precision so a loaded record equals the saved one.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(a, b int) bool {
		return runs[a].Timestamp.After(runs[b].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []sim.Record{}, nil
	}

	records := make([]sim.Record, 0, len(rows)-1)
	for line, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", samplesFile, line+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (sim.Record, error) {
	var (
		rec  sim.Record
		perr error
	)
	float := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil && perr == nil {
			perr = err
		}
		return v
	}
	integer := func(s string) int {
		v, err := strconv.Atoi(s)
		if err != nil && perr == nil {
			perr = err
		}
		return v
	}

	rec.Temperature = float(row[0])
	rec.Field = float(row[1])
	rec.Age = integer(row[2])
	rec.SampleSize = integer(row[3])
	rec.Length = integer(row[4])
	seed, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil && perr == nil {
		perr = err
	}
	rec.Seed = seed
	rec.Engine = row[6]
	rec.Energy1 = float(row[7])
	rec.Magnet1 = float(row[8])
	rec.Energy2 = float(row[9])
	rec.Magnet2 = float(row[10])
	rec.MagnetAbs = float(row[11])
	return rec, perr
}

// LoadSnapshot returns the packed lattice saved with a run.
func (s *Store) LoadSnapshot(runID string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, runID, snapshotFile))
}
