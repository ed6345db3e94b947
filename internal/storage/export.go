package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/isingsim/internal/analysis"
	"github.com/san-kum/isingsim/internal/sim"
)

type ExportData struct {
	Metadata RunMetadata      `json:"metadata"`
	Records  []sim.Record     `json:"records"`
	Derived  []analysis.Point `json:"derived"`
}

// Export bundles a stored run with its derived thermodynamics.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	records, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Metadata: *meta,
		Records:  records,
		Derived:  analysis.DeriveAll(records),
	}, nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
