package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// StepRecord is one per-step row of the trajectory CSV.
type StepRecord struct {
	Step         int     `csv:"step"`
	Population   int     `csv:"population"`
	Births       int     `csv:"births"`
	Deaths       int     `csv:"deaths"`
	MeanTemp     float64 `csv:"mean_temp"`
	MeanMoisture float64 `csv:"mean_moisture"`
}

// ConfigWriter saves a configuration snapshot to a file. Satisfied by
// *config.Config; kept as an interface so telemetry stays decoupled from
// the config package.
type ConfigWriter interface {
	WriteYAML(path string) error
}

// OutputManager handles structured run output: a per-step trajectory CSV, a
// config snapshot, and a JSON run summary. A nil OutputManager is valid and
// disables all output.
type OutputManager struct {
	dir   string
	runID string

	trajectoryFile *os.File

	// Track if the CSV header has been written
	headerWritten bool
}

// NewOutputManager creates an output manager rooted at dir and assigns the
// run a fresh identifier. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{
		dir:   dir,
		runID: uuid.NewString(),
	}

	trajectoryPath := filepath.Join(dir, "trajectory.csv")
	f, err := os.Create(trajectoryPath)
	if err != nil {
		return nil, fmt.Errorf("creating trajectory.csv: %w", err)
	}
	om.trajectoryFile = f

	return om, nil
}

// RunID returns the unique identifier assigned to this run.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the run's configuration snapshot as YAML.
func (om *OutputManager) WriteConfig(cfg ConfigWriter) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStep appends a per-step record to trajectory.csv.
func (om *OutputManager) WriteStep(rec StepRecord) error {
	if om == nil {
		return nil
	}

	records := []StepRecord{rec}

	if !om.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.trajectoryFile); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
		om.headerWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.trajectoryFile); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
	}

	return nil
}

// WriteSummary saves the run summary as JSON.
func (om *OutputManager) WriteSummary(summary RunSummary) error {
	if om == nil {
		return nil
	}

	wrapped := struct {
		RunID string `json:"run_id"`
		RunSummary
	}{RunID: om.runID, RunSummary: summary}

	data, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "summary.json"), data, 0644); err != nil {
		return fmt.Errorf("writing summary.json: %w", err)
	}
	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	if om.trajectoryFile != nil {
		return om.trajectoryFile.Close()
	}
	return nil
}
