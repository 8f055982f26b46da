package trainer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores training run records as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a run directory named by the current timestamp under
// dir.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

// BaseDir returns the run directory files are written into.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

// WriteLineages stores one row per lineage with its full parameter set.
func (w *Writer) WriteLineages(lineages []Lineage) error {
	path := filepath.Join(w.baseDir, "lineages.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create lineages file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"id", "generation", "liarCutoff", "lyingCutoff",
		"income", "foreignAid", "coup", "tax", "assassinate", "exchange", "steal",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write lineages header: %w", err)
	}

	for _, l := range lineages {
		u := l.Strategy.Utilities
		row := []string{
			l.ID.String(),
			strconv.Itoa(l.Generation),
			formatFloat(l.Strategy.LiarCutoff),
			formatFloat(l.Strategy.LyingCutoff),
			formatFloat(u.Income),
			formatFloat(u.ForeignAid),
			formatFloat(u.Coup),
			formatFloat(u.Tax),
			formatFloat(u.Assassinate),
			formatFloat(u.Exchange),
			formatFloat(u.Steal),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write lineage record: %w", err)
		}
	}
	return nil
}

// WriteGenerationStats stores one row per generation summary.
func (w *Writer) WriteGenerationStats(stats []GenerationStats) error {
	path := filepath.Join(w.baseDir, "generations.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create generations file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"generation", "meanLiarCutoff", "meanLyingCutoff"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write generations header: %w", err)
	}

	for _, s := range stats {
		row := []string{
			strconv.Itoa(s.Generation),
			formatFloat(s.MeanLiarCutoff),
			formatFloat(s.MeanLyingCutoff),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write generation record: %w", err)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
