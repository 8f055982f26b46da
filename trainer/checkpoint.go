package trainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CheckpointVersion is the current checkpoint format version.
const CheckpointVersion = "1.0"

// Checkpoint is the serializable outcome of a training run.
type Checkpoint struct {
	Version    string    `json:"version"`
	Timestamp  time.Time `json:"timestamp"`
	BaseSeed   uint64    `json:"baseSeed"`
	Generation int       `json:"generation"`
	Lineages   []Lineage `json:"lineages"`
}

// NewCheckpoint snapshots the trainer's lineages after Run.
func NewCheckpoint(config Config, lineages []Lineage) Checkpoint {
	return Checkpoint{
		Version:    CheckpointVersion,
		Timestamp:  time.Now().UTC(),
		BaseSeed:   config.BaseSeed,
		Generation: config.Generations - 1,
		Lineages:   lineages,
	}
}

// Save writes the checkpoint as indented JSON, creating parent directories
// as needed.
func (c Checkpoint) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint written by Save.
func LoadCheckpoint(path string) (Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var c Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return Checkpoint{}, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	return c, nil
}
