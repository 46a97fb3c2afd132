package layout

import (
	"encoding/json"
	"os"
	"time"
)

// Snapshot is the persisted, human-inspectable record of one run's
// layout. It is written once for traceability and never read back.
type Snapshot struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	*Layout
}

// WriteSnapshot marshals the layout to an indented JSON file.
func WriteSnapshot(l *Layout, runID string, generatedAt time.Time, path string) error {
	if l == nil {
		return nil
	}
	snap := Snapshot{RunID: runID, GeneratedAt: generatedAt, Layout: l}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
