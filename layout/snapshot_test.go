package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteSnapshotRoundTrips(t *testing.T) {
	p := a4Params([]int{2, 4, 3})
	p.AnswerKey = []int{0, 2, 1}
	l := mustCompute(t, p)

	path := filepath.Join(t.TempDir(), "layout.json")
	at := time.Date(2026, time.July, 14, 9, 0, 0, 0, time.UTC)
	if err := WriteSnapshot(l, "run-123", at, path); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap struct {
		RunID     string `json:"runId"`
		Boxes     []Box  `json:"boxes"`
		AnswerKey []int  `json:"answerKey"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if snap.RunID != "run-123" {
		t.Fatalf("runId = %q", snap.RunID)
	}
	if len(snap.Boxes) != 9 {
		t.Fatalf("snapshot has %d boxes, want 9", len(snap.Boxes))
	}
	if len(snap.AnswerKey) != 3 || snap.AnswerKey[1] != 2 {
		t.Fatalf("answer key = %v", snap.AnswerKey)
	}
}
