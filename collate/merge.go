package collate

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merger concatenates single-page documents, in order, into one
// multi-page document. Every source page must survive without
// re-encoding loss.
type Merger interface {
	Merge(outPath string, inPaths []string) error
}

// NewMerger returns the pdfcpu-backed merger.
func NewMerger() Merger { return pdfcpuMerger{} }

type pdfcpuMerger struct{}

func (pdfcpuMerger) Merge(outPath string, inPaths []string) error {
	if len(inPaths) == 0 {
		return fmt.Errorf("collate: nothing to merge into %s", outPath)
	}
	if err := api.MergeCreateFile(inPaths, outPath, false, nil); err != nil {
		return fmt.Errorf("collate: merge %d pages into %s: %w", len(inPaths), outPath, err)
	}
	return nil
}
