package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/exam-tools/omrsheet/layout"
	"github.com/exam-tools/omrsheet/render"
)

func smallLayout(t *testing.T, key []int) *layout.Layout {
	t.Helper()
	paper, err := layout.PaperByName("A4")
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.Compute(layout.Params{
		Paper:        paper,
		Title:        "Antworten",
		NumQuestions: 3,
		OptionCounts: []int{2, 4, 3},
		Columns:      5,
		BoxSize:      3.5,
		AnswerKey:    key,
	})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderSheetProducesPDF(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	l := smallLayout(t, nil)

	data, err := r.RenderSheet(l, render.SheetParams{
		StudentID: "042",
		Header:    render.Header{Course: "Statistik I", Professor: "Prof. Dr. Weber", Date: "14. Juli 2026"},
	})
	if err != nil {
		t.Fatalf("RenderSheet error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:min(len(data), 16)])
	}
}

func TestRenderSheetSolution(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	l := smallLayout(t, []int{0, 2, 1})

	data, err := r.RenderSheet(l, render.SheetParams{
		RevealSolution: true,
		Header:         render.Header{Course: "Statistik I"},
	})
	if err != nil {
		t.Fatalf("RenderSheet error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("solution render is not a PDF")
	}
}

func TestRenderSheetRejectsNilLayout(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	if _, err := r.RenderSheet(nil, render.SheetParams{}); err == nil {
		t.Fatal("nil layout accepted")
	}
}

func TestRenderSheetSolutionNeedsKey(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	l := smallLayout(t, nil)
	if _, err := r.RenderSheet(l, render.SheetParams{RevealSolution: true}); err == nil {
		t.Fatal("solution render without a key accepted")
	}
}
