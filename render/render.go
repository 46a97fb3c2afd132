// Package render declares the sheet-rendering contract. Implementations
// turn one layout plus per-sheet parameters into a single-page document.
package render

import "github.com/exam-tools/omrsheet/layout"

// Header is the metadata band printed at the top of every sheet.
type Header struct {
	Course    string
	Professor string
	Date      string
}

// SheetParams select what varies between renders of the same layout.
type SheetParams struct {
	// StudentID is stamped below the title when non-empty. The solution
	// sheet passes an empty ID.
	StudentID string
	// RevealSolution fills the answer-key box of every question. This is
	// the only behavioral difference between student and solution sheets.
	RevealSolution bool
	Header         Header
}

// SheetRenderer produces one rendered page as a PDF byte slice. Rendering
// must be a pure function of (layout, params) and must not mutate the layout.
type SheetRenderer interface {
	RenderSheet(l *layout.Layout, p SheetParams) ([]byte, error)
}
