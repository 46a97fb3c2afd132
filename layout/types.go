package layout

// This file defines the layout result shared by the engine, the sheet
// renderer and the JSON snapshot. All coordinates are millimeters with
// the origin at the top-left page corner, y growing downward.

import "fmt"

// Paper is a named page-size preset.
type Paper struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var papers = map[string]Paper{
	"A4":     {Name: "A4", Width: 210, Height: 297},
	"LETTER": {Name: "LETTER", Width: 215.9, Height: 279.4},
}

// PaperByName resolves a paper preset. Names are case-sensitive ("A4", "LETTER").
func PaperByName(name string) (Paper, error) {
	p, ok := papers[name]
	if !ok {
		return Paper{}, fmt.Errorf("layout: unknown paper preset %q (supported: A4, LETTER)", name)
	}
	return p, nil
}

// Canonical scan resolution the downstream alignment step rescales pages to.
const (
	CanonicalWidthPx  = 2480
	CanonicalHeightPx = 3508
)

// Params are the inputs of Compute. Lengths are millimeters.
type Params struct {
	Paper          Paper
	Title          string
	QuestionPrefix string
	NumQuestions   int
	OptionCounts   []int // one per question, each >= 1
	Columns        int
	ForceColumns   bool
	RowGap         float64 // extra gap between question rows
	ColGap         float64 // extra gap between columns
	BoxSize        float64 // answer-box side length
	AnswerKey      []int   // resolved zero-based indices, one per question
}

// Marker describes the four corner alignment squares.
type Marker struct {
	Margin float64 `json:"margin"` // distance from the page edge
	Size   float64 `json:"size"`   // square side length
}

// Geometry groups the answer-box measurements.
type Geometry struct {
	BoxSize     float64 `json:"boxSize"`
	BoxGap      float64 `json:"boxGap"`      // vertical gap between stacked boxes
	LabelGap    float64 `json:"labelGap"`    // gap between a box and its option label
	QuestionGap float64 `json:"questionGap"` // vertical gap between question rows
	ColumnGap   float64 `json:"columnGap"`   // horizontal gap between columns
}

// Box is one answer option's rectangle. Option indices are zero-based;
// question indices start at 1.
type Box struct {
	Question int     `json:"q"`
	Option   int     `json:"opt"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
}

// Point is a page coordinate in mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout is the immutable geometric description of one page template.
// It is computed once per run and reused read-only for every sheet.
type Layout struct {
	Paper          Paper   `json:"paper"`
	Title          string  `json:"title"`
	QuestionPrefix string  `json:"questionPrefix,omitempty"`
	NumQuestions   int     `json:"numQuestions"`
	OptionCounts   []int   `json:"perQuestionOptionCounts"`
	Marker         Marker  `json:"marker"`
	Geometry       Geometry `json:"geometry"`
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	Boxes          []Box   `json:"boxes"`
	StudentIDPos   Point   `json:"studentIdPos"`
	AnswerKey      []int   `json:"answerKey"`

	CanonicalWidthPx  int `json:"canonicalWidthPx"`
	CanonicalHeightPx int `json:"canonicalHeightPx"`
}

// BoxesByQuestion groups the flat box list per question, options in order.
// Boxes are emitted in (question, option) order by Compute, so a single
// pass suffices.
func (l *Layout) BoxesByQuestion() map[int][]Box {
	grouped := make(map[int][]Box, l.NumQuestions)
	for _, b := range l.Boxes {
		grouped[b.Question] = append(grouped[b.Question], b)
	}
	return grouped
}

// QuestionLabel renders the printed label of a question ("3" or "A.3").
func (l *Layout) QuestionLabel(q int) string {
	if l.QuestionPrefix != "" {
		return fmt.Sprintf("%s.%d", l.QuestionPrefix, q)
	}
	return fmt.Sprintf("%d", q)
}
