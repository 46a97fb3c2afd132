package layout

import (
	"errors"
	"fmt"
	"math"
)

// Fixed page geometry shared by every sheet. The values match the
// canonical sheet template the scan-side alignment expects.
const (
	pageMargin   = 12.0 // page margin, also the marker inset
	markerSize   = 9.0  // corner marker side length
	boxGapY      = 4.0  // vertical gap between stacked option boxes
	optLabelGap  = 2.5  // gap between a box and its option label
	baseQGap     = 6.0  // base vertical gap between question rows
	baseColGap   = 10.0 // base horizontal gap between columns
	questionDrop = 8.0  // first box sits this far below its row top

	// Vertical reserve below the top margin for the marker band, header,
	// rule, title and student-ID stamp.
	topReserve = markerSize + 38.0
)

// ErrInfeasible is returned when not a single question row fits the
// usable page height. The configuration must change; retrying is useless.
var ErrInfeasible = errors.New("layout: page too tight, no question row fits")

// Compute places every answer box on the page. It is a pure function of
// its parameters: identical inputs yield bit-identical box coordinates.
func Compute(p Params) (*Layout, error) {
	if p.NumQuestions < 1 {
		return nil, fmt.Errorf("layout: need at least one question, got %d", p.NumQuestions)
	}
	if len(p.OptionCounts) != p.NumQuestions {
		return nil, fmt.Errorf("layout: got %d option counts for %d questions", len(p.OptionCounts), p.NumQuestions)
	}
	if p.BoxSize <= 0 {
		return nil, fmt.Errorf("layout: box size must be positive, got %g", p.BoxSize)
	}
	if p.RowGap < 0 || p.ColGap < 0 {
		return nil, fmt.Errorf("layout: gaps must not be negative")
	}
	if p.Columns < 1 {
		return nil, fmt.Errorf("layout: column count must be at least 1, got %d", p.Columns)
	}
	if len(p.AnswerKey) != 0 && len(p.AnswerKey) != p.NumQuestions {
		return nil, fmt.Errorf("layout: answer key has %d entries for %d questions", len(p.AnswerKey), p.NumQuestions)
	}

	maxCount := 0
	for i, k := range p.OptionCounts {
		if k < 1 {
			return nil, fmt.Errorf("layout: question %d has no options", i+1)
		}
		if k > maxCount {
			maxCount = k
		}
	}

	questionGap := baseQGap + p.RowGap
	colGap := baseColGap + p.ColGap

	contentTop := pageMargin + topReserve
	availableH := (p.Paper.Height - pageMargin) - contentTop

	// The row block height is driven by the worst-case question so a fixed
	// per-row stride works even with heterogeneous option counts.
	blockH := float64(maxCount)*p.BoxSize + float64(maxCount-1)*boxGapY + questionGap
	rowsFit := int(availableH / blockH)
	if rowsFit <= 0 {
		return nil, fmt.Errorf("%w (box size %gmm on %s)", ErrInfeasible, p.BoxSize, p.Paper.Name)
	}

	var cols int
	if p.ForceColumns {
		cols = p.Columns
	} else {
		needed := int(math.Ceil(float64(p.NumQuestions) / float64(rowsFit)))
		cols = min(p.Columns, needed)
		if cols < 1 {
			cols = 1
		}
	}
	rows := int(math.Ceil(float64(p.NumQuestions) / float64(cols)))

	usableW := p.Paper.Width - 2*pageMargin
	colWidth := (usableW - float64(cols-1)*colGap) / float64(cols)

	boxes := make([]Box, 0, totalOptions(p.OptionCounts))
	for r := 0; r < rows; r++ {
		rowTop := contentTop + float64(r)*blockH
		for c := 0; c < cols; c++ {
			q := r*cols + c + 1
			if q > p.NumQuestions {
				break
			}
			colX := pageMargin + float64(c)*(colWidth+colGap)
			boxTop := rowTop + questionDrop
			for opt := 0; opt < p.OptionCounts[q-1]; opt++ {
				boxes = append(boxes, Box{
					Question: q,
					Option:   opt,
					X:        colX,
					Y:        boxTop + float64(opt)*(p.BoxSize+boxGapY),
					W:        p.BoxSize,
					H:        p.BoxSize,
				})
			}
		}
	}

	l := &Layout{
		Paper:          p.Paper,
		Title:          p.Title,
		QuestionPrefix: p.QuestionPrefix,
		NumQuestions:   p.NumQuestions,
		OptionCounts:   append([]int(nil), p.OptionCounts...),
		Marker:         Marker{Margin: pageMargin, Size: markerSize},
		Geometry: Geometry{
			BoxSize:     p.BoxSize,
			BoxGap:      boxGapY,
			LabelGap:    optLabelGap,
			QuestionGap: questionGap,
			ColumnGap:   colGap,
		},
		Columns:           cols,
		Rows:              rows,
		Boxes:             boxes,
		StudentIDPos:      Point{X: pageMargin, Y: pageMargin + 16},
		AnswerKey:         append([]int(nil), p.AnswerKey...),
		CanonicalWidthPx:  CanonicalWidthPx,
		CanonicalHeightPx: CanonicalHeightPx,
	}
	return l, nil
}

func totalOptions(counts []int) int {
	sum := 0
	for _, k := range counts {
		sum += k
	}
	return sum
}
