// Package canvasrenderer draws answer sheets via github.com/tdewolff/canvas.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/exam-tools/omrsheet/exam"
	"github.com/exam-tools/omrsheet/fonts"
	"github.com/exam-tools/omrsheet/layout"
	"github.com/exam-tools/omrsheet/render"
)

// Font sizes in pt, matching the canonical sheet template.
const (
	courseFontSize   = 14
	headerFontSize   = 12
	titleFontSize    = 26
	idFontSize       = 14
	questionFontSize = 14
	optionFontSize   = 12
)

const boxStrokeWidth = 0.35 // mm, roughly a 1pt pen

// Renderer implements render.SheetRenderer on top of tdewolff/canvas.
type Renderer struct {
	family *canvas.FontFamily
}

var _ render.SheetRenderer = (*Renderer)(nil)

// NewRenderer loads the built-in faces and returns a ready renderer.
func NewRenderer() (*Renderer, error) {
	family := canvas.NewFontFamily("sheet")
	for name, style := range map[string]canvas.FontStyle{
		"regular": canvas.FontRegular,
		"bold":    canvas.FontBold,
	} {
		data, err := fonts.Load(name)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, style); err != nil {
			return nil, fmt.Errorf("render: load %s face: %w", name, err)
		}
	}
	return &Renderer{family: family}, nil
}

// RenderSheet renders one single-page PDF: corner markers, header band,
// rule, title, optional student-ID stamp and the answer-box grid. It
// never mutates the layout.
func (r *Renderer) RenderSheet(l *layout.Layout, p render.SheetParams) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("render: layout is nil")
	}
	if p.RevealSolution && len(l.AnswerKey) != l.NumQuestions {
		return nil, fmt.Errorf("render: solution render requires a resolved answer key")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, l.Paper.Width, l.Paper.Height, nil)
	writer.SetInfo(l.Title, "answer sheet", "", "", "omrsheet")

	c := canvas.New(l.Paper.Width, l.Paper.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, same as the layout

	r.drawMarkers(ctx, l)
	r.drawHeader(ctx, l, p)
	r.drawQuestions(ctx, l, p.RevealSolution)

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("render: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawMarkers fills the four corner squares inside the margin. Their
// position relative to the margin must be exact: the scan-side aligner
// keys on them.
func (r *Renderer) drawMarkers(ctx *canvas.Context, l *layout.Layout) {
	m := l.Marker.Margin
	s := l.Marker.Size
	w := l.Paper.Width
	h := l.Paper.Height

	ctx.SetFillColor(canvas.Black)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	for _, pos := range []layout.Point{
		{X: m, Y: m},
		{X: w - m - s, Y: m},
		{X: m, Y: h - m - s},
		{X: w - m - s, Y: h - m - s},
	} {
		ctx.DrawPath(pos.X, pos.Y, canvas.Rectangle(s, s))
	}
}

func (r *Renderer) drawHeader(ctx *canvas.Context, l *layout.Layout, p render.SheetParams) {
	m := l.Marker.Margin
	w := l.Paper.Width

	headerBaseline := m + l.Marker.Size + 6
	if p.Header.Course != "" {
		r.drawText(ctx, m, headerBaseline, p.Header.Course, courseFontSize, true, canvas.Left)
	}
	if p.Header.Professor != "" {
		r.drawText(ctx, w-m, headerBaseline, p.Header.Professor, headerFontSize, false, canvas.Right)
	}
	r.drawText(ctx, w-m, headerBaseline+12*layout.PtToMm, p.Header.Date, headerFontSize, false, canvas.Right)

	ruleY := headerBaseline + 18*layout.PtToMm
	ctx.SetStrokeColor(canvas.Black)
	ctx.SetStrokeWidth(boxStrokeWidth)
	rule := &canvas.Path{}
	rule.MoveTo(0, 0)
	rule.LineTo(w-2*m, 0)
	ctx.DrawPath(m, ruleY, rule)

	titleBaseline := ruleY + 28*layout.PtToMm
	r.drawText(ctx, w/2, titleBaseline, l.Title, titleFontSize, true, canvas.Center)

	if p.StudentID != "" {
		idBaseline := titleBaseline + 18*layout.PtToMm
		r.drawText(ctx, m, idBaseline, "Student ID: "+p.StudentID, idFontSize, true, canvas.Left)
	}
}

func (r *Renderer) drawQuestions(ctx *canvas.Context, l *layout.Layout, reveal bool) {
	byQuestion := l.BoxesByQuestion()
	for q := 1; q <= l.NumQuestions; q++ {
		boxes := byQuestion[q]
		if len(boxes) == 0 {
			continue
		}
		first := boxes[0]
		r.drawText(ctx, first.X, first.Y-l.Geometry.LabelGap, "Q "+l.QuestionLabel(q),
			questionFontSize, true, canvas.Left)

		for _, b := range boxes {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
			ctx.SetStrokeColor(canvas.Black)
			ctx.SetStrokeWidth(boxStrokeWidth)
			ctx.DrawPath(b.X, b.Y, canvas.Rectangle(b.W, b.H))

			if reveal && l.AnswerKey[q-1] == b.Option {
				ctx.SetFillColor(canvas.Black)
				ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
				ctx.DrawPath(b.X, b.Y, canvas.Rectangle(b.W, b.H))
			}

			label := fmt.Sprintf("(%s)", exam.LabelFor(b.Option))
			r.drawText(ctx, b.X+b.W+l.Geometry.LabelGap, b.Y+b.H-0.5, label,
				optionFontSize, false, canvas.Left)
		}
	}
}

// drawText draws one line anchored at x with its baseline at y (mm from
// the page top). Face sizes are pt; the mm conversion happens in canvas.
func (r *Renderer) drawText(ctx *canvas.Context, x, y float64, content string, sizePt float64, bold bool, align canvas.TextAlign) {
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	face := r.family.Face(sizePt, canvas.Black, style, canvas.FontNormal)
	line := canvas.NewTextLine(face, content, align)
	ctx.DrawText(x, y, line)
}
