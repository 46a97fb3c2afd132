// Package collate orchestrates one generation run: layout snapshot,
// solution sheet, per-student sheets and covers, and the combined PDFs.
package collate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/exam-tools/omrsheet/cover"
	"github.com/exam-tools/omrsheet/exam"
	"github.com/exam-tools/omrsheet/layout"
	"github.com/exam-tools/omrsheet/render"
)

// ErrNoMerger is returned when combined PDFs were requested but no merge
// capability is configured. The individual sheets are still generated.
var ErrNoMerger = errors.New("collate: no merge capability configured; per-student sheets were generated, but combined PDFs need a merger")

// Job describes one run. The layout must carry a resolved answer key.
type Job struct {
	Layout *layout.Layout
	Header render.Header

	IDStart int
	IDCount int

	OutDir string

	// CoverContent is the path of the LaTeX body fragment; empty disables
	// cover generation.
	CoverContent string
	CoverTitle   string

	// PerStudent additionally persists the per-student PDFs under
	// predictable names in OutDir.
	PerStudent bool
	// KeepTemp leaves the intermediate working directory in place.
	KeepTemp bool
}

// Collator renders and merges sheets strictly sequentially. The layout
// is the only state shared across iterations and is read-only.
type Collator struct {
	renderer render.SheetRenderer
	compiler cover.Compiler
	merger   Merger
	log      zerolog.Logger
}

// New wires a collator from its collaborators. compiler and merger may
// be nil; a nil compiler only matters when a job enables covers.
func New(r render.SheetRenderer, c cover.Compiler, m Merger, log zerolog.Logger) *Collator {
	return &Collator{renderer: r, compiler: c, merger: m, log: log}
}

// Run executes one job. Any error aborts the run; there is no
// skip-and-continue for an individual student.
func (c *Collator) Run(job Job) error {
	l := job.Layout
	if l == nil {
		return fmt.Errorf("collate: job has no layout")
	}
	if c.renderer == nil {
		return fmt.Errorf("collate: no sheet renderer configured")
	}
	if err := exam.ValidateKey(l.AnswerKey, l.OptionCounts); err != nil {
		return err
	}
	coverEnabled := job.CoverContent != ""
	if coverEnabled && c.compiler == nil {
		return fmt.Errorf("collate: covers requested but no cover compiler configured")
	}
	if coverEnabled {
		if _, err := os.Stat(job.CoverContent); err != nil {
			return fmt.Errorf("collate: cover content fragment: %w", err)
		}
	}
	if err := os.MkdirAll(job.OutDir, 0o755); err != nil {
		return fmt.Errorf("collate: create output dir: %w", err)
	}

	runID := uuid.NewString()
	c.log.Info().
		Str("run_id", runID).
		Int("questions", l.NumQuestions).
		Int("students", job.IDCount).
		Bool("covers", coverEnabled).
		Msg("starting run")

	snapshotPath := filepath.Join(job.OutDir, "layout.json")
	if err := layout.WriteSnapshot(l, runID, time.Now(), snapshotPath); err != nil {
		return fmt.Errorf("collate: write layout snapshot: %w", err)
	}

	solution, err := c.renderer.RenderSheet(l, render.SheetParams{
		RevealSolution: true,
		Header:         job.Header,
	})
	if err != nil {
		return fmt.Errorf("collate: render solution sheet: %w", err)
	}
	solutionPath := filepath.Join(job.OutDir, "answer_sheet_solution.pdf")
	if err := os.WriteFile(solutionPath, solution, 0o644); err != nil {
		return fmt.Errorf("collate: write solution sheet: %w", err)
	}
	c.log.Info().Str("path", solutionPath).Msg("solution sheet written")

	// All per-student intermediates live in a scratch dir that is removed
	// on every exit path unless the job keeps it.
	tmpDir, err := os.MkdirTemp(job.OutDir, "sheets-")
	if err != nil {
		return fmt.Errorf("collate: create scratch dir: %w", err)
	}
	defer func() {
		if job.KeepTemp {
			c.log.Info().Str("dir", tmpDir).Msg("keeping intermediate sheets")
			return
		}
		os.RemoveAll(tmpDir)
	}()

	var sheetPaths, coverPaths []string
	for n := job.IDStart; n < job.IDStart+job.IDCount; n++ {
		sid := exam.FormatStudentID(n)

		sheet, err := c.renderer.RenderSheet(l, render.SheetParams{
			StudentID: sid,
			Header:    job.Header,
		})
		if err != nil {
			return fmt.Errorf("collate: render sheet for student %s: %w", sid, err)
		}
		sheetPath := filepath.Join(tmpDir, "answer_sheet_"+sid+".pdf")
		if err := os.WriteFile(sheetPath, sheet, 0o644); err != nil {
			return fmt.Errorf("collate: write sheet for student %s: %w", sid, err)
		}
		sheetPaths = append(sheetPaths, sheetPath)

		if coverEnabled {
			coverPath := filepath.Join(tmpDir, "cover_sheet_"+sid+".pdf")
			err := c.compiler.Compile(coverPath, job.CoverContent, cover.Meta{
				Course:    job.Header.Course,
				Professor: job.Header.Professor,
				Date:      job.Header.Date,
				StudentID: sid,
				Title:     job.CoverTitle,
			})
			if err != nil {
				return fmt.Errorf("collate: cover for student %s: %w", sid, err)
			}
			coverPaths = append(coverPaths, coverPath)
		}

		if job.PerStudent {
			if err := c.persist(job.OutDir, sheetPath); err != nil {
				return err
			}
			if coverEnabled {
				if err := c.persist(job.OutDir, coverPaths[len(coverPaths)-1]); err != nil {
					return err
				}
			}
		}
		c.log.Debug().Str("student_id", sid).Msg("sheet rendered")
	}

	if c.merger == nil {
		return ErrNoMerger
	}
	combined := filepath.Join(job.OutDir, "answer_sheets_all.pdf")
	if err := c.merger.Merge(combined, sheetPaths); err != nil {
		return err
	}
	c.log.Info().Str("path", combined).Int("pages", len(sheetPaths)).Msg("answer sheets merged")

	if coverEnabled {
		combinedCovers := filepath.Join(job.OutDir, "cover_sheets_all.pdf")
		if err := c.merger.Merge(combinedCovers, coverPaths); err != nil {
			return err
		}
		c.log.Info().Str("path", combinedCovers).Int("pages", len(coverPaths)).Msg("cover sheets merged")
	}
	return nil
}

func (c *Collator) persist(outDir, srcPath string) error {
	dst := filepath.Join(outDir, filepath.Base(srcPath))
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("collate: persist %s: %w", dst, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("collate: persist %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("collate: persist %s: %w", dst, err)
	}
	return out.Close()
}
