package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exam-tools/omrsheet/exam"
	"github.com/exam-tools/omrsheet/layout"
)

// Resolve maps a parsed exam definition onto a run configuration.
// Defaults match the CLI surface; Normalize is left to the caller.
func Resolve(doc *Exam) (*exam.Config, error) {
	if doc == nil {
		return nil, fmt.Errorf("dsl: document is nil")
	}
	cfg := &exam.Config{
		Paper:       "A4",
		Title:       string(doc.Title),
		OptionsSpec: "2",
		Columns:     5,
		BoxSizeMM:   3.5,
		IDStart:     1,
		IDCount:     1,
		OutDir:      "out",
		CoverTitle:  "Exam paper",
	}

	for _, e := range doc.Entries {
		if err := apply(cfg, e); err != nil {
			return nil, fmt.Errorf("dsl: %s: %w", e.Pos, err)
		}
	}
	return cfg, nil
}

func apply(cfg *exam.Config, e *Entry) error {
	switch e.Key {
	case "paper":
		s, err := identOrString(e)
		if err != nil {
			return err
		}
		cfg.Paper = strings.ToUpper(s)
	case "course":
		return setString(&cfg.Course, e)
	case "professor":
		return setString(&cfg.Professor, e)
	case "date":
		return setString(&cfg.Date, e)
	case "questions":
		n, err := intValue(e)
		if err != nil {
			return err
		}
		cfg.NumQuestions = n
	case "options":
		spec, err := countSpec(e)
		if err != nil {
			return err
		}
		cfg.OptionsSpec = spec
	case "key":
		return setString(&cfg.AnswerKeySpec, e)
	case "columns":
		n, err := intValue(e)
		if err != nil {
			return err
		}
		cfg.Columns = n
	case "force-columns":
		b, err := boolValue(e)
		if err != nil {
			return err
		}
		cfg.ForceColumns = b
	case "box-size":
		return setLength(&cfg.BoxSizeMM, e)
	case "row-gap":
		return setLength(&cfg.RowGapMM, e)
	case "col-gap":
		return setLength(&cfg.ColGapMM, e)
	case "prefix":
		return setString(&cfg.QuestionPrefix, e)
	case "students":
		if e.Value == nil || e.Value.Range == nil {
			return fmt.Errorf("key %q wants a start..end range", e.Key)
		}
		cfg.IDStart = e.Value.Range.Start
		cfg.IDCount = e.Value.Range.End - e.Value.Range.Start + 1
	case "cover":
		return setString(&cfg.CoverContent, e)
	case "cover-title":
		return setString(&cfg.CoverTitle, e)
	case "out-dir":
		return setString(&cfg.OutDir, e)
	case "per-student":
		b, err := boolValue(e)
		if err != nil {
			return err
		}
		cfg.PerStudent = b
	case "keep-temp":
		b, err := boolValue(e)
		if err != nil {
			return err
		}
		cfg.KeepTemp = b
	default:
		return fmt.Errorf("unknown key %q", e.Key)
	}
	return nil
}

func setString(dst *string, e *Entry) error {
	if e.Value == nil || e.Value.String == nil {
		return fmt.Errorf("key %q wants a quoted string", e.Key)
	}
	*dst = string(*e.Value.String)
	return nil
}

func identOrString(e *Entry) (string, error) {
	switch {
	case e.Value == nil:
		return "", fmt.Errorf("key %q has no value", e.Key)
	case e.Value.Ident != nil:
		return *e.Value.Ident, nil
	case e.Value.String != nil:
		return string(*e.Value.String), nil
	default:
		return "", fmt.Errorf("key %q wants an identifier or string", e.Key)
	}
}

func intValue(e *Entry) (int, error) {
	if e.Value == nil || e.Value.Number == nil {
		return 0, fmt.Errorf("key %q wants an integer", e.Key)
	}
	n, err := strconv.Atoi(*e.Value.Number)
	if err != nil {
		return 0, fmt.Errorf("key %q wants an integer, got %q", e.Key, *e.Value.Number)
	}
	return n, nil
}

func boolValue(e *Entry) (bool, error) {
	if e.Value == nil || e.Value.Ident == nil {
		return false, fmt.Errorf("key %q wants true or false", e.Key)
	}
	switch *e.Value.Ident {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("key %q wants true or false, got %q", e.Key, *e.Value.Ident)
	}
}

// setLength accepts a number with an optional unit suffix and stores millimeters.
func setLength(dst *float64, e *Entry) error {
	if e.Value == nil || e.Value.Number == nil {
		return fmt.Errorf("key %q wants a length like 3.5mm", e.Key)
	}
	l, err := layout.ParseLength(*e.Value.Number)
	if err != nil {
		return err
	}
	*dst = l.ToMM()
	return nil
}

// countSpec accepts `[2, 4, 3]`, a single number, or a "2,4,3" string and
// returns the comma-separated option-count pattern.
func countSpec(e *Entry) (string, error) {
	switch {
	case e.Value == nil:
		return "", fmt.Errorf("key %q has no value", e.Key)
	case e.Value.Array != nil:
		if len(e.Value.Array.Items) == 0 {
			return "", fmt.Errorf("key %q has an empty list", e.Key)
		}
		return strings.Join(e.Value.Array.Items, ","), nil
	case e.Value.Number != nil:
		return *e.Value.Number, nil
	case e.Value.String != nil:
		return string(*e.Value.String), nil
	default:
		return "", fmt.Errorf("key %q wants a count list", e.Key)
	}
}
