// Package exam holds the run configuration for an answer-sheet batch and
// the option-labeling / answer-key helpers shared by parsing and rendering.
package exam

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config is the fully resolved input of one generation run. All lengths
// are millimeters. Normalize must be called before the config is used.
type Config struct {
	Paper string
	Title string

	Course    string
	Professor string
	Date      string

	NumQuestions int
	// OptionsSpec is a comma-separated count pattern that repeats over the
	// questions ("2" or "2,4,3"); OptionsList, when set, must list one count
	// per question and takes precedence.
	OptionsSpec string
	OptionsList string
	// OptionCounts is filled by Normalize.
	OptionCounts []int

	Columns      int
	ForceColumns bool

	RowGapMM  float64
	ColGapMM  float64
	BoxSizeMM float64

	QuestionPrefix string

	IDStart int
	IDCount int

	// AnswerKeySpec is the raw comma-separated key ("A,C,B" or "0,2,1");
	// AnswerKey is filled by Normalize.
	AnswerKeySpec string
	AnswerKey     []int

	OutDir string

	CoverContent string // path to a LaTeX body fragment; empty disables covers
	CoverTitle   string
	NoCover      bool

	PerStudent bool
	KeepTemp   bool
}

// Normalize expands the option-count pattern and the answer key, applies
// the question prefix to the title and defaults the exam date from now.
// It reports the first configuration error it finds; nothing is rendered
// for an invalid config.
func (c *Config) Normalize(now time.Time) error {
	if c.NumQuestions < 1 {
		return fmt.Errorf("exam: num-questions must be at least 1, got %d", c.NumQuestions)
	}
	if c.BoxSizeMM <= 0 {
		return fmt.Errorf("exam: box-size must be positive, got %g", c.BoxSizeMM)
	}
	if c.RowGapMM < 0 || c.ColGapMM < 0 {
		return fmt.Errorf("exam: row-gap and col-gap must not be negative")
	}
	if c.Columns < 1 {
		return fmt.Errorf("exam: columns must be at least 1, got %d", c.Columns)
	}
	if c.IDCount < 1 {
		return fmt.Errorf("exam: student-id-count must be at least 1, got %d", c.IDCount)
	}

	counts, err := c.resolveCounts()
	if err != nil {
		return err
	}
	c.OptionCounts = counts

	key, err := ResolveKey(c.AnswerKeySpec, counts)
	if err != nil {
		return err
	}
	c.AnswerKey = key

	c.QuestionPrefix = strings.TrimSuffix(strings.TrimSpace(c.QuestionPrefix), ".")
	if c.QuestionPrefix != "" {
		c.Title = fmt.Sprintf("%s - %s", c.Title, c.QuestionPrefix)
	}

	if c.Date == "" {
		c.Date = now.Format("02. January 2006")
	}
	return nil
}

// CoverEnabled reports whether cover sheets should be generated.
func (c *Config) CoverEnabled() bool {
	return c.CoverContent != "" && !c.NoCover
}

func (c *Config) resolveCounts() ([]int, error) {
	if c.OptionsList != "" {
		tokens := SplitCSV(c.OptionsList)
		if len(tokens) != c.NumQuestions {
			return nil, fmt.Errorf("exam: options-list has %d entries, want exactly %d", len(tokens), c.NumQuestions)
		}
		counts := make([]int, len(tokens))
		for i, tok := range tokens {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("exam: options-list entry %d is not an integer: %q", i+1, tok)
			}
			if n < 1 {
				return nil, fmt.Errorf("exam: question %d needs at least one option, got %d", i+1, n)
			}
			counts[i] = n
		}
		return counts, nil
	}
	return ExpandCounts(c.OptionsSpec, c.NumQuestions)
}

// ExpandCounts parses a comma-separated option-count pattern and repeats
// it cyclically over numQuestions questions.
func ExpandCounts(spec string, numQuestions int) ([]int, error) {
	tokens := SplitCSV(spec)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("exam: empty option-count pattern")
	}
	pattern := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("exam: option-count token %q is not an integer", tok)
		}
		if n < 1 {
			return nil, fmt.Errorf("exam: option counts must be at least 1, got %d", n)
		}
		pattern[i] = n
	}
	counts := make([]int, numQuestions)
	for i := range counts {
		counts[i] = pattern[i%len(pattern)]
	}
	return counts, nil
}

// FormatStudentID renders a numeric identifier as a zero-padded string.
// IDs above 999 keep all their digits.
func FormatStudentID(n int) string {
	return fmt.Sprintf("%03d", n)
}

// SplitCSV splits a comma-separated value, trimming whitespace and
// dropping empty tokens.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
