// Package dsl parses .exam definition files, a flat alternative to the
// CLI flag surface for describing one answer-sheet batch.
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	examLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Range", Pattern: `\d+\.\.\d+`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:mm|cm|in|pt)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	examParser = participle.MustBuild[Exam](
		participle.Lexer(examLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Exam is the root AST node of a .exam file.
type Exam struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Title   StringLiteral  `parser:"Newline* 'exam' @String"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is one key/value assignment inside the exam block.
type Entry struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Value represents one assignment value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Range  *RangeValue    `parser:"| @Range"`
	Number *string        `parser:"| @Number"`
	Array  *ArrayValue    `parser:"| @@"`
	Ident  *string        `parser:"| @Ident"`
}

// ArrayValue captures `[ 2, 4, 3 ]` number lists.
type ArrayValue struct {
	Items []string `parser:"'[' Newline* ( @Number ( ',' Newline* @Number )* )? Newline* ']'"`
}

// RangeValue captures an inclusive `start..end` student-ID range.
type RangeValue struct {
	Start int
	End   int
}

// Capture implements participle.Capture for Range tokens.
func (r *RangeValue) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("range capture requires a value")
	}
	parts := strings.SplitN(values[0], "..", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return err
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}
	if end < start {
		return fmt.Errorf("range %q runs backwards", values[0])
	}
	r.Start = start
	r.End = end
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires a value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses exam definition content from an io.Reader.
func Parse(r io.Reader) (*Exam, error) {
	return examParser.Parse("", r)
}

// ParseString parses exam definition content from a string.
func ParseString(input string) (*Exam, error) {
	return examParser.ParseString("", input)
}
