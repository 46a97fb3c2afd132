package cover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEscapeSpecialCharacters(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`a&b`, `a\&b`},
		{`100%`, `100\%`},
		{`$5`, `\$5`},
		{`#1`, `\#1`},
		{`a_b`, `a\_b`},
		{`{x}`, `\{x\}`},
		{`~`, `\textasciitilde{}`},
		{`^`, `\textasciicircum{}`},
		{`a\b`, `a\textbackslash{}b`},
		{`plain text`, `plain text`},
	}
	for _, c := range cases {
		if got := Escape(c.in); got != c.want {
			t.Errorf("Escape(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolate(t *testing.T) {
	vars := map[string]string{"course": "Statistik I", "date": "14. Juli 2026"}
	got := interpolate(`\newcommand{\CourseName}{${course}} ${date} ${missing}`, vars)
	want := `\newcommand{\CourseName}{Statistik I} 14. Juli 2026 ${missing}`
	if got != want {
		t.Fatalf("interpolate = %q, want %q", got, want)
	}
}

func TestBuildWrapperSubstitutesEscapedMeta(t *testing.T) {
	wrapper := buildWrapper(Meta{
		Course:    "Maths & Stats",
		Professor: "Prof. 100%",
		Date:      "14. Juli 2026",
		StudentID: "042",
		Title:     "Exam paper",
	})
	for _, want := range []string{
		`\newcommand{\CourseName}{Maths \& Stats}`,
		`\newcommand{\Professor}{Prof. 100\%}`,
		`\newcommand{\StudentID}{042}`,
		`\newcommand{\CoverTitle}{Exam paper}`,
		`\input{cover_content.tex}`,
	} {
		if !strings.Contains(wrapper, want) {
			t.Errorf("wrapper misses %q", want)
		}
	}
	if strings.Contains(wrapper, "${") {
		t.Error("wrapper still contains unsubstituted placeholders")
	}
}

func TestCompileFailsWithoutToolchain(t *testing.T) {
	content := filepath.Join(t.TempDir(), "cover_content.tex")
	if err := os.WriteFile(content, []byte(`\noindent body`), 0o644); err != nil {
		t.Fatal(err)
	}
	p := &PDFLaTeX{Command: "definitely-not-a-tex-binary"}
	err := p.Compile(filepath.Join(t.TempDir(), "out.pdf"), content, Meta{})
	if err == nil {
		t.Fatal("missing toolchain must be fatal")
	}
	if !strings.Contains(err.Error(), "TeX distribution") {
		t.Fatalf("error should carry install guidance: %v", err)
	}
}

// TestCompileWithFakeToolchain runs the full staging pipeline against a
// shell stand-in that emits the expected PDF artifact.
func TestCompileWithFakeToolchain(t *testing.T) {
	binDir := t.TempDir()
	fake := filepath.Join(binDir, "fakelatex")
	script := "#!/bin/sh\nprintf '%%PDF-1.4 fake' > cover_wrapper.pdf\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	srcDir := t.TempDir()
	content := filepath.Join(srcDir, "body.tex")
	if err := os.WriteFile(content, []byte(`\noindent body`), 0o644); err != nil {
		t.Fatal(err)
	}
	// A sibling PDF asset must be staged next to the wrapper.
	asset := filepath.Join(srcDir, "guidelines.pdf")
	if err := os.WriteFile(asset, []byte("%PDF-1.4 asset"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "covers", "cover_sheet_001.pdf")
	p := &PDFLaTeX{Command: fake}
	if err := p.Compile(out, content, Meta{StudentID: "001", Title: "Exam paper"}); err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("output is not a PDF: %q", data)
	}
}
