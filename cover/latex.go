package cover

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// wrapperTemplate is the fixed LaTeX document the user fragment is
// embedded into. ${name} placeholders are substituted with escaped
// metadata before compilation.
const wrapperTemplate = `\documentclass[a4paper,11pt]{article}

\usepackage[ngerman]{babel}
\usepackage[T1]{fontenc}
\usepackage[utf8]{inputenc}
\usepackage{xcolor}
\usepackage{graphicx}
\usepackage{amsmath,amssymb}
\usepackage{setspace}
\usepackage[margin=18mm]{geometry}

\pagestyle{empty}

\newcommand{\CourseName}{${course}}
\newcommand{\Professor}{${professor}}
\newcommand{\ExamDate}{${date}}
\newcommand{\StudentID}{${studentId}}
\newcommand{\CoverTitle}{${coverTitle}}

\begin{document}

\begin{center}
{\Large \textbf{\CourseName}}\\
\vspace{0.2cm}
{\ \Professor \hfill \ExamDate}
\end{center}

\vspace{0.5cm}

\noindent
\Large \textbf{\CoverTitle} \hfill \Large \textbf{Student-ID:} \Large \StudentID
\normalsize

\vspace{0.8cm}

\input{cover_content.tex}

\end{document}
`

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolate replaces ${name} placeholders with values from vars.
// Unknown placeholders are left untouched.
func interpolate(text string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		if val, ok := vars[strings.TrimSpace(groups[1])]; ok {
			return val
		}
		return match
	})
}

// buildWrapper renders the wrapper document for one student.
func buildWrapper(meta Meta) string {
	return interpolate(wrapperTemplate, map[string]string{
		"course":     Escape(meta.Course),
		"professor":  Escape(meta.Professor),
		"date":       Escape(meta.Date),
		"studentId":  Escape(meta.StudentID),
		"coverTitle": Escape(meta.Title),
	})
}

// PDFLaTeX compiles covers by invoking pdflatex in a scratch directory.
type PDFLaTeX struct {
	// Command is the toolchain executable, "pdflatex" when empty.
	Command string
}

var _ Compiler = (*PDFLaTeX)(nil)

// Compile runs the toolchain twice over the wrapper (stable
// cross-reference resolution) and copies the result to outPath. Failures
// are fatal and carry the toolchain transcript; there is no retry and no
// timeout.
func (p *PDFLaTeX) Compile(outPath, contentPath string, meta Meta) error {
	cmdName := p.Command
	if cmdName == "" {
		cmdName = "pdflatex"
	}
	if _, err := exec.LookPath(cmdName); err != nil {
		return fmt.Errorf("cover: %s not found; install a TeX distribution and make sure it is on PATH: %w", cmdName, err)
	}

	workDir, err := os.MkdirTemp("", "covertex-")
	if err != nil {
		return fmt.Errorf("cover: create scratch dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	if err := copyFile(contentPath, filepath.Join(workDir, "cover_content.tex")); err != nil {
		return fmt.Errorf("cover: stage content fragment: %w", err)
	}
	if err := stageSiblingPDFs(contentPath, workDir); err != nil {
		return err
	}

	wrapperPath := filepath.Join(workDir, "cover_wrapper.tex")
	if err := os.WriteFile(wrapperPath, []byte(buildWrapper(meta)), 0o644); err != nil {
		return fmt.Errorf("cover: write wrapper: %w", err)
	}

	for i := 0; i < 2; i++ {
		cmd := exec.Command(cmdName, "-interaction=nonstopmode", "-halt-on-error", "cover_wrapper.tex")
		cmd.Dir = workDir
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("cover: latex compilation failed: %w\n%s", err, out)
		}
	}

	compiled := filepath.Join(workDir, "cover_wrapper.pdf")
	if _, err := os.Stat(compiled); err != nil {
		return fmt.Errorf("cover: latex compilation produced no PDF: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("cover: create output dir: %w", err)
	}
	if err := copyFile(compiled, outPath); err != nil {
		return fmt.Errorf("cover: copy result: %w", err)
	}
	return nil
}

// stageSiblingPDFs copies PDF assets that sit next to the content
// fragment so the fragment can \includegraphics them by bare name.
func stageSiblingPDFs(contentPath, workDir string) error {
	dir := filepath.Dir(contentPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cover: read fragment dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		src := filepath.Join(dir, e.Name())
		if err := copyFile(src, filepath.Join(workDir, e.Name())); err != nil {
			return fmt.Errorf("cover: stage asset %s: %w", e.Name(), err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
