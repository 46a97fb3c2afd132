// Package cover compiles per-student cover pages through an external
// typesetting toolchain.
package cover

import "strings"

// Meta is the per-student metadata substituted into the cover wrapper.
type Meta struct {
	Course    string
	Professor string
	Date      string
	StudentID string
	Title     string
}

// Compiler renders a user-supplied content fragment plus escaped
// metadata substitutions into a single-page PDF at outPath. Any
// implementation, including a stub, satisfies the collator.
type Compiler interface {
	Compile(outPath, contentPath string, meta Meta) error
}

var latexEscapes = map[rune]string{
	'\\': `\textbackslash{}`,
	'&':  `\&`,
	'%':  `\%`,
	'$':  `\$`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
}

// Escape neutralizes LaTeX special characters so metadata values cannot
// break the wrapper document.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := latexEscapes[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
