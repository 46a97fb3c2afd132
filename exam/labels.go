package exam

import (
	"fmt"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// LabelFor returns the printed label for a zero-based option index:
// A..Z for the first 26, then AA, AB, ... beyond that.
func LabelFor(index int) string {
	if index < 0 {
		return ""
	}
	if index < len(alphabet) {
		return string(alphabet[index])
	}
	j := index - len(alphabet)
	return string(alphabet[j/len(alphabet)]) + string(alphabet[j%len(alphabet)])
}

// OptionLabels returns the labels for all options of a question with n choices.
func OptionLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = LabelFor(i)
	}
	return labels
}

// ParseKeyToken interprets one answer-key token as a zero-based option
// index. Purely numeric tokens are taken literally; anything else is
// decoded as a case-insensitive letter label.
func ParseKeyToken(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, fmt.Errorf("exam: empty answer-key token")
	}
	if isDigits(tok) {
		n := 0
		for _, r := range tok {
			n = n*10 + int(r-'0')
		}
		return n, nil
	}
	return decodeLabel(tok)
}

func decodeLabel(tok string) (int, error) {
	upper := strings.ToUpper(tok)
	for _, r := range upper {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("exam: answer-key token %q is neither an index nor a letter label", tok)
		}
	}
	switch len(upper) {
	case 1:
		return int(upper[0] - 'A'), nil
	case 2:
		return len(alphabet) + int(upper[0]-'A')*len(alphabet) + int(upper[1]-'A'), nil
	default:
		return 0, fmt.Errorf("exam: answer-key label %q is too long", tok)
	}
}

// ResolveKey parses a comma-separated answer key, repeating the token
// pattern cyclically over the questions, and validates every entry
// against its question's option count.
func ResolveKey(spec string, counts []int) ([]int, error) {
	tokens := SplitCSV(spec)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("exam: empty answer key")
	}
	key := make([]int, len(counts))
	for i := range counts {
		idx, err := ParseKeyToken(tokens[i%len(tokens)])
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		key[i] = idx
	}
	if err := ValidateKey(key, counts); err != nil {
		return nil, err
	}
	return key, nil
}

// ValidateKey checks that every key entry addresses an existing option.
func ValidateKey(key, counts []int) error {
	if len(key) != len(counts) {
		return fmt.Errorf("exam: answer key has %d entries, want %d", len(key), len(counts))
	}
	for i, idx := range key {
		if idx < 0 || idx >= counts[i] {
			return fmt.Errorf("exam: answer-key entry for question %d out of range: %d (options: %d)", i+1, idx, counts[i])
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
