package exam

import (
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.July, 14, 9, 0, 0, 0, time.UTC)

func baseConfig() *Config {
	return &Config{
		Paper:         "A4",
		Title:         "Antworten",
		NumQuestions:  3,
		OptionsSpec:   "2,4,3",
		Columns:       5,
		BoxSizeMM:     3.5,
		IDStart:       1,
		IDCount:       1,
		AnswerKeySpec: "A,C,B",
	}
}

func TestExpandCounts(t *testing.T) {
	got, err := ExpandCounts("2", 5)
	if err != nil {
		t.Fatalf("ExpandCounts error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{2, 2, 2, 2, 2}) {
		t.Fatalf("single-token pattern: got %v", got)
	}

	got, err = ExpandCounts("2,4,3", 5)
	if err != nil {
		t.Fatalf("ExpandCounts error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{2, 4, 3, 2, 4}) {
		t.Fatalf("cyclic pattern: got %v", got)
	}
}

func TestExpandCountsRejectsBadTokens(t *testing.T) {
	for _, spec := range []string{"", "x", "0", "2,-1"} {
		if _, err := ExpandCounts(spec, 3); err == nil {
			t.Errorf("ExpandCounts(%q) accepted invalid pattern", spec)
		}
	}
}

func TestNormalizeResolvesCountsAndKey(t *testing.T) {
	cfg := baseConfig()
	if err := cfg.Normalize(testNow); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if !reflect.DeepEqual(cfg.OptionCounts, []int{2, 4, 3}) {
		t.Fatalf("counts = %v", cfg.OptionCounts)
	}
	if !reflect.DeepEqual(cfg.AnswerKey, []int{0, 2, 1}) {
		t.Fatalf("key = %v", cfg.AnswerKey)
	}
}

func TestNormalizeOptionsListMustMatchLength(t *testing.T) {
	cfg := baseConfig()
	cfg.OptionsList = "2,4"
	if err := cfg.Normalize(testNow); err == nil {
		t.Fatal("options list shorter than question count must be rejected")
	}
}

func TestNormalizePrefixSuffixesTitle(t *testing.T) {
	cfg := baseConfig()
	cfg.QuestionPrefix = "A."
	if err := cfg.Normalize(testNow); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if cfg.QuestionPrefix != "A" {
		t.Fatalf("prefix = %q, want trailing dot trimmed", cfg.QuestionPrefix)
	}
	if cfg.Title != "Antworten - A" {
		t.Fatalf("title = %q", cfg.Title)
	}
}

func TestNormalizeDefaultsDate(t *testing.T) {
	cfg := baseConfig()
	if err := cfg.Normalize(testNow); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if cfg.Date != "14. July 2026" {
		t.Fatalf("date = %q", cfg.Date)
	}

	cfg = baseConfig()
	cfg.Date = "fixed"
	if err := cfg.Normalize(testNow); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if cfg.Date != "fixed" {
		t.Fatalf("explicit date overwritten: %q", cfg.Date)
	}
}

func TestNormalizeRejectsBadKeyBeforeRendering(t *testing.T) {
	cfg := baseConfig()
	cfg.AnswerKeySpec = "C,C,C" // question 1 has only 2 options
	if err := cfg.Normalize(testNow); err == nil {
		t.Fatal("out-of-range key must fail at normalization")
	}
}

func TestFormatStudentID(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "001"},
		{42, "042"},
		{999, "999"},
		{1000, "1000"},
	}
	for _, c := range cases {
		if got := FormatStudentID(c.n); got != c.want {
			t.Errorf("FormatStudentID(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestCoverEnabled(t *testing.T) {
	cfg := baseConfig()
	if cfg.CoverEnabled() {
		t.Fatal("covers enabled without content fragment")
	}
	cfg.CoverContent = "cover.tex"
	if !cfg.CoverEnabled() {
		t.Fatal("covers should be enabled")
	}
	cfg.NoCover = true
	if cfg.CoverEnabled() {
		t.Fatal("no-cover must win")
	}
}
