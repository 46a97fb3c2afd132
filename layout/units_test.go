package layout

import (
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	cases := []struct {
		in    string
		value float64
		unit  Unit
	}{
		{"3.5mm", 3.5, UnitMM},
		{"0.4cm", 0.4, UnitCM},
		{"1in", 1, UnitIN},
		{"12pt", 12, UnitPT},
		{"2", 2, UnitMM}, // bare numbers default to mm
		{" 10 mm ", 10, UnitMM},
	}
	for _, c := range cases {
		got, err := ParseLength(c.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) error: %v", c.in, err)
		}
		if got.Value != c.value || got.Unit != c.unit {
			t.Errorf("ParseLength(%q) = %+v, want {%g %d}", c.in, got, c.value, c.unit)
		}
	}
}

func TestParseLengthRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "mm", "1.2.3mm"} {
		if _, err := ParseLength(in); err == nil {
			t.Errorf("ParseLength(%q) accepted invalid input", in)
		}
	}
}

func TestLengthConversions(t *testing.T) {
	approx := func(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

	if got := (Length{Value: 1, Unit: UnitCM}).ToMM(); !approx(got, 10) {
		t.Fatalf("1cm = %gmm", got)
	}
	if got := (Length{Value: 1, Unit: UnitIN}).ToMM(); !approx(got, 25.4) {
		t.Fatalf("1in = %gmm", got)
	}
	if got := (Length{Value: 10, Unit: UnitMM}).ToPT(); !approx(got, 10*MmToPt) {
		t.Fatalf("10mm = %gpt", got)
	}
	if got := (Length{Value: 12, Unit: UnitPT}).ToMM(); !approx(got, 12*PtToMm) {
		t.Fatalf("12pt = %gmm", got)
	}
}

func TestUnitToString(t *testing.T) {
	cases := map[Unit]string{UnitMM: "mm", UnitCM: "cm", UnitIN: "in", UnitPT: "pt", UnitNone: ""}
	for u, want := range cases {
		if got := UnitToString(u); got != want {
			t.Errorf("UnitToString(%d) = %q, want %q", u, got, want)
		}
	}
}
