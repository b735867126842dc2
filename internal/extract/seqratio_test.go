package extract

import (
	"math"
	"testing"
)

func TestRatio_Identical(t *testing.T) {
	if got := Ratio("cps 2232: data structure", "cps 2232: data structure"); got != 1.0 {
		t.Errorf("Ratio of identical strings = %f, want 1.0", got)
	}
}

func TestRatio_Disjoint(t *testing.T) {
	if got := Ratio("abc", "xyz"); got != 0.0 {
		t.Errorf("Ratio of disjoint strings = %f, want 0.0", got)
	}
}

func TestRatio_Empty(t *testing.T) {
	if got := Ratio("", ""); got != 1.0 {
		t.Errorf("Ratio of two empty strings = %f, want 1.0", got)
	}
	if got := Ratio("abc", ""); got != 0.0 {
		t.Errorf("Ratio against empty string = %f, want 0.0", got)
	}
}

func TestRatio_KnownValue(t *testing.T) {
	// The single matched block is "abcd" (4 runes), so 2*4/(4+7).
	got := Ratio("abcd", "bcdabcd")
	want := 2.0 * 4.0 / 11.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Ratio(abcd, bcdabcd) = %f, want %f", got, want)
	}
}

func TestRatio_Symmetry(t *testing.T) {
	a, b := "data structure", "data structures and algorithms"
	if Ratio(a, b) != Ratio(b, a) {
		t.Errorf("Ratio should be symmetric for these inputs: %f vs %f", Ratio(a, b), Ratio(b, a))
	}
}

func TestRatio_NearMatchAboveThreshold(t *testing.T) {
	got := Ratio("cps 2232: data structure", "cps 2232: data structures")
	if got <= 0.8 {
		t.Errorf("near-identical strings should exceed 0.8, got %f", got)
	}
}
