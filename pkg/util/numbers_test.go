package util

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.005, 1.0},
		{1.006, 1.01},
		{-2.345, -2.35},
		{100, 100},
		{0.994999, 0.99},
	}
	for _, c := range cases {
		if got := Round2(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("empty should default, got %d", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Fatalf("invalid should default, got %d", got)
	}
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestMeanVarianceStdDev(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(xs); got != 5 {
		t.Fatalf("mean = %v, want 5", got)
	}
	if got := Variance(xs); got != 4 {
		t.Fatalf("variance = %v, want 4", got)
	}
	if got := StdDev(xs); got != 2 {
		t.Fatalf("stddev = %v, want 2", got)
	}
}

func TestEmptySlices(t *testing.T) {
	if Mean(nil) != 0 || Variance(nil) != 0 || StdDev(nil) != 0 {
		t.Fatalf("empty slices must produce zeros")
	}
}
