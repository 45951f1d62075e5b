package mandel

import (
	"slices"
	"testing"
)

func TestEscapeTimeOrigin(t *testing.T) {
	// z stays at 0 forever, so the budget is always exhausted.
	for _, n := range []int{0, 1, 7, 100, 1000} {
		if got := EscapeTime(0, 0, n); got != n {
			t.Errorf("EscapeTime(0, 0, %d) = %d, want %d", n, got, n)
		}
	}
}

func TestEscapeTimeImmediateEscape(t *testing.T) {
	// |c| already exceeds the escape radius, so the very first
	// iteration trips the test.
	tests := []struct{ re, im float64 }{
		{2, 2},
		{3, 0},
		{0, -3},
		{-2.5, 1.5},
	}
	for _, tt := range tests {
		if got := EscapeTime(tt.re, tt.im, 100); got != 0 {
			t.Errorf("EscapeTime(%g, %g, 100) = %d, want 0", tt.re, tt.im, got)
		}
	}
}

func TestEscapeTimeZeroBudget(t *testing.T) {
	for _, tt := range []struct{ re, im float64 }{{0, 0}, {2, 2}, {-1, 0.5}} {
		if got := EscapeTime(tt.re, tt.im, 0); got != 0 {
			t.Errorf("EscapeTime(%g, %g, 0) = %d, want 0", tt.re, tt.im, got)
		}
	}
}

func TestEscapeTimeKnownPoints(t *testing.T) {
	tests := []struct {
		re, im  float64
		maxIter int
		want    int
	}{
		// all intermediate values are exact in binary, so these
		// counts are stable across platforms
		{0.5, 0.5, 100, 4},
		{-1, -1, 100, 2},
		// bounded orbits: a period-2 cycle, an eventually periodic
		// point and the cusp of the cardioid
		{-1, 0, 100, 100},
		{0, -1, 100, 100},
		{0.25, 0, 500, 500},
	}
	for _, tt := range tests {
		if got := EscapeTime(tt.re, tt.im, tt.maxIter); got != tt.want {
			t.Errorf("EscapeTime(%g, %g, %d) = %d, want %d", tt.re, tt.im, tt.maxIter, got, tt.want)
		}
	}
}

func TestEscapeTimeRangeBound(t *testing.T) {
	const maxIter = 50
	for re := -2.5; re <= 1.5; re += 0.25 {
		for im := -1.5; im <= 1.5; im += 0.25 {
			got := EscapeTime(re, im, maxIter)
			if got < 0 || got > maxIter {
				t.Fatalf("EscapeTime(%g, %g, %d) = %d, outside [0, %d]", re, im, maxIter, got, maxIter)
			}
		}
	}
}

func TestEvaluateGolden(t *testing.T) {
	// 2×2 grid over (-1,1)×(-1,1) samples (-1,-1), (0,-1), (-1,0),
	// (0,0). Only the first diverges (after two iterations).
	out := make([]int32, 4)
	Evaluate(out, 2, 2, Region{MinReal: -1, MaxReal: 1, MinImag: -1, MaxImag: 1}, 10)

	want := []int32{2, 10, 10, 10}
	if !slices.Equal(out, want) {
		t.Errorf("Evaluate 2x2 = %v, want %v", out, want)
	}
}

func TestEvaluateFillsEverySlot(t *testing.T) {
	const width, height, maxIter = 7, 5, 25

	out := make([]int32, width*height)
	for i := range out {
		out[i] = -1 // sentinel, outside the result range
	}

	Evaluate(out, width, height, Overview, maxIter)

	for i, v := range out {
		if v < 0 || v > maxIter {
			t.Errorf("out[%d] = %d, want a value in [0, %d]", i, v, maxIter)
		}
	}
}

func TestEvaluateMapping(t *testing.T) {
	const width, height, maxIter = 4, 3, 40
	r := SeahorseValley

	out := make([]int32, width*height)
	Evaluate(out, width, height, r, maxIter)

	realStep := (r.MaxReal - r.MinReal) / float64(width)
	imagStep := (r.MaxImag - r.MinImag) / float64(height)

	// pixel (0,0) samples the exact region minimum; every further
	// column advances the real part by exactly one step
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			re := r.MinReal + float64(j)*realStep
			im := r.MinImag + float64(i)*imagStep
			want := int32(EscapeTime(re, im, maxIter))
			if got := out[i*width+j]; got != want {
				t.Errorf("cell (%d,%d) = %d, want %d for point (%g, %g)", i, j, got, want, re, im)
			}
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	const width, height, maxIter = 16, 9, 64

	a := make([]int32, width*height)
	b := make([]int32, width*height)
	Evaluate(a, width, height, SpiralMinibrot, maxIter)
	Evaluate(b, width, height, SpiralMinibrot, maxIter)

	if !slices.Equal(a, b) {
		t.Error("two evaluations of identical inputs differ")
	}
}

func TestEvaluateMaxIterZero(t *testing.T) {
	out := make([]int32, 6)
	for i := range out {
		out[i] = -1
	}

	Evaluate(out, 3, 2, Overview, 0)

	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d] = %d, want 0 with a zero iteration budget", i, v)
		}
	}
}
