package noise

import (
	"math"
	"testing"
)

func TestNoise4_Deterministic(t *testing.T) {
	inputs := [][4]float64{
		{0, 0, 0, 0},
		{0.5, 1.25, -3.75, 9.1},
		{123.456, -78.9, 0.001, 42},
		{-0.0001, 1e4, 3, -2.5},
	}
	for _, in := range inputs {
		a := Noise4(in[0], in[1], in[2], in[3])
		b := Noise4(in[0], in[1], in[2], in[3])
		if a != b {
			t.Errorf("Expected identical output for %v, got %f and %f", in, a, b)
		}
	}
}

func TestNoise4_Range(t *testing.T) {
	for i := 0; i < 20000; i++ {
		f := float64(i)
		v := Noise4(f*0.173-500, f*0.091, -f*0.057, f*0.311+2)
		if v < 0 || v > 1 || math.IsNaN(v) {
			t.Fatalf("Expected value in [0,1], got %f at sample %d", v, i)
		}
	}
}

func TestNoise4_LatticeCornersMatchHash(t *testing.T) {
	// At integer coordinates only one corner carries weight.
	for i := int64(-3); i < 3; i++ {
		got := Noise4(float64(i), 2, float64(-i), 5)
		want := lattice(i, 2, -i, 5)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Expected corner value %f at x=%d, got %f", want, i, got)
		}
	}
}

func TestNoise4_ContinuousAcrossCells(t *testing.T) {
	const step = 0.001
	// smoothstep slope is at most 1.5 per axis and corner values differ by < 1
	const tolerance = 0.01

	axes := []func(s float64) [4]float64{
		func(s float64) [4]float64 { return [4]float64{s, 0.3, 0.7, 0.2} },
		func(s float64) [4]float64 { return [4]float64{0.4, s, 0.1, 0.9} },
		func(s float64) [4]float64 { return [4]float64{0.6, 0.2, s, 0.5} },
		func(s float64) [4]float64 { return [4]float64{0.8, 0.5, 0.4, s} },
	}
	for ai, axis := range axes {
		prev := axis(-3)
		prevV := Noise4(prev[0], prev[1], prev[2], prev[3])
		maxDelta := 0.0
		for s := -3 + step; s <= 3; s += step {
			p := axis(s)
			v := Noise4(p[0], p[1], p[2], p[3])
			if d := math.Abs(v - prevV); d > maxDelta {
				maxDelta = d
			}
			prevV = v
		}
		if maxDelta > tolerance {
			t.Errorf("Axis %d: expected max delta below %f, got %f", ai, tolerance, maxDelta)
		}
	}
}

func TestNoise4_Varies(t *testing.T) {
	seen := map[float64]bool{}
	for i := 0; i < 50; i++ {
		seen[Noise4(float64(i)+0.5, 0.5, 0.5, 0.5)] = true
	}
	if len(seen) < 40 {
		t.Errorf("Expected mostly distinct values across cells, got %d distinct", len(seen))
	}
}

func TestFractal4_Range(t *testing.T) {
	for i := 0; i < 2000; i++ {
		f := float64(i) * 0.37
		v := Fractal4(f, -f, f*0.5, 1, 4)
		if v < 0 || v > 1 {
			t.Fatalf("Expected value in [0,1], got %f", v)
		}
	}
	if Fractal4(1.5, 2.5, 3.5, 4.5, 0) != Noise4(1.5, 2.5, 3.5, 4.5) {
		t.Errorf("Expected zero octaves to fall back to a single octave")
	}
}

func BenchmarkNoise4(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Noise4(float64(i)*0.01, 1.3, 2.7, 0.5)
	}
}
