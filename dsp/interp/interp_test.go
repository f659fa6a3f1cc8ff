package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("Linear2 got %v want 2.5", got)
	}
}

func TestSampleZeroIntegerPositionsAreExact(t *testing.T) {
	x := []float64{0.3, -0.7, 0.11, 0.5}
	for i, want := range x {
		if got := SampleZero(x, float64(i)); got != want {
			t.Fatalf("SampleZero(%d) = %v, want %v", i, got, want)
		}
	}
	if SampleZero(x, -1) != 0 || SampleZero(x, 4) != 0 {
		t.Fatal("SampleZero must be zero outside the buffer")
	}
}

func TestSampleZeroTracksSine(t *testing.T) {
	const n = 256
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / 64)
	}
	for pos := 10.0; pos < 240; pos += 3.3 {
		want := math.Sin(2 * math.Pi * pos / 64)
		if got := SampleZero(x, pos); math.Abs(got-want) > 1e-3 {
			t.Fatalf("SampleZero(%v) = %v, want %v", pos, got, want)
		}
	}
}

func TestSampleClampHoldsEdges(t *testing.T) {
	x := []float64{1, 2, 3}
	if got := SampleClamp(x, -5); got != 1 {
		t.Fatalf("SampleClamp(-5) = %v, want 1", got)
	}
	if got := SampleClamp(x, 10); got != 3 {
		t.Fatalf("SampleClamp(10) = %v, want 3", got)
	}
	if got := SampleClamp(nil, 1); got != 0 {
		t.Fatalf("SampleClamp(nil) = %v, want 0", got)
	}
}
