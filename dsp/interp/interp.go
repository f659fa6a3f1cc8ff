package interp

import "math"

// Linear2 interpolates between x0 and x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// SampleZero reads x at fractional position pos with Hermite interpolation,
// treating samples outside the buffer as zero. Integer positions return the
// stored sample exactly.
func SampleZero(x []float64, pos float64) float64 {
	idx := int(math.Floor(pos))
	frac := pos - float64(idx)
	if frac == 0 {
		return zeroAt(x, idx)
	}
	return Hermite4(frac, zeroAt(x, idx-1), zeroAt(x, idx), zeroAt(x, idx+1), zeroAt(x, idx+2))
}

// SampleClamp reads x at fractional position pos with Hermite interpolation,
// holding the first and last samples beyond the buffer ends.
func SampleClamp(x []float64, pos float64) float64 {
	if len(x) == 0 {
		return 0
	}
	idx := int(math.Floor(pos))
	frac := pos - float64(idx)
	if frac == 0 {
		return clampAt(x, idx)
	}
	return Hermite4(frac, clampAt(x, idx-1), clampAt(x, idx), clampAt(x, idx+1), clampAt(x, idx+2))
}

func zeroAt(x []float64, idx int) float64 {
	if idx < 0 || idx >= len(x) {
		return 0
	}
	return x[idx]
}

func clampAt(x []float64, idx int) float64 {
	if idx < 0 {
		return x[0]
	}
	if idx >= len(x) {
		return x[len(x)-1]
	}
	return x[idx]
}
