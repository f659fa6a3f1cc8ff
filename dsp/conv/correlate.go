package conv

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrInvalidLag     = errors.New("conv: invalid lag")
)

// Autocorrelator computes one-sided autocorrelations of frames up to a fixed
// length through a cached FFT plan. It is not safe for concurrent use.
type Autocorrelator struct {
	frameLen int
	maxLag   int
	fftSize  int

	plan    *algofft.Plan[complex128]
	timeBuf []complex128
	freqBuf []complex128
	lagsBuf []float64
}

// NewAutocorrelator prepares an autocorrelator for frames of at most
// frameLen samples, returning lags 0..maxLag.
func NewAutocorrelator(frameLen, maxLag int) (*Autocorrelator, error) {
	if frameLen <= 0 {
		return nil, fmt.Errorf("%w: frame length %d", ErrEmptyInput, frameLen)
	}
	if maxLag < 0 || maxLag >= frameLen {
		return nil, fmt.Errorf("%w: %d for frame length %d", ErrInvalidLag, maxLag, frameLen)
	}

	// Padding to frameLen+maxLag keeps the circular wrap away from the lags we read.
	fftSize := nextPowerOf2(frameLen + maxLag)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	return &Autocorrelator{
		frameLen: frameLen,
		maxLag:   maxLag,
		fftSize:  fftSize,
		plan:     plan,
		timeBuf:  make([]complex128, fftSize),
		freqBuf:  make([]complex128, fftSize),
		lagsBuf:  make([]float64, maxLag+1),
	}, nil
}

// Compute returns r[k] = sum_n frame[n]*frame[n+k] for k in 0..maxLag.
// The returned slice is reused by the next call.
func (a *Autocorrelator) Compute(frame []float64) ([]float64, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyInput
	}
	if len(frame) > a.frameLen {
		return nil, fmt.Errorf("%w: frame %d exceeds %d", ErrLengthMismatch, len(frame), a.frameLen)
	}

	for i := range a.timeBuf {
		if i < len(frame) {
			a.timeBuf[i] = complex(frame[i], 0)
		} else {
			a.timeBuf[i] = 0
		}
	}

	if err := a.plan.Forward(a.freqBuf, a.timeBuf); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// |X|^2 gives the circular autocorrelation after the inverse transform.
	for i, v := range a.freqBuf {
		re, im := real(v), imag(v)
		a.freqBuf[i] = complex(re*re+im*im, 0)
	}

	if err := a.plan.Inverse(a.timeBuf, a.freqBuf); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	for k := range a.lagsBuf {
		a.lagsBuf[k] = real(a.timeBuf[k])
	}

	return a.lagsBuf, nil
}

// AutoCorrelateDirect computes lags 0..maxLag of x in the time domain.
func AutoCorrelateDirect(x []float64, maxLag int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if maxLag < 0 || maxLag >= len(x) {
		return nil, fmt.Errorf("%w: %d for length %d", ErrInvalidLag, maxLag, len(x))
	}

	out := make([]float64, maxLag+1)
	for k := range out {
		sum := 0.0
		for n := 0; n+k < len(x); n++ {
			sum += x[n] * x[n+k]
		}
		out[k] = sum
	}

	return out, nil
}

// NormalizedDot returns the normalized cross-correlation of two equally long
// segments at zero lag, in [-1, 1]. Silent input scores 0.
func NormalizedDot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}

	var dot, ea, eb float64
	for i := range a {
		dot += a[i] * b[i]
		ea += a[i] * a[i]
		eb += b[i] * b[i]
	}

	den := math.Sqrt(ea * eb)
	if den == 0 {
		return 0, nil
	}

	return dot / den, nil
}

// ParabolicPeak refines a discrete peak at index i of y, returning the
// fractional offset in [-0.5, 0.5] and the interpolated peak value.
func ParabolicPeak(y []float64, i int) (offset, value float64) {
	if i <= 0 || i >= len(y)-1 {
		if i >= 0 && i < len(y) {
			return 0, y[i]
		}
		return 0, 0
	}

	ym1, y0, y1 := y[i-1], y[i], y[i+1]
	den := ym1 - 2*y0 + y1
	if den == 0 {
		return 0, y0
	}

	offset = 0.5 * (ym1 - y1) / den
	if offset > 0.5 {
		offset = 0.5
	} else if offset < -0.5 {
		offset = -0.5
	}

	value = y0 - 0.25*(ym1-y1)*offset

	return offset, value
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
