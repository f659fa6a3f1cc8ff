// Package signal defines the immutable mono PCM buffer the voice engine
// operates on, plus deterministic generators for test and demo material.
package signal

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmpty is returned for a signal without samples.
	ErrEmpty = errors.New("signal has no samples")
	// ErrNonFinite is returned when a sample is NaN or infinite.
	ErrNonFinite = errors.New("signal contains non-finite samples")
	// ErrSampleRate is returned for a sample rate <= 0.
	ErrSampleRate = errors.New("signal sample rate must be > 0")
)

// Signal is a mono PCM sample buffer with its sample rate.
//
// A Signal never changes after construction: New copies its input and
// Samples returns a copy, so values can be shared between goroutines.
type Signal struct {
	samples    []float64
	sampleRate int
}

// New validates samples and sampleRate and returns a Signal owning a copy
// of samples.
func New(samples []float64, sampleRate int) (Signal, error) {
	if err := validate(samples, sampleRate); err != nil {
		return Signal{}, err
	}

	return Signal{samples: append([]float64(nil), samples...), sampleRate: sampleRate}, nil
}

// Silence returns n zero samples at sampleRate. n may be zero, which is
// how a fully compressed or empty result is represented.
func Silence(n, sampleRate int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	if n < 0 {
		return Signal{}, fmt.Errorf("silence length must be >= 0: %d", n)
	}

	return Signal{samples: make([]float64, n), sampleRate: sampleRate}, nil
}

// adopt wraps samples without copying. The caller must not retain samples.
func adopt(samples []float64, sampleRate int) Signal {
	return Signal{samples: samples, sampleRate: sampleRate}
}

// FromOwned builds a Signal that takes ownership of samples. It is used by
// producers that allocate a fresh output buffer and hand it over.
func FromOwned(samples []float64, sampleRate int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Signal{}, fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
	}

	return adopt(samples, sampleRate), nil
}

// Validate reports whether s is usable as engine input.
func (s Signal) Validate() error {
	return validate(s.samples, s.sampleRate)
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.samples) }

// SampleRate returns the sample rate in Hz.
func (s Signal) SampleRate() int { return s.sampleRate }

// Duration returns the length in seconds.
func (s Signal) Duration() float64 {
	if s.sampleRate <= 0 {
		return 0
	}
	return float64(len(s.samples)) / float64(s.sampleRate)
}

// Samples returns a copy of the sample buffer.
func (s Signal) Samples() []float64 {
	return append([]float64(nil), s.samples...)
}

// At returns sample i, or 0 outside the buffer.
func (s Signal) At(i int) float64 {
	if i < 0 || i >= len(s.samples) {
		return 0
	}
	return s.samples[i]
}

// Time returns the time in seconds of sample index i.
func (s Signal) Time(i int) float64 {
	return float64(i) / float64(s.sampleRate)
}

// Index returns the fractional sample position of time t.
func (s Signal) Index(t float64) float64 {
	return t * float64(s.sampleRate)
}

func validate(samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	if len(samples) == 0 {
		return ErrEmpty
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
	}
	return nil
}
