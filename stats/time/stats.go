package time

import "math"

// Stats holds the time-domain level statistics reported for a voice clip.
//
//nolint:revive
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMS_dB        float64
	Peak          float64 // max |x|
	PeakPos       int
	Peak_dB       float64
	ZeroCrossings int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes level statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}

	var (
		sum, c        float64
		sumSq         float64
		peak          float64
		peakPos       int
		zeroCrossings int
	)

	for i, x := range signal {
		// Kahan summation keeps the DC estimate stable on long clips.
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	rms := math.Sqrt(sumSq / float64(n))

	return Stats{
		Length:        n,
		DC:            sum / float64(n),
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Peak:          peak,
		PeakPos:       peakPos,
		Peak_dB:       ampTodB(peak),
		ZeroCrossings: zeroCrossings,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Peak returns the maximum absolute sample value.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// PeakAbout returns the maximum of |x - center| over the signal. The pitch
// tracker uses it with the local mean to measure a frame's AC amplitude.
func PeakAbout(signal []float64, center float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x - center); a > peak {
			peak = a
		}
	}

	return peak
}
