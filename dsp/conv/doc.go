// Package conv provides the correlation routines used for periodicity
// analysis.
//
// For repeated autocorrelation of equally sized frames, create a reusable
// [Autocorrelator]; it owns one FFT plan and its scratch buffers:
//
//	ac, err := conv.NewAutocorrelator(frameLen, maxLag)
//	r, err := ac.Compute(frame) // r[k] is the lag-k autocorrelation
//
// [AutoCorrelateDirect] computes the same lags in the time domain and is the
// reference for short frames. [NormalizedDot] scores the similarity of two
// equally long segments in [-1, 1].
package conv
