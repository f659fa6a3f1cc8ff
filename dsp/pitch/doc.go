// Package pitch estimates the fundamental-frequency contour of a mono voice
// signal with an autocorrelation tracker.
//
// Each analysis frame is tapered, autocorrelated through an FFT, and
// normalized by the taper's own autocorrelation. Local maxima inside the
// lag range [1/Ceiling, 1/Floor] become pitch candidates next to one
// unvoiced candidate, and a Viterbi pass picks the cheapest path through
// the candidate lattice, penalizing octave jumps and voicing changes.
//
//	c, err := pitch.Track(sig, pitch.WithFloor(75), pitch.WithCeiling(600))
//	mean, ok := c.MeanPitch()
package pitch
