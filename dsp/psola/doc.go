// Package psola implements pitch-synchronous overlap-add resynthesis.
//
// A Manipulation bundles a source signal with its pitch marks and the two
// target tiers. Resynthesize walks the warped output timeline, places one
// Hann-windowed grain per output pulse taken from the nearest source pitch
// mark, and normalizes the overlap-add by the summed window weight.
// Unvoiced stretches are time-scaled with a constant-hop overlap-add and keep
// their spectral content unchanged.
package psola
