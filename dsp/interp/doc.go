// Package interp provides fractional-position sample reads for the
// overlap-add resynthesizer.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (default for segment extraction)
//
// [SampleZero] and [SampleClamp] read a buffer at a fractional position with
// zero or edge-hold extension beyond the buffer ends.
package interp
