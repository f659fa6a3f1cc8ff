package tier

import (
	"fmt"
	"sort"

	"github.com/minnie121311/voice-adjuster/dsp/core"
	"github.com/minnie121311/voice-adjuster/dsp/pitch"
)

// PitchPoint is one target frequency at a time.
type PitchPoint struct {
	Time      float64 // seconds
	Frequency float64 // Hz
}

// PitchTier is a strictly time-ordered set of pitch targets. The zero value
// is an empty tier, which marks a fully unvoiced signal.
type PitchTier struct {
	points []PitchPoint
}

// NewPitchTier validates points and returns a tier owning a copy of them.
func NewPitchTier(points ...PitchPoint) (PitchTier, error) {
	for i, p := range points {
		if !core.IsFinite(p.Time) || !core.IsFinite(p.Frequency) {
			return PitchTier{}, fmt.Errorf("%w: point %d", ErrNonFinite, i)
		}
		if p.Frequency <= 0 {
			return PitchTier{}, fmt.Errorf("%w: point %d has %f Hz", ErrOutOfBand, i, p.Frequency)
		}
		if i > 0 && !(p.Time > points[i-1].Time) {
			return PitchTier{}, fmt.Errorf("%w: point %d at %f after %f", ErrUnsorted, i, p.Time, points[i-1].Time)
		}
	}
	return PitchTier{points: append([]PitchPoint(nil), points...)}, nil
}

// FromContour keeps the voiced frames of c as pitch points.
func FromContour(c *pitch.Contour) PitchTier {
	var points []PitchPoint
	c.Each(func(f pitch.Frame) bool {
		if f.Voiced() {
			points = append(points, PitchPoint{Time: f.Time, Frequency: f.Frequency})
		}
		return true
	})
	return PitchTier{points: points}
}

// Len returns the number of points.
func (t PitchTier) Len() int { return len(t.points) }

// Empty reports whether the tier has no points.
func (t PitchTier) Empty() bool { return len(t.points) == 0 }

// Points returns a copy of the points.
func (t PitchTier) Points() []PitchPoint {
	return append([]PitchPoint(nil), t.points...)
}

// Point returns point i.
func (t PitchTier) Point(i int) PitchPoint { return t.points[i] }

// Span returns the times of the first and last point. ok is false for an
// empty tier.
func (t PitchTier) Span() (start, end float64, ok bool) {
	if len(t.points) == 0 {
		return 0, 0, false
	}
	return t.points[0].Time, t.points[len(t.points)-1].Time, true
}

// Value returns the target frequency at time tm: linear between points and
// constant beyond the first and last point. ok is false for an empty tier.
func (t PitchTier) Value(tm float64) (hz float64, ok bool) {
	n := len(t.points)
	if n == 0 {
		return 0, false
	}
	if tm <= t.points[0].Time {
		return t.points[0].Frequency, true
	}
	if tm >= t.points[n-1].Time {
		return t.points[n-1].Frequency, true
	}
	i := sort.Search(n, func(i int) bool { return t.points[i].Time > tm })
	a, b := t.points[i-1], t.points[i]
	frac := (tm - a.Time) / (b.Time - a.Time)
	return a.Frequency + frac*(b.Frequency-a.Frequency), true
}

// Mean returns the mean point frequency. ok is false for an empty tier.
func (t PitchTier) Mean() (hz float64, ok bool) {
	if len(t.points) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, p := range t.points {
		sum += p.Frequency
	}
	return sum / float64(len(t.points)), true
}

// Map returns a new tier with fn applied to every point frequency. Times
// and order are unchanged.
func (t PitchTier) Map(fn func(PitchPoint) float64) PitchTier {
	out := make([]PitchPoint, len(t.points))
	for i, p := range t.points {
		out[i] = PitchPoint{Time: p.Time, Frequency: fn(p)}
	}
	return PitchTier{points: out}
}
