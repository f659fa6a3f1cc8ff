package tier

import (
	"fmt"
	"sort"

	"github.com/minnie121311/voice-adjuster/dsp/core"
)

// DurationPoint sets the local duration ratio at a time in the source.
// Ratio is output duration per unit of source duration: 0.5 plays that
// stretch twice as fast, 2 plays it at half speed.
type DurationPoint struct {
	Time  float64 // seconds, source timeline
	Ratio float64
}

// DurationTier is a strictly time-ordered set of duration ratios. The zero
// value is an empty tier, which means ratio 1 everywhere.
type DurationTier struct {
	points []DurationPoint
}

// NewDurationTier validates points and returns a tier owning a copy of
// them. A ratio <= 0 is a caller bug and fails with ErrNonPositiveRatio.
func NewDurationTier(points ...DurationPoint) (DurationTier, error) {
	for i, p := range points {
		if !core.IsFinite(p.Time) || !core.IsFinite(p.Ratio) {
			return DurationTier{}, fmt.Errorf("%w: point %d", ErrNonFinite, i)
		}
		if p.Ratio <= 0 {
			return DurationTier{}, fmt.Errorf("%w: point %d has ratio %f", ErrNonPositiveRatio, i, p.Ratio)
		}
		if i > 0 && !(p.Time > points[i-1].Time) {
			return DurationTier{}, fmt.Errorf("%w: point %d at %f after %f", ErrUnsorted, i, p.Time, points[i-1].Time)
		}
	}
	return DurationTier{points: append([]DurationPoint(nil), points...)}, nil
}

// Len returns the number of points.
func (t DurationTier) Len() int { return len(t.points) }

// Empty reports whether the tier has no points.
func (t DurationTier) Empty() bool { return len(t.points) == 0 }

// Points returns a copy of the points.
func (t DurationTier) Points() []DurationPoint {
	return append([]DurationPoint(nil), t.points...)
}

// Value returns the ratio at source time tm: 1 for an empty tier, linear
// between points and constant beyond the outer points.
func (t DurationTier) Value(tm float64) float64 {
	n := len(t.points)
	if n == 0 {
		return 1
	}
	if tm <= t.points[0].Time {
		return t.points[0].Ratio
	}
	if tm >= t.points[n-1].Time {
		return t.points[n-1].Ratio
	}
	i := sort.Search(n, func(i int) bool { return t.points[i].Time > tm })
	a, b := t.points[i-1], t.points[i]
	frac := (tm - a.Time) / (b.Time - a.Time)
	return a.Ratio + frac*(b.Ratio-a.Ratio)
}
