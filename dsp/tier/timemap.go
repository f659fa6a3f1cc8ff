package tier

import (
	"fmt"
	"math"
	"sort"

	"github.com/minnie121311/voice-adjuster/dsp/core"
)

// TimeMap is the monotonic warp from source time to output time implied by
// a DurationTier over a source of fixed duration. Output time is the
// integral of the ratio, so a constant ratio r maps t to r*t.
type TimeMap struct {
	knots  []float64 // source times
	ratios []float64 // ratio at each knot
	out    []float64 // output time at each knot
}

// NewTimeMap integrates d over [0, duration].
func NewTimeMap(d DurationTier, duration float64) (*TimeMap, error) {
	if !core.IsFinite(duration) || duration < 0 {
		return nil, fmt.Errorf("%w: duration %f", ErrNonFinite, duration)
	}

	knots := []float64{0}
	for _, p := range d.points {
		if p.Time > 0 && p.Time < duration {
			knots = append(knots, p.Time)
		}
	}
	if duration > 0 {
		knots = append(knots, duration)
	}

	m := &TimeMap{
		knots:  knots,
		ratios: make([]float64, len(knots)),
		out:    make([]float64, len(knots)),
	}
	for i, k := range knots {
		m.ratios[i] = d.Value(k)
	}
	for i := 1; i < len(knots); i++ {
		dt := knots[i] - knots[i-1]
		m.out[i] = m.out[i-1] + 0.5*(m.ratios[i-1]+m.ratios[i])*dt
	}
	if !core.IsFinite(m.out[len(m.out)-1]) {
		return nil, fmt.Errorf("%w: warped duration overflow", ErrNonFinite)
	}
	return m, nil
}

// SourceDuration returns the source duration the map was built for.
func (m *TimeMap) SourceDuration() float64 { return m.knots[len(m.knots)-1] }

// OutputDuration returns the warped length of the whole source.
func (m *TimeMap) OutputDuration() float64 { return m.out[len(m.out)-1] }

// Ratio returns the duration ratio at source time t.
func (m *TimeMap) Ratio(t float64) float64 {
	n := len(m.knots)
	if n == 1 || t <= m.knots[0] {
		return m.ratios[0]
	}
	if t >= m.knots[n-1] {
		return m.ratios[n-1]
	}
	k := m.segment(m.knots, t)
	frac := (t - m.knots[k]) / (m.knots[k+1] - m.knots[k])
	return m.ratios[k] + frac*(m.ratios[k+1]-m.ratios[k])
}

// Forward maps a source time to output time. Outside the source the end
// ratios continue unchanged.
func (m *TimeMap) Forward(t float64) float64 {
	n := len(m.knots)
	if t <= m.knots[0] {
		return m.ratios[0] * t
	}
	if t >= m.knots[n-1] {
		return m.out[n-1] + m.ratios[n-1]*(t-m.knots[n-1])
	}
	k := m.segment(m.knots, t)
	r0, slope := m.ratios[k], m.slope(k)
	dt := t - m.knots[k]
	return m.out[k] + r0*dt + 0.5*slope*dt*dt
}

// Inverse maps an output time back to source time.
func (m *TimeMap) Inverse(o float64) float64 {
	n := len(m.knots)
	if o <= m.out[0] {
		return o / m.ratios[0]
	}
	if o >= m.out[n-1] {
		return m.knots[n-1] + (o-m.out[n-1])/m.ratios[n-1]
	}
	k := m.segment(m.out, o)
	r0, slope := m.ratios[k], m.slope(k)
	q := o - m.out[k]
	// Root of slope/2*dt^2 + r0*dt - q, written to stay stable as slope -> 0.
	disc := math.Max(0, r0*r0+2*slope*q)
	dt := 2 * q / (r0 + math.Sqrt(disc))
	return math.Min(m.knots[k]+dt, m.knots[k+1])
}

func (m *TimeMap) slope(k int) float64 {
	return (m.ratios[k+1] - m.ratios[k]) / (m.knots[k+1] - m.knots[k])
}

// segment returns k with xs[k] <= v < xs[k+1]. xs[0] <= v < xs[len-1].
func (m *TimeMap) segment(xs []float64, v float64) int {
	i := sort.Search(len(xs), func(i int) bool { return xs[i] > v })
	return i - 1
}
