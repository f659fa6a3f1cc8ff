package psola

import (
	"math"

	"github.com/minnie121311/voice-adjuster/dsp/conv"
	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
)

// markSearchFraction bounds the correlation search around a predicted mark,
// as a fraction of the local period.
const markSearchFraction = 0.1

// Span is one voiced stretch of the source and the pitch marks inside it.
type Span struct {
	pitch.Interval
	Marks []float64 // seconds, strictly increasing
}

// LocalPeriod returns the source period around mark k in seconds: the mean
// distance to its neighbours, or fallback when the span has a single mark.
func (s Span) LocalPeriod(k int, fallback float64) float64 {
	n := len(s.Marks)
	switch {
	case n < 2:
		return fallback
	case k == 0:
		return s.Marks[1] - s.Marks[0]
	case k == n-1:
		return s.Marks[n-1] - s.Marks[n-2]
	default:
		return 0.5 * (s.Marks[k+1] - s.Marks[k-1])
	}
}

// Nearest returns the index of the mark closest to t.
func (s Span) Nearest(t float64) int {
	lo, hi := 0, len(s.Marks)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.Marks[mid] < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo > 0 && t-s.Marks[lo-1] <= s.Marks[lo]-t {
		return lo - 1
	}
	return lo
}

// Pulses are the pitch marks of a source grouped by voiced span.
type Pulses struct {
	Spans []Span
}

// Len returns the total number of marks.
func (p Pulses) Len() int {
	n := 0
	for _, s := range p.Spans {
		n += len(s.Marks)
	}
	return n
}

// Marks returns all marks in time order.
func (p Pulses) Marks() []float64 {
	out := make([]float64, 0, p.Len())
	for _, s := range p.Spans {
		out = append(out, s.Marks...)
	}
	return out
}

// FindPulses places pitch marks in every voiced interval of c. The first
// mark of a span sits on the largest magnitude sample of its first period;
// each following mark is predicted one local period later and moved to the
// best normalized cross-correlation with the previous period.
func FindPulses(sig signal.Signal, c *pitch.Contour) (Pulses, error) {
	x := sig.Samples()
	fs := float64(sig.SampleRate())

	var p Pulses
	for _, iv := range c.VoicedIntervals() {
		marks, err := markSpan(x, fs, c, iv)
		if err != nil {
			return Pulses{}, err
		}
		if len(marks) == 0 {
			continue
		}
		p.Spans = append(p.Spans, Span{Interval: iv, Marks: marks})
	}
	return p, nil
}

func markSpan(x []float64, fs float64, c *pitch.Contour, iv pitch.Interval) ([]float64, error) {
	start := int(math.Ceil(iv.Start * fs))
	end := int(math.Ceil(iv.End * fs))
	if end > len(x) {
		end = len(x)
	}
	if start >= end {
		return nil, nil
	}

	period := fs / frequencyAt(c, iv, iv.Start)
	firstEnd := start + int(math.Ceil(period))
	if firstEnd > end {
		firstEnd = end
	}
	prev := argMaxAbs(x, start, firstEnd)
	marks := []float64{float64(prev) / fs}

	var ref, cand []float64
	for {
		period = fs / frequencyAt(c, iv, float64(prev)/fs)
		predicted := prev + int(math.Round(period))
		if predicted >= end {
			break
		}

		half := int(math.Round(period / 2))
		if cap(ref) < 2*half {
			ref = make([]float64, 2*half)
			cand = make([]float64, 2*half)
		}
		ref, cand = ref[:2*half], cand[:2*half]
		readSegment(x, prev, half, ref)

		radius := int(math.Ceil(markSearchFraction * period))
		best, bestScore := predicted, math.Inf(-1)
		// Search outward from the prediction so ties keep the nearest lag.
		for step := 0; step <= 2*radius; step++ {
			delta := (step + 1) / 2
			if step%2 == 1 {
				delta = -delta
			}
			at := predicted + delta
			if at <= prev || at >= end {
				continue
			}
			readSegment(x, at, half, cand)
			score, err := conv.NormalizedDot(ref, cand)
			if err != nil {
				return nil, err
			}
			if score > bestScore {
				best, bestScore = at, score
			}
		}
		marks = append(marks, float64(best)/fs)
		prev = best
	}
	return marks, nil
}

// frequencyAt returns the contour frequency inside iv nearest to t.
func frequencyAt(c *pitch.Contour, iv pitch.Interval, t float64) float64 {
	t = math.Max(iv.Start, math.Min(t, math.Nextafter(iv.End, iv.Start)))
	if f, ok := c.FrameAt(t); ok && f.Voiced() {
		return f.Frequency
	}
	if f, ok := c.FrameAt(iv.Start + 0.5*c.TimeStep()); ok && f.Voiced() {
		return f.Frequency
	}
	if mean, ok := c.MeanPitch(); ok {
		return mean
	}
	return c.Floor()
}

func argMaxAbs(x []float64, from, to int) int {
	best, peak := from, -1.0
	for i := from; i < to; i++ {
		if v := math.Abs(x[i]); v > peak {
			best, peak = i, v
		}
	}
	return best
}

// readSegment copies x[centre-half : centre+half] into dst, zero outside x.
func readSegment(x []float64, centre, half int, dst []float64) {
	for i := range dst {
		idx := centre - half + i
		if idx < 0 || idx >= len(x) {
			dst[i] = 0
			continue
		}
		dst[i] = x[idx]
	}
}
