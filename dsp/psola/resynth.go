package psola

import (
	"fmt"
	"math"

	"github.com/minnie121311/voice-adjuster/dsp/core"
	"github.com/minnie121311/voice-adjuster/dsp/interp"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/minnie121311/voice-adjuster/dsp/tier"
	"github.com/minnie121311/voice-adjuster/dsp/window"
)

const (
	// UnvoicedHop is the grain spacing used for unvoiced stretches, seconds.
	UnvoicedHop = 0.01

	minWeight = 1e-6
)

type resynth struct {
	m       *Manipulation
	x       []float64
	fs      float64
	warp    *tier.TimeMap
	targets tier.PitchTier
	y       []float64
	weights []float64
	shaped  []bool
}

// Resynthesize rebuilds m.Signal with the pitch of m.PitchTier and the
// timing of m.DurationTier. An empty pitch tier leaves the pitch untouched
// and an empty duration tier leaves the timing untouched. Pitch targets are
// clamped to [m.Floor, m.Ceiling]. The output has the source sample rate.
func Resynthesize(m *Manipulation) (signal.Signal, error) {
	if m == nil {
		return signal.Signal{}, fmt.Errorf("%w: nil manipulation", ErrResynthesis)
	}
	if err := m.Signal.Validate(); err != nil {
		return signal.Signal{}, err
	}

	var targets tier.PitchTier
	if !m.PitchTier.Empty() {
		clamped, err := tier.Clamp(m.PitchTier, m.Floor, m.Ceiling)
		if err != nil {
			return signal.Signal{}, fmt.Errorf("%w: %v", ErrResynthesis, err)
		}
		targets = clamped
	}

	warp, err := tier.NewTimeMap(m.DurationTier, m.Signal.Duration())
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %v", ErrResynthesis, err)
	}
	fs := float64(m.Signal.SampleRate())
	outDur := warp.OutputDuration()
	if !core.IsFinitePositive(outDur) {
		return signal.Signal{}, fmt.Errorf("%w: output duration %f", ErrResynthesis, outDur)
	}
	outLen := int(math.Round(outDur * fs))
	if outLen < 1 {
		return signal.Signal{}, fmt.Errorf("%w: output shorter than one sample", ErrResynthesis)
	}

	r := &resynth{
		m:       m,
		x:       m.Signal.Samples(),
		fs:      fs,
		warp:    warp,
		targets: targets,
		y:       make([]float64, outLen),
		weights: make([]float64, outLen),
		shaped:  make([]bool, outLen),
	}
	if err := r.run(); err != nil {
		return signal.Signal{}, err
	}
	out, err := signal.FromOwned(r.finish(), m.Signal.SampleRate())
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %v", ErrResynthesis, err)
	}
	return out, nil
}

func (r *resynth) run() error {
	var spans []Span
	if !r.targets.Empty() {
		spans = r.m.Pulses.Spans
	}

	cursor := 0.0
	for _, sp := range spans {
		r.unvoiced(cursor, sp.Start)
		if err := r.voiced(sp); err != nil {
			return err
		}
		cursor = sp.End
	}
	r.unvoiced(cursor, r.warp.SourceDuration())
	return nil
}

// unvoiced copies source [from, to) onto its warped span with a constant
// output hop. Each grain is read around the inverse-warped source time, so
// the content is stretched without a pitch change.
func (r *resynth) unvoiced(from, to float64) {
	start, end := r.warp.Forward(from), r.warp.Forward(to)
	for k := 0; ; k++ {
		o := start + float64(k)*UnvoicedHop
		if o >= end {
			return
		}
		r.place(o, r.warp.Inverse(o), UnvoicedHop)
	}
}

// voiced emits one grain per output pulse. Pulses start at the warped first
// mark and advance by one target period; each takes the source mark nearest
// to its inverse-warped time. A grain spans at least one target period, so
// sparse pulses leave no gaps and the output repeats at the target period.
// Pulses continue until the grains no longer reach into the span.
func (r *resynth) voiced(sp Span) error {
	if len(sp.Marks) == 0 {
		return nil
	}
	end := r.warp.Forward(sp.End)
	o := r.warp.Forward(sp.Marks[0])
	for {
		src := r.warp.Inverse(o)
		f, ok := r.targets.Value(src)
		if !ok || !core.IsFinitePositive(f) {
			return fmt.Errorf("%w: no pitch target at %.4fs", ErrResynthesis, src)
		}
		k := sp.Nearest(src)
		half := math.Max(sp.LocalPeriod(k, 1/f), 0.5/f)
		if o-half >= end {
			return nil
		}
		r.place(o, sp.Marks[k], half)
		r.shape(o, half)
		o += 1 / f
	}
}

// place adds a Hann grain of half-width half seconds, centred on source time
// src, at output time o. Source reads outside the signal are skipped, so
// grains at the edges are truncated.
func (r *resynth) place(o, src, half float64) {
	p := o * r.fs
	c := src * r.fs
	h := half * r.fs
	last := float64(len(r.x) - 1)

	lo, hi := r.extent(p, h)
	for n := lo; n <= hi; n++ {
		d := float64(n) - p
		w := window.HannAt(d, h)
		if w == 0 {
			continue
		}
		pos := c + d
		if pos < 0 || pos > last {
			continue
		}
		r.y[n] += w * interp.SampleZero(r.x, pos)
		r.weights[n] += w
	}
}

// shape marks the output samples a voiced grain covers. There the grain
// taper is part of the waveform and must survive normalization.
func (r *resynth) shape(o, half float64) {
	lo, hi := r.extent(o*r.fs, half*r.fs)
	for n := lo; n <= hi; n++ {
		r.shaped[n] = true
	}
}

// extent returns the output sample range [lo, hi] within h samples of p.
func (r *resynth) extent(p, h float64) (int, int) {
	lo := int(math.Ceil(p - h))
	if lo < 0 {
		lo = 0
	}
	hi := int(math.Floor(p + h))
	if hi > len(r.y)-1 {
		hi = len(r.y) - 1
	}
	return lo, hi
}

// finish normalizes the overlap-add. Under voiced grains only overlap above
// unity is divided out; sparse pulses keep their taper and the space between
// them stays silent. Elsewhere the weights are divided out in full, and
// samples no grain reached fall back to the source read at the
// inverse-warped time.
func (r *resynth) finish() []float64 {
	for n := range r.y {
		w := r.weights[n]
		switch {
		case r.shaped[n]:
			if w > 1 {
				r.y[n] /= w
			}
		case w > minWeight:
			r.y[n] /= w
		default:
			src := r.warp.Inverse(float64(n) / r.fs)
			r.y[n] = interp.SampleClamp(r.x, src*r.fs)
		}
	}
	return r.y
}
