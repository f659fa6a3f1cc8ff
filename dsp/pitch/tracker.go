package pitch

import (
	"fmt"
	"math"
	"sort"

	"github.com/minnie121311/voice-adjuster/dsp/conv"
	"github.com/minnie121311/voice-adjuster/dsp/core"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/minnie121311/voice-adjuster/dsp/window"
	timestats "github.com/minnie121311/voice-adjuster/stats/time"
)

// gaussAlpha matches the Gaussian taper width of the accurate mode.
const gaussAlpha = 2.5

// Track estimates the pitch contour of sig. The defaults of DefaultConfig
// apply unless overridden by opts.
//
// A signal too short to hold two periods of the floor, or one without any
// amplitude, yields an all-unvoiced contour rather than an error.
func Track(sig signal.Signal, opts ...Option) (*Contour, error) {
	return TrackWithConfig(sig, ApplyOptions(opts...))
}

// TrackWithConfig is Track with an explicit configuration.
func TrackWithConfig(sig signal.Signal, cfg Config) (*Contour, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	t, err := newTracker(sig, cfg)
	if err != nil {
		return nil, err
	}
	return t.run()
}

type tracker struct {
	cfg Config
	x   []float64
	fs  float64

	contour *Contour

	winLen int
	minLag int
	maxLag int

	coeffs   []float64
	windowAC []float64
	ac       *conv.Autocorrelator

	globalPeak float64
	frame      []float64
	norm       []float64
}

func newTracker(sig signal.Signal, cfg Config) (*tracker, error) {
	x := sig.Samples()
	fs := float64(sig.SampleRate())
	duration := sig.Duration()

	nFrames := int(math.Ceil(duration/cfg.TimeStep - 1e-9))
	if nFrames < 1 {
		nFrames = 1
	}

	t := &tracker{
		cfg:     cfg,
		x:       x,
		fs:      fs,
		contour: newContour(nFrames, duration, cfg),
	}

	if float64(len(x)) < 2*fs/cfg.Floor {
		return t, nil
	}

	t.globalPeak = timestats.PeakAbout(x, timestats.DC(x))
	if t.globalPeak == 0 {
		return t, nil
	}

	t.winLen = int(math.Round(cfg.periodsPerWindow() * fs / cfg.Floor))
	if t.winLen > len(x) {
		t.winLen = len(x)
	}

	t.minLag = int(math.Floor(fs / cfg.Ceiling))
	if t.minLag < 2 {
		t.minLag = 2
	}
	t.maxLag = int(math.Ceil(fs / cfg.Floor))
	if t.maxLag > t.winLen/2 {
		t.maxLag = t.winLen / 2
	}
	if t.maxLag <= t.minLag {
		// Nothing to search; every frame stays unvoiced.
		t.globalPeak = 0
		return t, nil
	}

	if cfg.VeryAccurate {
		coeffs, err := window.Gaussian(t.winLen, gaussAlpha)
		if err != nil {
			return nil, fmt.Errorf("pitch: %w", err)
		}
		t.coeffs = coeffs
	} else {
		coeffs, err := window.Hann(t.winLen)
		if err != nil {
			return nil, fmt.Errorf("pitch: %w", err)
		}
		t.coeffs = coeffs
	}

	ac, err := conv.NewAutocorrelator(t.winLen, t.maxLag+1)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}
	t.ac = ac

	wr, err := ac.Compute(t.coeffs)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}
	t.windowAC = make([]float64, len(wr))
	for k := range wr {
		t.windowAC[k] = wr[k] / wr[0]
	}

	t.frame = make([]float64, t.winLen)
	t.norm = make([]float64, t.maxLag+2)
	return t, nil
}

func (t *tracker) run() (*Contour, error) {
	c := t.contour
	if t.globalPeak == 0 {
		return c, nil
	}

	lattice := make([][]candidate, len(c.frames))
	for i := range c.frames {
		cands, err := t.analyzeFrame(c.frames[i].Time)
		if err != nil {
			return nil, err
		}
		lattice[i] = cands
	}

	path := bestPath(lattice, t.cfg)
	for i, j := range path {
		chosen := lattice[i][j]
		c.frames[i].Frequency = chosen.frequency
		c.frames[i].Strength = chosen.strength
	}
	return c, nil
}

// analyzeFrame returns the unvoiced candidate followed by up to
// MaxCandidates voiced candidates for the frame centred at centre seconds.
func (t *tracker) analyzeFrame(centre float64) ([]candidate, error) {
	start := int(math.Round(centre*t.fs - float64(t.winLen)/2))
	if start > len(t.x)-t.winLen {
		start = len(t.x) - t.winLen
	}
	if start < 0 {
		start = 0
	}

	copy(t.frame, t.x[start:start+t.winLen])
	mean := timestats.DC(t.frame)
	localPeak := timestats.PeakAbout(t.frame, mean)

	cands := []candidate{{frequency: 0, strength: t.unvoicedStrength(localPeak)}}
	if localPeak == 0 {
		return cands, nil
	}

	for i := range t.frame {
		t.frame[i] -= mean
	}
	if err := window.ApplyCoefficientsInPlace(t.frame, t.coeffs); err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	r, err := t.ac.Compute(t.frame)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}
	if r[0] <= 0 {
		return cands, nil
	}
	for k := t.minLag - 1; k <= t.maxLag+1; k++ {
		t.norm[k] = r[k] / r[0] / t.windowAC[k]
	}

	var voiced []candidate
	for k := t.minLag; k <= t.maxLag; k++ {
		if !(t.norm[k] > t.norm[k-1] && t.norm[k] >= t.norm[k+1]) {
			continue
		}
		offset, value := conv.ParabolicPeak(t.norm, k)
		if value > 1 {
			value = 1 / value
		}
		if value <= 0.5*t.cfg.VoicingThreshold {
			continue
		}
		lag := (float64(k) + offset) / t.fs
		f := core.Clamp(1/lag, t.cfg.Floor, t.cfg.Ceiling)
		voiced = append(voiced, candidate{
			frequency: f,
			strength:  value - t.cfg.OctaveCost*math.Log2(t.cfg.Floor/f),
		})
	}

	sort.SliceStable(voiced, func(a, b int) bool { return voiced[a].strength > voiced[b].strength })
	if len(voiced) > t.cfg.MaxCandidates {
		voiced = voiced[:t.cfg.MaxCandidates]
	}
	return append(cands, voiced...), nil
}

func (t *tracker) unvoicedStrength(localPeak float64) float64 {
	vt := t.cfg.VoicingThreshold
	st := t.cfg.SilenceThreshold
	if st == 0 {
		return vt
	}
	return vt + math.Max(0, 2-(localPeak/t.globalPeak)/(st/(1+vt)))
}
