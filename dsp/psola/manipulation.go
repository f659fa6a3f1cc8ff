package psola

import (
	"errors"
	"fmt"

	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/minnie121311/voice-adjuster/dsp/tier"
)

// ErrResynthesis reports an internal failure while rebuilding a signal.
var ErrResynthesis = errors.New("psola: resynthesis failed")

// Manipulation is a source signal prepared for resynthesis: its pitch marks,
// the pitch targets and the duration ratios. The tiers start out as the
// unchanged analysis and are replaced by the caller before Resynthesize.
// Floor and Ceiling bound the pitch targets in Hz.
type Manipulation struct {
	Signal       signal.Signal
	Pulses       Pulses
	PitchTier    tier.PitchTier
	DurationTier tier.DurationTier
	Floor        float64
	Ceiling      float64
}

// NewManipulation analyses sig with its contour c. The pitch tier holds the
// voiced frames of c, the band is the one c was tracked with and the
// duration tier is empty.
func NewManipulation(sig signal.Signal, c *pitch.Contour) (*Manipulation, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: nil contour", ErrResynthesis)
	}
	pulses, err := FindPulses(sig, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResynthesis, err)
	}
	return &Manipulation{
		Signal:    sig,
		Pulses:    pulses,
		PitchTier: tier.FromContour(c),
		Floor:     c.Floor(),
		Ceiling:   c.Ceiling(),
	}, nil
}
