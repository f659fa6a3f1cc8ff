package tier

import (
	"fmt"

	"github.com/minnie121311/voice-adjuster/dsp/core"
)

// Shift adds delta Hz to every point and clamps the result to
// [floor, ceiling]. It also reports how many points had to be clamped.
// Shifting preserves point times, so a monotone source stays monotone.
func Shift(t PitchTier, delta, floor, ceiling float64) (PitchTier, int, error) {
	if !core.IsFinite(delta) {
		return PitchTier{}, 0, fmt.Errorf("%w: shift %f", ErrNonFinite, delta)
	}
	if err := validateBand(floor, ceiling); err != nil {
		return PitchTier{}, 0, err
	}
	clamped := 0
	out := t.Map(func(p PitchPoint) float64 {
		v := p.Frequency + delta
		if v < floor || v > ceiling {
			clamped++
		}
		return core.Clamp(v, floor, ceiling)
	})
	return out, clamped, nil
}

// Clamp limits every point of t to [floor, ceiling].
func Clamp(t PitchTier, floor, ceiling float64) (PitchTier, error) {
	if err := validateBand(floor, ceiling); err != nil {
		return PitchTier{}, err
	}
	return t.Map(func(p PitchPoint) float64 {
		return core.Clamp(p.Frequency, floor, ceiling)
	}), nil
}

// ToDurationTier builds the tier for a uniform speed change of a source of
// the given duration. Speed 1 yields an empty tier; any other speed yields a
// single point at mid-source whose ratio is 1/speed, which holds across the
// whole source.
func ToDurationTier(speed, duration float64) (DurationTier, error) {
	if !core.IsFinitePositive(speed) {
		return DurationTier{}, fmt.Errorf("%w: got %f", ErrSpeedFactor, speed)
	}
	if !core.IsFinite(duration) || duration < 0 {
		return DurationTier{}, fmt.Errorf("%w: duration %f", ErrNonFinite, duration)
	}
	if speed == 1 {
		return DurationTier{}, nil
	}
	return NewDurationTier(DurationPoint{Time: duration / 2, Ratio: 1 / speed})
}

func validateBand(floor, ceiling float64) error {
	if !core.IsFinitePositive(floor) || !core.IsFinite(ceiling) || !(ceiling > floor) {
		return fmt.Errorf("%w: floor %f, ceiling %f", ErrBand, floor, ceiling)
	}
	return nil
}
