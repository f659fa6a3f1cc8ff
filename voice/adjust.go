package voice

import (
	"fmt"

	"github.com/minnie121311/voice-adjuster/dsp/core"
	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/psola"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/minnie121311/voice-adjuster/dsp/tier"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of Adjust.
type Result struct {
	Output signal.Signal
	Report Report
	// Contour is the pitch track of the input.
	Contour *pitch.Contour
	// PitchTier holds the shifted and clamped targets used for resynthesis.
	PitchTier tier.PitchTier
}

// Adjust shifts the pitch of sig by pitchShiftHz and plays it speedFactor
// times as fast. Shifted targets are clamped to the tracker band; clamping
// is reported, not an error. Input without voiced frames is resynthesized
// with its pitch untouched and a warning is logged.
func Adjust(sig signal.Signal, pitchShiftHz, speedFactor float64, opts ...Option) (*Result, error) {
	const op = "adjust"
	s := applyOptions(opts)

	if err := sig.Validate(); err != nil {
		return nil, newError(KindUnsupportedSignal, op, err)
	}
	if !core.IsFinite(pitchShiftHz) {
		return nil, newError(KindInvalidParameter, op, fmt.Errorf("pitch shift must be finite: %f", pitchShiftHz))
	}
	if !core.IsFinitePositive(speedFactor) {
		return nil, newError(KindInvalidParameter, op, fmt.Errorf("%w: got %f", tier.ErrSpeedFactor, speedFactor))
	}
	if err := s.tracker.Validate(); err != nil {
		return nil, newError(KindInvalidParameter, op, err)
	}

	log := s.logger.WithFields(logrus.Fields{
		"shift_hz": pitchShiftHz,
		"speed":    speedFactor,
		"samples":  sig.Len(),
	})

	contour, err := pitch.TrackWithConfig(sig, s.tracker)
	if err != nil {
		return nil, classify(op, err)
	}
	m, err := psola.NewManipulation(sig, contour)
	if err != nil {
		return nil, classify(op, err)
	}
	log.WithFields(logrus.Fields{
		"frames": contour.Len(),
		"voiced": contour.VoicedCount(),
		"marks":  m.Pulses.Len(),
	}).Debug("analysed input")

	if m.PitchTier.Empty() {
		log.WithField("kind", KindInsufficientVoicing.String()).
			Warn("no voiced frames, pitch left unchanged")
	}

	shifted, clamped, err := tier.Shift(m.PitchTier, pitchShiftHz, s.tracker.Floor, s.tracker.Ceiling)
	if err != nil {
		return nil, classify(op, err)
	}
	if clamped > 0 {
		log.WithField("clamped", clamped).Debug("pitch targets saturated at band edge")
	}
	m.PitchTier = shifted

	if m.DurationTier, err = tier.ToDurationTier(speedFactor, sig.Duration()); err != nil {
		return nil, classify(op, err)
	}

	out, err := psola.Resynthesize(m)
	if err != nil {
		return nil, classify(op, err)
	}

	after, err := pitch.TrackWithConfig(out, s.tracker)
	if err != nil {
		return nil, classify(op, err)
	}

	report := newReport(sig, out, contour, after, pitchShiftHz, clamped)
	log.WithFields(report.Fields()).Debug("adjusted")

	return &Result{
		Output:    out,
		Report:    report,
		Contour:   contour,
		PitchTier: shifted,
	}, nil
}

// TrackPitch returns the pitch contour of sig.
func TrackPitch(sig signal.Signal, opts ...Option) (*pitch.Contour, error) {
	const op = "track"
	s := applyOptions(opts)

	if err := sig.Validate(); err != nil {
		return nil, newError(KindUnsupportedSignal, op, err)
	}
	c, err := pitch.TrackWithConfig(sig, s.tracker)
	if err != nil {
		return nil, classify(op, err)
	}
	if c.VoicedCount() == 0 {
		s.logger.WithField("frames", c.Len()).Warn("no voiced frames")
	}
	return c, nil
}
