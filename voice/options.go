package voice

import (
	"io"

	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/sirupsen/logrus"
)

// Option configures an engine call.
type Option func(*settings)

type settings struct {
	tracker pitch.Config
	logger  logrus.FieldLogger
}

func applyOptions(opts []Option) settings {
	s := settings{
		tracker: pitch.DefaultConfig(),
		logger:  discardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithFloor sets the lowest pitch tracked and the lower clamp of the shift.
func WithFloor(hz float64) Option {
	return func(s *settings) { s.tracker.Floor = hz }
}

// WithCeiling sets the highest pitch tracked and the upper clamp of the shift.
func WithCeiling(hz float64) Option {
	return func(s *settings) { s.tracker.Ceiling = hz }
}

// WithTimeStep sets the tracker frame spacing in seconds.
func WithTimeStep(seconds float64) Option {
	return func(s *settings) { s.tracker.TimeStep = seconds }
}

// WithTrackerConfig replaces the whole tracker configuration.
func WithTrackerConfig(cfg pitch.Config) Option {
	return func(s *settings) { s.tracker = cfg }
}

// WithLogger routes engine warnings and debug output to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
