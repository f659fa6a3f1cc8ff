package pitch

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("pitch: invalid tracker configuration")

const (
	DefaultTimeStep           = 0.01
	DefaultFloor              = 75.0
	DefaultCeiling            = 600.0
	DefaultMaxCandidates      = 3
	DefaultSilenceThreshold   = 0.03
	DefaultVoicingThreshold   = 0.45
	DefaultOctaveCost         = 0.01
	DefaultOctaveJumpCost     = 0.35
	DefaultVoicedUnvoicedCost = 0.14
)

// Config enumerates every tracker setting.
type Config struct {
	TimeStep           float64 // seconds between frame centres
	Floor              float64 // Hz
	Ceiling            float64 // Hz
	MaxCandidates      int     // voiced candidates kept per frame
	VeryAccurate       bool    // 6-period Gaussian window instead of 3-period Hann
	SilenceThreshold   float64
	VoicingThreshold   float64
	OctaveCost         float64
	OctaveJumpCost     float64
	VoicedUnvoicedCost float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard voice-analysis settings.
func DefaultConfig() Config {
	return Config{
		TimeStep:           DefaultTimeStep,
		Floor:              DefaultFloor,
		Ceiling:            DefaultCeiling,
		MaxCandidates:      DefaultMaxCandidates,
		SilenceThreshold:   DefaultSilenceThreshold,
		VoicingThreshold:   DefaultVoicingThreshold,
		OctaveCost:         DefaultOctaveCost,
		OctaveJumpCost:     DefaultOctaveJumpCost,
		VoicedUnvoicedCost: DefaultVoicedUnvoicedCost,
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(cfg *Config) { *cfg = c }
}

// WithTimeStep sets the frame spacing in seconds.
func WithTimeStep(step float64) Option {
	return func(cfg *Config) { cfg.TimeStep = step }
}

// WithFloor sets the lowest accepted pitch in Hz.
func WithFloor(hz float64) Option {
	return func(cfg *Config) { cfg.Floor = hz }
}

// WithCeiling sets the highest accepted pitch in Hz.
func WithCeiling(hz float64) Option {
	return func(cfg *Config) { cfg.Ceiling = hz }
}

// WithMaxCandidates sets how many voiced candidates each frame keeps.
func WithMaxCandidates(n int) Option {
	return func(cfg *Config) { cfg.MaxCandidates = n }
}

// WithVeryAccurate selects the longer Gaussian analysis window.
func WithVeryAccurate(on bool) Option {
	return func(cfg *Config) { cfg.VeryAccurate = on }
}

// WithSilenceThreshold sets the relative amplitude below which frames lean unvoiced.
func WithSilenceThreshold(v float64) Option {
	return func(cfg *Config) { cfg.SilenceThreshold = v }
}

// WithVoicingThreshold sets the correlation strength needed to call a frame voiced.
func WithVoicingThreshold(v float64) Option {
	return func(cfg *Config) { cfg.VoicingThreshold = v }
}

// WithOctaveCost sets the per-octave preference for higher candidates.
func WithOctaveCost(v float64) Option {
	return func(cfg *Config) { cfg.OctaveCost = v }
}

// WithOctaveJumpCost sets the path penalty per octave of frame-to-frame change.
func WithOctaveJumpCost(v float64) Option {
	return func(cfg *Config) { cfg.OctaveJumpCost = v }
}

// WithVoicedUnvoicedCost sets the path penalty for a voicing transition.
func WithVoicedUnvoicedCost(v float64) Option {
	return func(cfg *Config) { cfg.VoicedUnvoicedCost = v }
}

// Validate checks every field once so the tracker can trust it.
func (c Config) Validate() error {
	switch {
	case !(c.TimeStep > 0) || math.IsInf(c.TimeStep, 0):
		return fmt.Errorf("%w: time step must be > 0: %f", ErrInvalidConfig, c.TimeStep)
	case !(c.Floor > 0) || math.IsInf(c.Floor, 0):
		return fmt.Errorf("%w: floor must be > 0: %f", ErrInvalidConfig, c.Floor)
	case !(c.Ceiling > c.Floor) || math.IsInf(c.Ceiling, 0):
		return fmt.Errorf("%w: ceiling must exceed floor: %f <= %f", ErrInvalidConfig, c.Ceiling, c.Floor)
	case c.MaxCandidates < 1:
		return fmt.Errorf("%w: max candidates must be >= 1: %d", ErrInvalidConfig, c.MaxCandidates)
	case c.SilenceThreshold < 0 || c.SilenceThreshold > 1:
		return fmt.Errorf("%w: silence threshold must be in [0,1]: %f", ErrInvalidConfig, c.SilenceThreshold)
	case c.VoicingThreshold < 0 || c.VoicingThreshold > 1:
		return fmt.Errorf("%w: voicing threshold must be in [0,1]: %f", ErrInvalidConfig, c.VoicingThreshold)
	case c.OctaveCost < 0 || c.OctaveJumpCost < 0 || c.VoicedUnvoicedCost < 0:
		return fmt.Errorf("%w: costs must be >= 0", ErrInvalidConfig)
	}
	return nil
}

func (c Config) periodsPerWindow() float64 {
	if c.VeryAccurate {
		return 6
	}
	return 3
}
