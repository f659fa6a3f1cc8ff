// Package config loads engine and CLI settings from YAML.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/minnie121311/voice-adjuster/dsp/core"
	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/voice"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds everything a run of the CLIs can be told through a file.
type Config struct {
	Tracker TrackerConfig `yaml:"tracker"`
	Adjust  AdjustConfig  `yaml:"adjust"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

// TrackerConfig mirrors pitch.Config.
type TrackerConfig struct {
	TimeStep           float64 `yaml:"timeStep"`
	Floor              float64 `yaml:"floor"`
	Ceiling            float64 `yaml:"ceiling"`
	MaxCandidates      int     `yaml:"maxCandidates"`
	VeryAccurate       bool    `yaml:"veryAccurate"`
	SilenceThreshold   float64 `yaml:"silenceThreshold"`
	VoicingThreshold   float64 `yaml:"voicingThreshold"`
	OctaveCost         float64 `yaml:"octaveCost"`
	OctaveJumpCost     float64 `yaml:"octaveJumpCost"`
	VoicedUnvoicedCost float64 `yaml:"voicedUnvoicedCost"`
}

// AdjustConfig holds the requested change.
type AdjustConfig struct {
	PitchShiftHz float64 `yaml:"pitchShiftHz"`
	SpeedFactor  float64 `yaml:"speedFactor"`
}

// LimitsConfig bounds the input accepted by the CLIs.
type LimitsConfig struct {
	// MaxSeconds rejects longer inputs. Zero disables the check.
	MaxSeconds float64 `yaml:"maxSeconds"`
	// Precision is the output WAV sample size in bytes.
	Precision int `yaml:"precision"`
}

// LoggingConfig selects the logrus level by name.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	t := pitch.DefaultConfig()
	return Config{
		Tracker: TrackerConfig{
			TimeStep:           t.TimeStep,
			Floor:              t.Floor,
			Ceiling:            t.Ceiling,
			MaxCandidates:      t.MaxCandidates,
			VeryAccurate:       t.VeryAccurate,
			SilenceThreshold:   t.SilenceThreshold,
			VoicingThreshold:   t.VoicingThreshold,
			OctaveCost:         t.OctaveCost,
			OctaveJumpCost:     t.OctaveJumpCost,
			VoicedUnvoicedCost: t.VoicedUnvoicedCost,
		},
		Adjust: AdjustConfig{
			PitchShiftHz: 0,
			SpeedFactor:  1,
		},
		Limits: LimitsConfig{
			MaxSeconds: 600,
			Precision:  2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and validates a YAML file. Keys absent from the file keep
// their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field once.
func (c Config) Validate() error {
	if err := c.Pitch().Validate(); err != nil {
		return errors.Wrap(err, "tracker")
	}
	if !core.IsFinite(c.Adjust.PitchShiftHz) {
		return errors.Errorf("adjust: pitchShiftHz must be finite: %f", c.Adjust.PitchShiftHz)
	}
	if !core.IsFinitePositive(c.Adjust.SpeedFactor) {
		return errors.Errorf("adjust: speedFactor must be > 0: %f", c.Adjust.SpeedFactor)
	}
	if c.Limits.MaxSeconds < 0 {
		return errors.Errorf("limits: maxSeconds must be >= 0: %f", c.Limits.MaxSeconds)
	}
	switch c.Limits.Precision {
	case 1, 2, 3:
	default:
		return errors.Errorf("limits: precision must be 1, 2 or 3 bytes: %d", c.Limits.Precision)
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.Wrap(err, "logging")
	}
	return nil
}

// Pitch converts the tracker section to a pitch.Config.
func (c Config) Pitch() pitch.Config {
	t := c.Tracker
	return pitch.Config{
		TimeStep:           t.TimeStep,
		Floor:              t.Floor,
		Ceiling:            t.Ceiling,
		MaxCandidates:      t.MaxCandidates,
		VeryAccurate:       t.VeryAccurate,
		SilenceThreshold:   t.SilenceThreshold,
		VoicingThreshold:   t.VoicingThreshold,
		OctaveCost:         t.OctaveCost,
		OctaveJumpCost:     t.OctaveJumpCost,
		VoicedUnvoicedCost: t.VoicedUnvoicedCost,
	}
}

// Options returns the engine options for this configuration.
func (c Config) Options() []voice.Option {
	return []voice.Option{voice.WithTrackerConfig(c.Pitch())}
}

// LogLevel parses Logging.Level.
func (c Config) LogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(c.Logging.Level)
}
