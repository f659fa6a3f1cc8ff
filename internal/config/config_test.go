package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/sirupsen/logrus"
)

func TestDefaultMatchesTracker(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Pitch() != pitch.DefaultConfig() {
		t.Fatalf("Pitch() = %+v, want %+v", cfg.Pitch(), pitch.DefaultConfig())
	}
	if len(cfg.Options()) == 0 {
		t.Fatal("Options() is empty")
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
tracker:
  ceiling: 400
  veryAccurate: true
adjust:
  pitchShiftHz: 35
  speedFactor: 1.5
logging:
  level: debug
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Tracker.Ceiling != 400 || !cfg.Tracker.VeryAccurate {
		t.Fatalf("tracker = %+v", cfg.Tracker)
	}
	if cfg.Tracker.Floor != pitch.DefaultFloor {
		t.Fatalf("floor = %f, want default", cfg.Tracker.Floor)
	}
	if cfg.Adjust.PitchShiftHz != 35 || cfg.Adjust.SpeedFactor != 1.5 {
		t.Fatalf("adjust = %+v", cfg.Adjust)
	}
	lvl, err := cfg.LogLevel()
	if err != nil || lvl != logrus.DebugLevel {
		t.Fatalf("level = %v (%v)", lvl, err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty document changed defaults: %+v", cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "tracker:\n  bogus: 1\n", "bogus"},
		{"inverted band", "tracker:\n  floor: 500\n  ceiling: 100\n", "tracker"},
		{"zero speed", "adjust:\n  speedFactor: 0\n", "speedFactor"},
		{"bad precision", "limits:\n  precision: 5\n", "precision"},
		{"bad level", "logging:\n  level: loud\n", "logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.yaml")
	if err := os.WriteFile(path, []byte("limits:\n  maxSeconds: 30\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits.MaxSeconds != 30 {
		t.Fatalf("maxSeconds = %f", cfg.Limits.MaxSeconds)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}
}
