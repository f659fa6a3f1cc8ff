package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/minnie121311/voice-adjuster/dsp/signal"
)

// TestSampleRate is the rate used by the voice fixtures.
const TestSampleRate = 16000

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// VoicedTone returns a steady harmonic tone at f0 lasting seconds at
// TestSampleRate, peaking at 0.5.
func VoicedTone(t testing.TB, f0, seconds float64) signal.Signal {
	t.Helper()
	g := generator(t)
	s, err := g.VoicedTone(f0, 0.5, seconds)
	if err != nil {
		t.Fatalf("VoicedTone(%v, %v): %v", f0, seconds, err)
	}
	return s
}

// Glide returns a harmonic tone gliding from startHz to endHz.
func Glide(t testing.TB, startHz, endHz, seconds float64) signal.Signal {
	t.Helper()
	g := generator(t)
	s, err := g.Glide(startHz, endHz, 0.5, seconds)
	if err != nil {
		t.Fatalf("Glide(%v, %v, %v): %v", startHz, endHz, seconds, err)
	}
	return s
}

// Silence returns seconds of zeros at TestSampleRate.
func Silence(t testing.TB, seconds float64) signal.Signal {
	t.Helper()
	s, err := generator(t).Silence(seconds)
	if err != nil {
		t.Fatalf("Silence(%v): %v", seconds, err)
	}
	return s
}

// Noise returns seconds of deterministic white noise at TestSampleRate.
func Noise(t testing.TB, seed int64, amplitude, seconds float64) signal.Signal {
	t.Helper()
	n := int(math.Round(seconds * TestSampleRate))
	s, err := signal.New(DeterministicNoise(seed, amplitude, n), TestSampleRate)
	if err != nil {
		t.Fatalf("Noise: %v", err)
	}
	return s
}

// Concat joins fixtures recorded at TestSampleRate.
func Concat(t testing.TB, parts ...signal.Signal) signal.Signal {
	t.Helper()
	s, err := generator(t).Concat(parts...)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	return s
}

func generator(t testing.TB) *signal.Generator {
	t.Helper()
	g, err := signal.NewGenerator(TestSampleRate)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}
