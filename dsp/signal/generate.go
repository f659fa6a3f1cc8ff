package signal

import (
	"fmt"
	"math"
	"math/rand"
)

const defaultVoicedHarmonics = 8

// Generator creates deterministic test and demo signals at one sample rate.
type Generator struct {
	sampleRate int
	seed       int64
	harmonics  int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithHarmonics sets how many harmonics VoicedTone sums.
func WithHarmonics(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.harmonics = n
		}
	}
}

// NewGenerator creates a generator for sampleRate.
func NewGenerator(sampleRate int, opts ...Option) (*Generator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	g := &Generator{
		sampleRate: sampleRate,
		seed:       1,
		harmonics:  defaultVoicedHarmonics,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// SampleRate returns the generator sample rate.
func (g *Generator) SampleRate() int { return g.sampleRate }

// Sine generates a sine wave lasting seconds.
func (g *Generator) Sine(freqHz, amplitude, seconds float64) (Signal, error) {
	n, err := g.length(seconds)
	if err != nil {
		return Signal{}, err
	}
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / float64(g.sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return adopt(out, g.sampleRate), nil
}

// VoicedTone generates a steady harmonic tone with a 1/k spectral tilt,
// a rough stand-in for a sustained vowel. Harmonics above Nyquist are
// dropped and the result peaks at amplitude.
func (g *Generator) VoicedTone(f0, amplitude, seconds float64) (Signal, error) {
	return g.Glide(f0, f0, amplitude, seconds)
}

// Glide generates a harmonic tone whose fundamental moves linearly from
// startHz to endHz.
func (g *Generator) Glide(startHz, endHz, amplitude, seconds float64) (Signal, error) {
	n, err := g.length(seconds)
	if err != nil {
		return Signal{}, err
	}
	if startHz <= 0 || endHz <= 0 {
		return Signal{}, fmt.Errorf("glide frequencies must be > 0: %f, %f", startHz, endHz)
	}

	fs := float64(g.sampleRate)
	nyquist := fs / 2
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		f := startHz + (endHz-startHz)*float64(i)/float64(n)
		v := 0.0
		for k := 1; k <= g.harmonics; k++ {
			if float64(k)*f >= nyquist {
				break
			}
			v += math.Sin(float64(k)*phase) / float64(k)
		}
		out[i] = v
		phase += 2 * math.Pi * f / fs
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}
	}

	normalized, err := Normalize(out, amplitude)
	if err != nil {
		return Signal{}, err
	}
	return adopt(normalized, g.sampleRate), nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude, seconds float64) (Signal, error) {
	n, err := g.length(seconds)
	if err != nil {
		return Signal{}, err
	}
	if amplitude < 0 {
		return Signal{}, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return adopt(out, g.sampleRate), nil
}

// Silence generates zeros lasting seconds.
func (g *Generator) Silence(seconds float64) (Signal, error) {
	n, err := g.length(seconds)
	if err != nil {
		return Signal{}, err
	}
	return adopt(make([]float64, n), g.sampleRate), nil
}

// Concat joins signals that share this generator's sample rate.
func (g *Generator) Concat(parts ...Signal) (Signal, error) {
	total := 0
	for _, p := range parts {
		if p.sampleRate != g.sampleRate {
			return Signal{}, fmt.Errorf("concat sample rate mismatch: %d != %d", p.sampleRate, g.sampleRate)
		}
		total += len(p.samples)
	}
	out := make([]float64, 0, total)
	for _, p := range parts {
		out = append(out, p.samples...)
	}
	return adopt(out, g.sampleRate), nil
}

func (g *Generator) length(seconds float64) (int, error) {
	n := int(math.Round(seconds * float64(g.sampleRate)))
	if n <= 0 || math.IsNaN(seconds) {
		return 0, fmt.Errorf("signal duration must give > 0 samples: %f s", seconds)
	}
	return n, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
