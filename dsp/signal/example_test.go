package signal_test

import (
	"fmt"

	"github.com/minnie121311/voice-adjuster/dsp/signal"
)

func ExampleGenerator_VoicedTone() {
	g, err := signal.NewGenerator(16000)
	if err != nil {
		panic(err)
	}
	tone, err := g.VoicedTone(200, 0.5, 1.0)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d samples, %.2f s\n", tone.Len(), tone.Duration())

	// Output:
	// 16000 samples, 1.00 s
}

func ExampleNormalize() {
	x, err := signal.Normalize([]float64{-0.5, 0.25, 1}, 0.8)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f\n", x[0], x[1], x[2])

	// Output:
	// -0.40 0.20 0.80
}
