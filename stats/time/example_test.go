package time_test

import (
	"fmt"

	timestats "github.com/minnie121311/voice-adjuster/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{0.5, -0.5, 0.5, -0.5})
	fmt.Printf("rms=%.1f peak=%.1f zc=%d\n", s.RMS, s.Peak, s.ZeroCrossings)

	// Output:
	// rms=0.5 peak=0.5 zc=3
}
