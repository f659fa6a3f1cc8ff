package window_test

import (
	"fmt"

	"github.com/minnie121311/voice-adjuster/dsp/window"
)

func ExampleHann() {
	w, err := window.Hann(5)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3], w[4])

	// Output:
	// 0.00 0.50 1.00 0.50 0.00
}
