package conv_test

import (
	"fmt"

	"github.com/minnie121311/voice-adjuster/dsp/conv"
)

func ExampleAutoCorrelateDirect() {
	r, err := conv.AutoCorrelateDirect([]float64{1, 0, -1, 0, 1, 0, -1, 0}, 4)
	if err != nil {
		panic(err)
	}
	fmt.Println(r)

	// Output:
	// [4 0 -3 0 2]
}
