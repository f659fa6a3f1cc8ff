package pitch

import (
	"fmt"
	"testing"

	"github.com/minnie121311/voice-adjuster/internal/testutil"
)

func BenchmarkTrack(b *testing.B) {
	for _, seconds := range []float64{0.5, 2, 8} {
		sig := testutil.VoicedTone(b, 180, seconds)
		for _, accurate := range []bool{false, true} {
			name := fmt.Sprintf("%gs/accurate=%v", seconds, accurate)
			b.Run(name, func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(sig.Len() * 8))

				for range b.N {
					if _, err := Track(sig, WithVeryAccurate(accurate)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
