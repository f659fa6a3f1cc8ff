package psola

import (
	"fmt"
	"testing"

	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/tier"
	"github.com/minnie121311/voice-adjuster/internal/testutil"
)

func BenchmarkResynthesize(b *testing.B) {
	sig := testutil.VoicedTone(b, 180, 2)
	c, err := pitch.Track(sig)
	if err != nil {
		b.Fatal(err)
	}

	for _, speed := range []float64{0.5, 1, 2} {
		b.Run(fmt.Sprintf("speed=%g", speed), func(b *testing.B) {
			m, err := NewManipulation(sig, c)
			if err != nil {
				b.Fatal(err)
			}
			if m.PitchTier, _, err = tier.Shift(m.PitchTier, 40, 75, 600); err != nil {
				b.Fatal(err)
			}
			if m.DurationTier, err = tier.ToDurationTier(speed, sig.Duration()); err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.SetBytes(int64(sig.Len() * 8))

			for range b.N {
				if _, err := Resynthesize(m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
