package voice

import (
	"testing"

	"github.com/minnie121311/voice-adjuster/internal/testutil"
)

func TestRenderContour(t *testing.T) {
	sig := testutil.Concat(t,
		testutil.VoicedTone(t, 200, 0.3),
		testutil.Silence(t, 0.2),
	)
	c, err := TrackPitch(sig)
	if err != nil {
		t.Fatalf("TrackPitch: %v", err)
	}
	r := RenderContour(sig, c)

	if len(r.Times) != sig.Len() || len(r.Amplitudes) != sig.Len() {
		t.Fatalf("waveform series have %d/%d points, want %d", len(r.Times), len(r.Amplitudes), sig.Len())
	}
	testutil.RequireNear(t, "dt", r.Times[1]-r.Times[0], 1/float64(sig.SampleRate()), 1e-15)
	if len(r.PitchTimes) != c.VoicedCount() || len(r.PitchHz) != c.VoicedCount() {
		t.Fatalf("pitch series have %d points, want %d", len(r.PitchTimes), c.VoicedCount())
	}
	for i, hz := range r.PitchHz {
		if hz <= 0 {
			t.Fatalf("pitch %d = %f", i, hz)
		}
	}

	empty := RenderContour(sig, nil)
	if len(empty.PitchHz) != 0 {
		t.Fatal("nil contour should give no pitch points")
	}
}
