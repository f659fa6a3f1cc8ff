package voice

import (
	"errors"
	"math"
	"testing"

	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/minnie121311/voice-adjuster/internal/testutil"
	stats "github.com/minnie121311/voice-adjuster/stats/time"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func mustAdjust(t *testing.T, sig signal.Signal, shift, speed float64, opts ...Option) *Result {
	t.Helper()
	res, err := Adjust(sig, shift, speed, opts...)
	if err != nil {
		t.Fatalf("Adjust(%f, %f): %v", shift, speed, err)
	}
	return res
}

func TestAdjustIdentity(t *testing.T) {
	sig := testutil.VoicedTone(t, 200, 1)
	res := mustAdjust(t, sig, 0, 1)

	if d := res.Output.Len() - sig.Len(); d < -1 || d > 1 {
		t.Fatalf("output len %d, input len %d", res.Output.Len(), sig.Len())
	}
	r := res.Report
	if !r.Voiced {
		t.Fatal("report not voiced")
	}
	testutil.RequireNear(t, "result pitch", r.ResultMeanPitch, r.OriginalMeanPitch, 2)
	if r.ClampedPoints != 0 {
		t.Fatalf("clamped = %d, want 0", r.ClampedPoints)
	}
}

func TestAdjustRaises200To250(t *testing.T) {
	sig := testutil.VoicedTone(t, 200, 1)
	res := mustAdjust(t, sig, 50, 1)

	r := res.Report
	testutil.RequireNear(t, "original pitch", r.OriginalMeanPitch, 200, 2)
	testutil.RequireNear(t, "result pitch", r.ResultMeanPitch, 250, 5)
	testutil.RequireNear(t, "duration", res.Output.Duration(), 1, 0.01)
	if r.Error > 5 {
		t.Fatalf("shift error = %f Hz", r.Error)
	}
	testutil.RequireFinite(t, res.Output.Samples())
}

func TestAdjustLowersPitch(t *testing.T) {
	tests := []struct {
		f0, target float64
	}{
		{f0: 200, target: 100},
		{f0: 400, target: 200},
		{f0: 400, target: 160},
	}
	for _, tt := range tests {
		sig := testutil.VoicedTone(t, tt.f0, 1)
		res := mustAdjust(t, sig, tt.target-tt.f0, 1)

		r := res.Report
		if !r.Voiced {
			t.Fatalf("%v -> %v: result not voiced", tt.f0, tt.target)
		}
		if r.ClampedPoints != 0 {
			t.Fatalf("%v -> %v: clamped = %d, want 0", tt.f0, tt.target, r.ClampedPoints)
		}
		if math.Abs(r.ResultMeanPitch-tt.target) > 5 {
			t.Fatalf("%v -> %v: result pitch %f", tt.f0, tt.target, r.ResultMeanPitch)
		}
	}
}

func TestAdjustClampsToCeiling(t *testing.T) {
	sig := testutil.VoicedTone(t, 200, 1)
	const ceiling = 600.0
	res := mustAdjust(t, sig, 1000, 1, WithCeiling(ceiling))

	pts := res.PitchTier.Points()
	if len(pts) == 0 {
		t.Fatal("no pitch targets")
	}
	for _, p := range pts {
		if p.Frequency > ceiling {
			t.Fatalf("target %f above ceiling", p.Frequency)
		}
	}
	if res.Report.ClampedPoints != len(pts) {
		t.Fatalf("clamped = %d, want %d", res.Report.ClampedPoints, len(pts))
	}
	if res.Report.Voiced && res.Report.ResultMeanPitch > ceiling {
		t.Fatalf("result pitch %f above ceiling", res.Report.ResultMeanPitch)
	}
}

func TestAdjustClampIsMonotone(t *testing.T) {
	sig := testutil.VoicedTone(t, 220, 0.5)
	shifts := []float64{-300, -100, 0, 100, 300, 600}

	var prev []float64
	for _, shift := range shifts {
		res := mustAdjust(t, sig, shift, 1)
		pts := res.PitchTier.Points()
		cur := make([]float64, len(pts))
		for i, p := range pts {
			cur[i] = p.Frequency
		}
		if prev != nil {
			if len(cur) != len(prev) {
				t.Fatalf("point count changed: %d vs %d", len(cur), len(prev))
			}
			for i := range cur {
				if cur[i] < prev[i] {
					t.Fatalf("shift %f: point %d fell from %f to %f", shift, i, prev[i], cur[i])
				}
			}
		}
		prev = cur
	}
}

func TestAdjustSpeedHalvesDuration(t *testing.T) {
	sig := testutil.VoicedTone(t, 180, 1)
	res := mustAdjust(t, sig, 0, 2)

	want := float64(sig.Len()) / 2
	if math.Abs(float64(res.Output.Len())-want) > 2 {
		t.Fatalf("len = %d, want %f", res.Output.Len(), want)
	}
	testutil.RequireNear(t, "report duration", res.Report.OutputDuration, 0.5, 2.0/float64(sig.SampleRate()))
}

func TestAdjustSlowDown(t *testing.T) {
	sig := testutil.VoicedTone(t, 160, 0.5)
	res := mustAdjust(t, sig, 0, 0.5)
	if d := res.Output.Len() - 2*sig.Len(); d < -2 || d > 2 {
		t.Fatalf("len = %d, want %d", res.Output.Len(), 2*sig.Len())
	}
	if res.Report.Voiced {
		testutil.RequireNear(t, "pitch", res.Report.ResultMeanPitch, res.Report.OriginalMeanPitch, 5)
	}
}

func TestAdjustRoundTrip(t *testing.T) {
	sig := testutil.VoicedTone(t, 200, 1)
	up := mustAdjust(t, sig, 40, 1)
	back := mustAdjust(t, up.Output, -40, 1)

	if !back.Report.Voiced {
		t.Fatal("round trip output not voiced")
	}
	testutil.RequireNear(t, "round trip pitch", back.Report.ResultMeanPitch, up.Report.OriginalMeanPitch, 6)
}

func TestAdjustSilence(t *testing.T) {
	sig := testutil.Silence(t, 1)
	logger, hook := logtest.NewNullLogger()

	res, err := Adjust(sig, 50, 1, WithLogger(logger))
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if !res.PitchTier.Empty() {
		t.Fatalf("pitch tier has %d points", res.PitchTier.Len())
	}
	if res.Output.Len() != sig.Len() {
		t.Fatalf("len = %d, want %d", res.Output.Len(), sig.Len())
	}
	if peak := stats.Peak(res.Output.Samples()); peak != 0 {
		t.Fatalf("peak = %g, want silence", peak)
	}
	if res.Report.Voiced || res.Report.ResultMeanPitch != 0 {
		t.Fatalf("report = %+v, want unvoiced", res.Report)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %v", entry)
	}
}

func TestAdjustSilenceSpeedUp(t *testing.T) {
	sig := testutil.Silence(t, 1)
	res := mustAdjust(t, sig, 0, 2)
	if d := res.Output.Len() - sig.Len()/2; d < -1 || d > 1 {
		t.Fatalf("len = %d, want %d", res.Output.Len(), sig.Len()/2)
	}
	if peak := stats.Peak(res.Output.Samples()); peak != 0 {
		t.Fatalf("peak = %g, want silence", peak)
	}
}

func TestAdjustRejectsBadInput(t *testing.T) {
	tone := testutil.VoicedTone(t, 200, 0.2)
	tests := []struct {
		name  string
		sig   signal.Signal
		shift float64
		speed float64
		opts  []Option
		want  error
	}{
		{"zero speed", tone, 0, 0, nil, ErrInvalidParameter},
		{"negative speed", tone, 0, -1, nil, ErrInvalidParameter},
		{"nan speed", tone, 0, math.NaN(), nil, ErrInvalidParameter},
		{"inf shift", tone, math.Inf(1), 1, nil, ErrInvalidParameter},
		{"inverted band", tone, 0, 1, []Option{WithFloor(500), WithCeiling(100)}, ErrInvalidParameter},
		{"zero signal", signal.Signal{}, 0, 1, nil, ErrUnsupportedSignal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Adjust(tc.sig, tc.shift, tc.speed, tc.opts...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if res != nil {
				t.Fatal("result returned with error")
			}
		})
	}
}

func TestTrackPitch(t *testing.T) {
	c, err := TrackPitch(testutil.VoicedTone(t, 150, 0.5), WithTimeStep(0.005))
	if err != nil {
		t.Fatalf("TrackPitch: %v", err)
	}
	if c.TimeStep() != 0.005 {
		t.Fatalf("time step = %f", c.TimeStep())
	}
	mean, ok := c.MeanPitch()
	if !ok {
		t.Fatal("tone not voiced")
	}
	testutil.RequireNear(t, "mean", mean, 150, 1)

	if _, err := TrackPitch(signal.Signal{}); !errors.Is(err, ErrUnsupportedSignal) {
		t.Fatalf("err = %v, want ErrUnsupportedSignal", err)
	}
}
