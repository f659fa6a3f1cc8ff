package voice

import (
	"math"

	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	stats "github.com/minnie121311/voice-adjuster/stats/time"
	"github.com/sirupsen/logrus"
)

// Report compares the requested change with what the output actually
// carries. Pitch fields are zero and Voiced is false when either the input
// or the output has no voiced frames.
type Report struct {
	OriginalMeanPitch float64
	RequestedShift    float64
	ResultMeanPitch   float64
	ActualShift       float64
	// Error is |ActualShift - RequestedShift| in Hz.
	Error float64
	// ClampedPoints counts pitch targets saturated at floor or ceiling.
	ClampedPoints int
	Voiced        bool

	InputDuration  float64 // seconds
	OutputDuration float64 // seconds
	InputRMSdB     float64
	OutputRMSdB    float64
}

func newReport(in, out signal.Signal, before, after *pitch.Contour, shift float64, clamped int) Report {
	r := Report{
		RequestedShift: shift,
		ClampedPoints:  clamped,
		InputDuration:  in.Duration(),
		OutputDuration: out.Duration(),
		InputRMSdB:     stats.Calculate(in.Samples()).RMS_dB,
		OutputRMSdB:    stats.Calculate(out.Samples()).RMS_dB,
	}

	orig, okBefore := before.MeanPitch()
	res, okAfter := after.MeanPitch()
	if !okBefore || !okAfter {
		return r
	}
	r.Voiced = true
	r.OriginalMeanPitch = orig
	r.ResultMeanPitch = res
	r.ActualShift = res - orig
	r.Error = math.Abs(r.ActualShift - shift)
	return r
}

// Fields returns the report as structured log fields.
func (r Report) Fields() logrus.Fields {
	return logrus.Fields{
		"original_hz":     r.OriginalMeanPitch,
		"result_hz":       r.ResultMeanPitch,
		"requested_shift": r.RequestedShift,
		"actual_shift":    r.ActualShift,
		"error_hz":        r.Error,
		"clamped":         r.ClampedPoints,
		"voiced":          r.Voiced,
		"in_seconds":      r.InputDuration,
		"out_seconds":     r.OutputDuration,
	}
}
