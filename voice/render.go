package voice

import (
	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
)

// Rendering holds plain arrays for plotting a waveform with its pitch
// track. Pitch arrays contain voiced frames only.
type Rendering struct {
	Times      []float64
	Amplitudes []float64
	PitchTimes []float64
	PitchHz    []float64
}

// RenderContour lays out sig and c as plottable series. A nil contour
// yields empty pitch series.
func RenderContour(sig signal.Signal, c *pitch.Contour) Rendering {
	r := Rendering{
		Times:      make([]float64, sig.Len()),
		Amplitudes: sig.Samples(),
	}
	for i := range r.Times {
		r.Times[i] = sig.Time(i)
	}
	if c == nil {
		return r
	}
	r.PitchTimes = make([]float64, 0, c.VoicedCount())
	r.PitchHz = make([]float64, 0, c.VoicedCount())
	c.Each(func(f pitch.Frame) bool {
		if f.Voiced() {
			r.PitchTimes = append(r.PitchTimes, f.Time)
			r.PitchHz = append(r.PitchHz, f.Frequency)
		}
		return true
	})
	return r
}
