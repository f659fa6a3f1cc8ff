package pitch

import "math"

// Frame is one analysis frame of a contour. Frequency is 0 for unvoiced frames.
type Frame struct {
	Time      float64 // frame centre, seconds
	Frequency float64 // Hz, 0 when unvoiced
	Strength  float64 // strength of the chosen candidate
}

// Voiced reports whether the frame carries a pitch.
func (f Frame) Voiced() bool { return f.Frequency > 0 }

// Interval is a half-open time span [Start, End) in seconds.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns End - Start.
func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Contains reports whether t lies in [Start, End).
func (iv Interval) Contains(t float64) bool { return t >= iv.Start && t < iv.End }

// Contour is the per-frame pitch track of one signal. Frame i is centred at
// (i+0.5)*TimeStep and stands for [i*TimeStep, (i+1)*TimeStep), so the
// frames tile [0, Duration).
type Contour struct {
	frames   []Frame
	timeStep float64
	duration float64
	floor    float64
	ceiling  float64
}

func newContour(nFrames int, duration float64, cfg Config) *Contour {
	c := &Contour{
		frames:   make([]Frame, nFrames),
		timeStep: cfg.TimeStep,
		duration: duration,
		floor:    cfg.Floor,
		ceiling:  cfg.Ceiling,
	}
	for i := range c.frames {
		c.frames[i].Time = (float64(i) + 0.5) * cfg.TimeStep
	}
	return c
}

// Len returns the number of frames.
func (c *Contour) Len() int { return len(c.frames) }

// TimeStep returns the frame spacing in seconds.
func (c *Contour) TimeStep() float64 { return c.timeStep }

// Duration returns the analysed signal duration in seconds.
func (c *Contour) Duration() float64 { return c.duration }

// Floor returns the pitch floor the contour was tracked with.
func (c *Contour) Floor() float64 { return c.floor }

// Ceiling returns the pitch ceiling the contour was tracked with.
func (c *Contour) Ceiling() float64 { return c.ceiling }

// Frame returns frame i.
func (c *Contour) Frame(i int) Frame { return c.frames[i] }

// Frames returns a copy of all frames.
func (c *Contour) Frames() []Frame {
	return append([]Frame(nil), c.frames...)
}

// Each calls fn for every frame in order until fn returns false. It may be
// called any number of times.
func (c *Contour) Each(fn func(Frame) bool) {
	for _, f := range c.frames {
		if !fn(f) {
			return
		}
	}
}

// FrameAt returns the frame whose span contains t.
func (c *Contour) FrameAt(t float64) (Frame, bool) {
	if len(c.frames) == 0 || t < 0 || t >= c.duration {
		return Frame{}, false
	}
	i := int(math.Floor(t / c.timeStep))
	if i >= len(c.frames) {
		i = len(c.frames) - 1
	}
	return c.frames[i], true
}

// VoicedCount returns the number of voiced frames.
func (c *Contour) VoicedCount() int {
	n := 0
	for _, f := range c.frames {
		if f.Voiced() {
			n++
		}
	}
	return n
}

// MeanPitch returns the arithmetic mean over voiced frames. ok is false when
// no frame is voiced.
func (c *Contour) MeanPitch() (mean float64, ok bool) {
	sum := 0.0
	n := 0
	for _, f := range c.frames {
		if f.Voiced() {
			sum += f.Frequency
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// VoicedIntervals merges runs of voiced frames into time spans, clipped to
// [0, Duration).
func (c *Contour) VoicedIntervals() []Interval {
	var out []Interval
	open := false
	var cur Interval
	for i, f := range c.frames {
		start := float64(i) * c.timeStep
		end := math.Min(float64(i+1)*c.timeStep, c.duration)
		if f.Voiced() {
			if !open {
				cur = Interval{Start: start}
				open = true
			}
			cur.End = end
			continue
		}
		if open {
			out = append(out, cur)
			open = false
		}
	}
	if open {
		out = append(out, cur)
	}
	return out
}
