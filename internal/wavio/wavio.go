// Package wavio converts between WAV streams and mono signals.
package wavio

import (
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/minnie121311/voice-adjuster/dsp/core"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/pkg/errors"
)

const blockFrames = 512

// Decode reads a WAV stream and mixes all channels down to one.
func Decode(r io.Reader) (signal.Signal, beep.Format, error) {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return signal.Signal{}, format, errors.Wrap(err, "wavio: error decoding audio")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer stream.Close()

	samples := make([]float64, 0, stream.Len())
	buf := make([][2]float64, blockFrames)
	for {
		n, ok := stream.Stream(buf)
		for _, frame := range buf[:n] {
			if format.NumChannels == 1 {
				samples = append(samples, frame[0])
				continue
			}
			samples = append(samples, 0.5*(frame[0]+frame[1]))
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return signal.Signal{}, format, errors.Wrap(err, "wavio: error streaming audio")
	}

	sig, err := signal.New(samples, int(format.SampleRate))
	if err != nil {
		return signal.Signal{}, format, errors.Wrap(err, "wavio: invalid audio")
	}
	return sig, format, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (signal.Signal, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, beep.Format{}, errors.Wrapf(err, "wavio: open %s", path)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer f.Close()
	return Decode(f)
}

// Streamer plays sig as a mono beep stream, clipped to [-1, 1].
func Streamer(sig signal.Signal) beep.Streamer {
	samples := sig.Samples()
	pos := 0
	return beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copyFrames(out, samples[pos:])
		pos += n
		return n, true
	})
}

func copyFrames(out [][2]float64, src []float64) int {
	n := len(out)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		v := core.Clamp(src[i], -1, 1)
		out[i] = [2]float64{v, v}
	}
	return n
}

// Encode writes sig as a mono WAV with precision bytes per sample.
func Encode(w io.WriteSeeker, sig signal.Signal, precision int) error {
	if err := sig.Validate(); err != nil {
		return errors.Wrap(err, "wavio: invalid signal")
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(sig.SampleRate()),
		NumChannels: 1,
		Precision:   precision,
	}
	if err := wav.Encode(w, Streamer(sig), format); err != nil {
		return errors.Wrap(err, "wavio: error encoding audio")
	}
	return nil
}

// WriteFile encodes sig to a new file at path.
func WriteFile(path string, sig signal.Signal, precision int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "wavio: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "wavio: close %s", path)
		}
	}()
	return Encode(f, sig, precision)
}
