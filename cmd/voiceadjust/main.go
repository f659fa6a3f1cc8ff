// Command voiceadjust shifts the pitch and changes the speed of a WAV
// recording and prints how well the requested shift was met.
//
// Usage:
//
//	voiceadjust [flags] input.wav output.wav
//
// Examples:
//
//	voiceadjust -shift 50 in.wav out.wav
//	voiceadjust -shift -30 -speed 1.25 in.wav out.wav
//	voiceadjust -config voice.yaml -v in.wav out.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/minnie121311/voice-adjuster/internal/config"
	"github.com/minnie121311/voice-adjuster/internal/wavio"
	"github.com/minnie121311/voice-adjuster/voice"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	shift := flag.Float64("shift", 0, "pitch shift in Hz")
	speed := flag.Float64("speed", 1, "speed factor (2 = twice as fast)")
	floor := flag.Float64("floor", 0, "pitch floor in Hz (default from config)")
	ceiling := flag.Float64("ceiling", 0, "pitch ceiling in Hz (default from config)")
	maxSeconds := flag.Float64("max-seconds", 0, "reject inputs longer than this (default from config)")
	bits := flag.Int("bits", 16, "output sample size: 8, 16 or 24")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: voiceadjust [flags] input.wav output.wav\n\n")
		fmt.Fprintf(os.Stderr, "Shifts pitch by a constant number of Hz and changes speed.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  voiceadjust -shift 50 in.wav out.wav\n")
		fmt.Fprintf(os.Stderr, "  voiceadjust -shift -30 -speed 1.25 in.wav out.wav\n")
	}
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.WithError(err).Fatal("cannot load configuration")
		}
	}
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shift":
			cfg.Adjust.PitchShiftHz = *shift
		case "speed":
			cfg.Adjust.SpeedFactor = *speed
		case "floor":
			cfg.Tracker.Floor = *floor
		case "ceiling":
			cfg.Tracker.Ceiling = *ceiling
		case "max-seconds":
			cfg.Limits.MaxSeconds = *maxSeconds
		case "bits":
			cfg.Limits.Precision, flagErr = precisionFromBits(*bits)
		}
	})
	if flagErr != nil {
		log.WithError(flagErr).Fatal("invalid flag")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if lvl, err := cfg.LogLevel(); err == nil {
		log.SetLevel(lvl)
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	entry := log.WithFields(logrus.Fields{
		"input":    input,
		"output":   output,
		"shift_hz": cfg.Adjust.PitchShiftHz,
		"speed":    cfg.Adjust.SpeedFactor,
	})

	sig, _, err := wavio.ReadFile(input)
	if err != nil {
		entry.WithError(err).Fatal("cannot read input")
	}
	if limit := cfg.Limits.MaxSeconds; limit > 0 && sig.Duration() > limit {
		entry.WithField("seconds", sig.Duration()).Fatalf("input longer than %g s", limit)
	}
	entry.WithField("samples", humanize.Comma(int64(sig.Len()))).Debug("decoded input")

	opts := append(cfg.Options(), voice.WithLogger(entry))
	res, err := voice.Adjust(sig, cfg.Adjust.PitchShiftHz, cfg.Adjust.SpeedFactor, opts...)
	if err != nil {
		entry.WithError(err).Fatal("adjustment failed")
	}

	if err := wavio.WriteFile(output, res.Output, cfg.Limits.Precision); err != nil {
		entry.WithError(err).Fatal("cannot write output")
	}
	size := int64(-1)
	if st, err := os.Stat(output); err == nil {
		size = st.Size()
	}
	entry.WithFields(res.Report.Fields()).Info("done")

	printReport(res.Report, res.Output.Len(), size)
}

func printReport(r voice.Report, samples int, size int64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	pitchLine := func(v float64) string {
		if !r.Voiced {
			return "--"
		}
		return fmt.Sprintf("%.2f Hz", v)
	}
	written := "--"
	if size >= 0 {
		written = humanize.Bytes(uint64(size))
	}
	lines := []string{
		fmt.Sprintf("Original mean pitch\t%s", pitchLine(r.OriginalMeanPitch)),
		fmt.Sprintf("Result mean pitch\t%s", pitchLine(r.ResultMeanPitch)),
		fmt.Sprintf("Requested shift\t%.2f Hz", r.RequestedShift),
		fmt.Sprintf("Actual shift\t%s", pitchLine(r.ActualShift)),
		fmt.Sprintf("Shift error\t%s", pitchLine(r.Error)),
		fmt.Sprintf("Clamped targets\t%s", humanize.Comma(int64(r.ClampedPoints))),
		fmt.Sprintf("Duration\t%.3f s -> %.3f s", r.InputDuration, r.OutputDuration),
		fmt.Sprintf("Level\t%.1f dB -> %.1f dB", r.InputRMSdB, r.OutputRMSdB),
		fmt.Sprintf("Output\t%s samples, %s", humanize.Comma(int64(samples)), written),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(tw, l); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write report: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// precisionFromBits converts an output sample size in bits to bytes.
func precisionFromBits(bits int) (int, error) {
	switch bits {
	case 8, 16, 24:
		return bits / 8, nil
	}
	return 0, errors.Errorf("bits must be 8, 16 or 24, got %d", bits)
}
