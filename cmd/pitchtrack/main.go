// Command pitchtrack prints the pitch contour of a WAV recording.
//
// Usage:
//
//	pitchtrack [flags] file.wav
//
// Examples:
//
//	pitchtrack speech.wav
//	pitchtrack -floor 100 -ceiling 400 speech.wav
//	pitchtrack -accurate -all speech.wav
//	pitchtrack -summary speech.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/internal/config"
	"github.com/minnie121311/voice-adjuster/internal/wavio"
	"github.com/minnie121311/voice-adjuster/voice"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	floor := flag.Float64("floor", pitch.DefaultFloor, "pitch floor in Hz")
	ceiling := flag.Float64("ceiling", pitch.DefaultCeiling, "pitch ceiling in Hz")
	timeStep := flag.Float64("timestep", pitch.DefaultTimeStep, "frame spacing in seconds")
	accurate := flag.Bool("accurate", false, "use the 6-period Gaussian analysis window")
	all := flag.Bool("all", false, "also print unvoiced frames")
	summary := flag.Bool("summary", false, "print only the summary")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pitchtrack [flags] file.wav\n\n")
		fmt.Fprintf(os.Stderr, "Prints the tracked pitch contour of a recording.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pitchtrack speech.wav\n")
		fmt.Fprintf(os.Stderr, "  pitchtrack -floor 100 -ceiling 400 speech.wav\n")
		fmt.Fprintf(os.Stderr, "  pitchtrack -summary speech.wav\n")
	}
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.WithError(err).Fatal("cannot load configuration")
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "floor":
			cfg.Tracker.Floor = *floor
		case "ceiling":
			cfg.Tracker.Ceiling = *ceiling
		case "timestep":
			cfg.Tracker.TimeStep = *timeStep
		case "accurate":
			cfg.Tracker.VeryAccurate = *accurate
		}
	})
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if lvl, err := cfg.LogLevel(); err == nil {
		log.SetLevel(lvl)
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	sig, format, err := wavio.ReadFile(input)
	if err != nil {
		log.WithError(err).WithField("input", input).Fatal("cannot read input")
	}
	if limit := cfg.Limits.MaxSeconds; limit > 0 && sig.Duration() > limit {
		log.WithFields(logrus.Fields{"input": input, "seconds": sig.Duration()}).
			Fatalf("input longer than %g s", limit)
	}
	log.WithFields(logrus.Fields{
		"input":    input,
		"rate":     format.SampleRate,
		"channels": format.NumChannels,
		"samples":  humanize.Comma(int64(sig.Len())),
	}).Debug("decoded input")

	c, err := voice.TrackPitch(sig, append(cfg.Options(), voice.WithLogger(log))...)
	if err != nil {
		log.WithError(err).WithField("input", input).Fatal("pitch tracking failed")
	}

	if !*summary {
		printFrames(c, *all)
	}
	printSummary(c)
}

func printFrames(c *pitch.Contour, all bool) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Time [s]\tF0 [Hz]\tStrength\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "--------\t-------\t--------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	var werr error
	c.Each(func(f pitch.Frame) bool {
		if !f.Voiced() && !all {
			return true
		}
		hz := "--"
		if f.Voiced() {
			hz = fmt.Sprintf("%.2f", f.Frequency)
		}
		_, werr = fmt.Fprintf(tw, "%.4f\t%s\t%.4f\n", f.Time, hz, f.Strength)
		return werr == nil
	})
	if werr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", werr)
		return
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printSummary(c *pitch.Contour) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	mean := "--"
	if m, ok := c.MeanPitch(); ok {
		mean = fmt.Sprintf("%.2f Hz", m)
	}
	lines := []string{
		fmt.Sprintf("Duration\t%.3f s", c.Duration()),
		fmt.Sprintf("Frames\t%s", humanize.Comma(int64(c.Len()))),
		fmt.Sprintf("Voiced frames\t%s", humanize.Comma(int64(c.VoicedCount()))),
		fmt.Sprintf("Voiced spans\t%d", len(c.VoicedIntervals())),
		fmt.Sprintf("Mean pitch\t%s", mean),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(tw, l); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write summary: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
