// SPDX-License-Identifier: EPL-2.0

// Command audremix remixes, merges, converts and inspects audio files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audremix"
	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/dsp"
	"github.com/ik5/audremix/internal/config"
	"github.com/ik5/audremix/internal/logging"
	"github.com/ik5/audremix/internal/metrics"
)

const usage = `usage: audremix [-config file] <command> [flags] args...

commands:
  remix   [-rate N] [-normalize] [-quantize] [-force-resample] [-mono] <in> <out>
  merge   [-rate N] <in1> <in2> <out>
  convert [-rate N] <in> <out>
  info    <in>
`

var errUsage = errors.New("bad usage")

type app struct {
	cfg      config.Config
	log      *logrus.Logger
	pipeline *audremix.Pipeline
	metrics  *metrics.Metrics
	stdout   io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("audremix", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", "", "YAML configuration file")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "audremix:", err)
		return 1
	}
	log, err := logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.JSON, cfg.Logging.Colors)
	if err != nil {
		fmt.Fprintln(stderr, "audremix:", err)
		return 1
	}

	m := metrics.New()
	p, err := audremix.New(
		audremix.WithLogger(log),
		audremix.WithResampler(cfg.ResamplerConfig()),
		audremix.WithObserver(m),
	)
	if err != nil {
		log.WithError(err).Error("Invalid resampler configuration")
		return 1
	}
	a := &app{cfg: cfg, log: log, pipeline: p, metrics: m, stdout: stdout}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "remix":
		err = a.remix(rest, stderr)
	case "merge":
		err = a.merge(rest, stderr)
	case "convert":
		err = a.convert(rest, stderr)
	case "info":
		err = a.info(rest, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		global.Usage()
		return 2
	}

	if path := cfg.Metrics.Textfile; path != "" {
		if werr := m.WriteTextfile(path); werr != nil {
			log.WithError(werr).WithField("path", path).Warn("Failed to write metrics")
		}
	}

	switch {
	case errors.Is(err, errUsage):
		return 2
	case err != nil:
		log.WithError(err).Error("Command failed")
		return 1
	}
	return 0
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string, positional int) error {
	// The flag package has already reported parse errors.
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != positional {
		fmt.Fprintf(fs.Output(), "%s needs %d arguments, got %d\n", fs.Name(), positional, fs.NArg())
		return errUsage
	}
	return nil
}

func (a *app) remix(args []string, stderr io.Writer) error {
	fs := newFlagSet("remix", stderr)
	rate := fs.Int("rate", 0, "target sample rate, 0 keeps the input rate")
	normalize := fs.Bool("normalize", false, "peak-normalize before the headroom limit")
	quantize := fs.Bool("quantize", false, "write 16-bit samples")
	force := fs.Bool("force-resample", false, "resample even when the rates match")
	mono := fs.Bool("mono", false, "collapse channels by median")
	if err := parse(fs, args, 2); err != nil {
		return err
	}

	h, err := a.pipeline.Load(fs.Arg(0), audremix.LoadOptions{})
	if err != nil {
		return err
	}
	h, err = a.pipeline.Remix(h, audremix.RemixOptions{
		TargetRate:    *rate,
		Normalize:     *normalize,
		Quantize:      *quantize,
		ForceResample: *force,
		ToMono:        *mono,
	})
	if err != nil {
		return err
	}
	return a.save(fs.Arg(1), h)
}

func (a *app) merge(args []string, stderr io.Writer) error {
	fs := newFlagSet("merge", stderr)
	rate := fs.Int("rate", a.cfg.Merge.Rate, "output sample rate")
	if err := parse(fs, args, 3); err != nil {
		return err
	}

	h1, err := a.pipeline.Load(fs.Arg(0), audremix.LoadOptions{})
	if err != nil {
		return err
	}
	h2, err := a.pipeline.Load(fs.Arg(1), audremix.LoadOptions{})
	if err != nil {
		return err
	}
	out, err := a.pipeline.Merge(h1, h2, *rate)
	if err != nil {
		return err
	}
	return a.save(fs.Arg(2), out)
}

func (a *app) convert(args []string, stderr io.Writer) error {
	fs := newFlagSet("convert", stderr)
	rate := fs.Int("rate", 0, "target sample rate, 0 keeps the input rate")
	if err := parse(fs, args, 2); err != nil {
		return err
	}

	h, err := a.pipeline.Load(fs.Arg(0), audremix.LoadOptions{TargetRate: *rate})
	if err != nil {
		return err
	}
	return a.save(fs.Arg(1), h)
}

func (a *app) info(args []string, stderr io.Writer) error {
	fs := newFlagSet("info", stderr)
	if err := parse(fs, args, 1); err != nil {
		return err
	}
	path := fs.Arg(0)

	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	h, err := a.pipeline.Load(path, audremix.LoadOptions{})
	if err != nil {
		return err
	}

	frames := h.Wave.Len()
	duration := time.Duration(float64(frames) / float64(h.Rate) * float64(time.Second))
	fmt.Fprintf(a.stdout, "file:     %s (%s)\n", path, humanize.Bytes(uint64(st.Size())))
	fmt.Fprintf(a.stdout, "rate:     %d Hz\n", h.Rate)
	fmt.Fprintf(a.stdout, "channels: %d\n", h.Wave.Channels())
	fmt.Fprintf(a.stdout, "frames:   %s\n", humanize.Comma(int64(frames)))
	fmt.Fprintf(a.stdout, "duration: %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(a.stdout, "peak:     %.4f\n", dsp.Peak(h.Wave))
	return nil
}

func (a *app) save(path string, h audio.Handle) error {
	res := a.pipeline.Save(path, h, audremix.SaveOptions{})
	if !res.OK() {
		return res.Err
	}
	fmt.Fprintf(a.stdout, "wrote %s: %s, %d Hz, %s\n", path, humanize.Bytes(uint64(res.Bytes)), h.Rate, res.Encoding)
	return nil
}
