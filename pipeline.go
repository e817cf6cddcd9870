// SPDX-License-Identifier: EPL-2.0

package audremix

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/dsp"
	"github.com/ik5/audremix/formats/aiff"
	"github.com/ik5/audremix/formats/flac"
	"github.com/ik5/audremix/formats/mp3"
	"github.com/ik5/audremix/formats/vorbis"
	"github.com/ik5/audremix/formats/wav"
)

// DefaultMergeRate is the rate Merge aligns its inputs to when the caller
// has no preference.
const DefaultMergeRate = 40000

// Observer is told about every finished operation. started is when the
// operation began and samples the number of output samples (all channels).
type Observer interface {
	Observe(op string, started time.Time, samples int, err error)
}

type nopObserver struct{}

func (nopObserver) Observe(string, time.Time, int, error) {}

// Pipeline loads, remixes, merges and serializes audio. It holds no state
// between calls and is safe for concurrent use.
type Pipeline struct {
	log       logrus.FieldLogger
	registry  *audio.Registry
	resampler dsp.ResamplerConfig
	observer  Observer
}

// Option configures a Pipeline in New.
type Option func(*Pipeline)

// WithLogger sets the logger diagnostics go to. By default they are discarded.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithRegistry replaces DefaultRegistry.
func WithRegistry(r *audio.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithResampler selects the resampling algorithm. The default is dsp.SincBest.
func WithResampler(cfg dsp.ResamplerConfig) Option {
	return func(p *Pipeline) { p.resampler = cfg }
}

// WithObserver reports the outcome of every operation to o.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// New returns a Pipeline. The resampler configuration is validated here so
// operations never fail on it later.
func New(opts ...Option) (*Pipeline, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{
		log:       discard,
		resampler: dsp.SincBest(),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	if p.observer == nil {
		p.observer = nopObserver{}
	}
	if err := p.resampler.Validate(); err != nil {
		return nil, valueError("new", err)
	}
	return p, nil
}

// DefaultRegistry knows every container of the formats packages: wav, mp3,
// flac, ogg and aiff for reading, wav and flac for writing.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("flac", flac.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})

	r.RegisterEncoder("wav", wav.Encoder{})
	r.RegisterEncoder("flac", flac.Encoder{})
	return r
}

func (p *Pipeline) done(op string, started time.Time, w audio.Waveform, err error) {
	p.observer.Observe(op, started, w.Channels()*w.Len(), err)
}

func (p *Pipeline) debugWave(msg string, h audio.Handle) {
	s := h.Wave.Stats()
	p.log.WithFields(logrus.Fields{
		"shape": h.Wave.Shape(),
		"min":   s.Min,
		"max":   s.Max,
		"mean":  s.Mean,
		"rate":  h.Rate,
	}).Debug(msg)
}
