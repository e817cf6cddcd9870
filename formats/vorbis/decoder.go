// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audremix/audio"
)

// oggReader is the part of oggvorbis.Reader the source uses; tests swap it out.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

// ReadSamples decodes straight into dst. oggvorbis reports interleaved
// values, so only whole frames are requested.
func (s *source) ReadSamples(dst []float32) (int, error) {
	whole := len(dst) - len(dst)%s.channels
	if whole == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:whole])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg vorbis stream: %w", err)
	}
	return newSource(dec)
}

func newSource(dec oggReader) (*source, error) {
	if dec.Channels() < 1 {
		return nil, ErrNoChannels
	}
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
