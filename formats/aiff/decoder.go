// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audremix/audio"
)

// aiffReader is the part of aiff.Decoder the source uses; tests swap it out.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio's aiff.Decoder.
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	scale      float32
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.bitDepth }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("decoding aiff: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]) * s.scale
	}

	if n < len(dst) || err == io.EOF {
		return n, io.EOF
	}
	return n, nil
}

func fullScale(bitDepth int) (float32, bool) {
	switch bitDepth {
	case 8:
		return 1.0 / 128, true
	case 16:
		return 1.0 / 32768, true
	case 24:
		return 1.0 / 8388608, true
	case 32:
		return 1.0 / 2147483648, true
	default:
		return 0, false
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks.
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return newSource(dec, format, int(dec.BitDepth))
}

func newSource(dec aiffReader, format *goaudio.Format, bitDepth int) (*source, error) {
	scale, ok := fullScale(bitDepth)
	if !ok {
		return nil, fmt.Errorf("%d-bit samples: %w", bitDepth, ErrUnsupportedBitDepth)
	}
	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		scale:      scale,
	}, nil
}
