// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/ik5/audremix/audio"
)

type source struct {
	stream     *flac.Stream
	sampleRate int
	channels   int
	bitDepth   int
	scale      float32

	// Samples of the frame being drained, one slice per channel.
	block [][]int32
	pos   int
	done  bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.bitDepth }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("closing flac stream: %w", err)
	}
	return nil
}

// next parses the following audio frame. It reports false at end of stream.
func (s *source) next() (bool, error) {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.done = true
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("decoding flac frame: %w", err)
	}
	if len(f.Subframes) != s.channels {
		return false, fmt.Errorf("frame has %d channels, stream has %d: %w", len(f.Subframes), s.channels, ErrFrameMismatch)
	}

	s.block = s.block[:0]
	for _, sub := range f.Subframes {
		s.block = append(s.block, sub.Samples)
	}
	s.pos = 0
	return true, nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	written := 0

	for written < frames {
		if len(s.block) == 0 || s.pos >= len(s.block[0]) {
			if s.done {
				break
			}
			ok, err := s.next()
			if err != nil {
				return written * s.channels, err
			}
			if !ok {
				break
			}
			continue
		}

		n := min(frames-written, len(s.block[0])-s.pos)
		for f := range n {
			base := (written + f) * s.channels
			for c, ch := range s.block {
				dst[base+c] = float32(ch[s.pos+f]) * s.scale
			}
		}
		s.pos += n
		written += n
	}

	if s.done && (len(s.block) == 0 || s.pos >= len(s.block[0])) {
		return written * s.channels, io.EOF
	}
	return written * s.channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("opening flac stream: %w", err)
	}

	info := stream.Info
	bitDepth := int(info.BitsPerSample)
	if bitDepth < 4 || bitDepth > 32 {
		_ = stream.Close()
		return nil, fmt.Errorf("%d bits per sample: %w", bitDepth, ErrUnsupportedBitDepth)
	}
	if info.NChannels < 1 || info.NChannels > 8 {
		_ = stream.Close()
		return nil, fmt.Errorf("%d channels: %w", info.NChannels, ErrUnsupportedChannels)
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   bitDepth,
		scale:      float32(1 / float64(uint64(1)<<(bitDepth-1))),
		block:      make([][]int32, 0, info.NChannels),
	}, nil
}
