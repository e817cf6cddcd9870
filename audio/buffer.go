// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// BufferSource streams an in-memory waveform as interleaved float samples,
// so buffers can be fed through the streaming stages (Resampler, MonoMixer).
type BufferSource struct {
	wave  Waveform
	rate  int
	frame int
}

// NewBufferSource returns a Source over wave at rate. PCM16 waveforms are
// scaled to float range on the fly.
func NewBufferSource(wave Waveform, rate int) *BufferSource {
	return &BufferSource{wave: wave, rate: rate}
}

func (b *BufferSource) SampleRate() int { return b.rate }
func (b *BufferSource) Channels() int   { return b.wave.Channels() }
func (b *BufferSource) BufSize() int    { return 4096 }
func (b *BufferSource) Close() error    { return nil }

func (b *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := b.wave.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := b.wave.Len() - b.frame
	if remaining <= 0 {
		return 0, io.EOF
	}
	frames := min(len(dst)/channels, remaining)

	scale := float32(1)
	if b.wave.Encoding == PCM16 {
		scale = 1 / PCM16Scale
	}
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = b.wave.Data[c][b.frame+f] * scale
		}
	}
	b.frame += frames

	if b.frame >= b.wave.Len() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}

// ReadAll drains src into a float waveform. It does not close src.
func ReadAll(src Source) (Waveform, error) {
	channels := src.Channels()
	if channels < 1 {
		return Waveform{}, ErrNoChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}
	buf := make([]float32, size)

	var samples []float32
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Waveform{}, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// Some decoders report exhaustion as (0, nil).
			break
		}
	}

	return FromInterleaved(samples, channels), nil
}

// NativeEncoding reports the representation a decoded source is best kept in:
// PCM16 for 16-bit lossless containers and Float32 for everything else.
func NativeEncoding(src Source) Encoding {
	if p, ok := src.(PCMSource); ok && p.BitDepth() == 16 {
		return PCM16
	}
	return Float32
}
