// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/audremix/audio"
)

// BlockSize is the number of frames per FLAC audio frame.
const BlockSize = 4096

// maxSampleRate is the largest rate a STREAMINFO block can hold (20 bits).
const maxSampleRate = 1<<20 - 1

// Write encodes wave as 16-bit FLAC at sampleRate. Float waveforms are
// scaled by 32768, truncated and clamped to the int16 range. Frames use
// verbatim subframes with independent channels, so the output is lossless
// but not compressed.
func Write(w io.Writer, wave audio.Waveform, sampleRate int) error {
	if err := wave.Validate(); err != nil {
		return err
	}
	channels := wave.Channels()
	if channels < 1 || channels > 8 {
		return fmt.Errorf("%d channels: %w", channels, ErrUnsupportedChannels)
	}
	if sampleRate <= 0 || sampleRate > maxSampleRate {
		return fmt.Errorf("%d Hz: %w", sampleRate, ErrUnsupportedRate)
	}

	pcm := wave.Int16()
	total := wave.Len()

	info := &meta.StreamInfo{
		BlockSizeMin:  BlockSize,
		BlockSizeMax:  BlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     uint8(channels),
		BitsPerSample: 16,
		NSamples:      uint64(total),
		MD5sum:        pcmSum(pcm, total),
	}
	enc, err := flac.NewEncoder(writerOnly{w}, info)
	if err != nil {
		return fmt.Errorf("creating flac encoder: %w", err)
	}

	samples := make([][]int32, channels)
	for c := range samples {
		samples[c] = make([]int32, min(total, BlockSize))
	}

	for num, start := uint64(0), 0; start < total; num, start = num+1, start+BlockSize {
		n := min(BlockSize, total-start)
		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(sampleRate),
				Channels:          frame.Channels(channels - 1),
				BitsPerSample:     16,
				Num:               num,
			},
			Subframes: make([]*frame.Subframe, channels),
		}
		for c := range channels {
			buf := samples[c][:n]
			for i := range n {
				buf[i] = int32(pcm[c][start+i])
			}
			f.Subframes[c] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   buf,
				NSamples:  n,
			}
		}
		if err := enc.WriteFrame(f); err != nil {
			_ = enc.Close()
			return fmt.Errorf("writing flac frame %d: %w", num, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing flac stream: %w", err)
	}
	return nil
}

// writerOnly hides Close and Seek from the flac encoder. Given a seeker it
// rewrites STREAMINFO on Close with the smallest block it saw, and a short
// final block then makes the stream unreadable.
type writerOnly struct{ w io.Writer }

func (o writerOnly) Write(p []byte) (int, error) { return o.w.Write(p) }

// pcmSum is the STREAMINFO MD5 of the interleaved little-endian samples.
func pcmSum(pcm [][]int16, frames int) [md5.Size]uint8 {
	h := md5.New()
	buf := make([]byte, 2*len(pcm))
	for i := range frames {
		for c, ch := range pcm {
			binary.LittleEndian.PutUint16(buf[2*c:], uint16(ch[i]))
		}
		_, _ = h.Write(buf)
	}
	var sum [md5.Size]uint8
	copy(sum[:], h.Sum(nil))
	return sum
}

// Encoder always writes 16-bit FLAC.
type Encoder struct{}

func (Encoder) Encode(w io.Writer, wave audio.Waveform, sampleRate int) error {
	return Write(w, wave, sampleRate)
}
