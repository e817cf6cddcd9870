// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audremix/audio"
)

// WriteFloat32 writes wave as a 32-bit IEEE float WAV at sampleRate.
// Float waveforms keep their exact values; PCM16 ones are scaled by 1/32768.
func WriteFloat32(w io.Writer, wave audio.Waveform, sampleRate int) error {
	if err := wave.Validate(); err != nil {
		return err
	}
	channels := wave.Channels()
	if channels > math.MaxUint16 {
		return ErrTooManyChannels
	}
	frames := wave.Len()

	const bitsPerSample = 32
	blockAlign := uint32(channels) * bitsPerSample / 8
	dataSize := uint32(frames) * blockAlign

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatIEEEFloat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate)*blockAlign)
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing WAV header: %w", err)
	}

	scale := float32(1)
	if wave.Encoding == audio.PCM16 {
		scale = 1 / audio.PCM16Scale
	}

	// Write 8192 frames at a time.
	const chunkFrames = 8192
	buf := make([]byte, min(frames, chunkFrames)*int(blockAlign))
	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		out := buf[:(end-start)*int(blockAlign)]
		for f := start; f < end; f++ {
			base := (f - start) * channels
			for c := range channels {
				bits := math.Float32bits(wave.Data[c][f] * scale)
				binary.LittleEndian.PutUint32(out[4*(base+c):], bits)
			}
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing WAV samples: %w", err)
		}
	}

	return nil
}

// WritePCM16 writes wave as a 16-bit PCM WAV at sampleRate. Float waveforms
// are scaled by 32768, truncated and clamped to the int16 range.
func WritePCM16(ws io.WriteSeeker, wave audio.Waveform, sampleRate int) error {
	if err := wave.Validate(); err != nil {
		return err
	}
	channels := wave.Channels()
	if channels > math.MaxUint16 {
		return ErrTooManyChannels
	}

	pcm := wave.Int16()
	frames := wave.Len()
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}
	for c, ch := range pcm {
		for f, v := range ch {
			buf.Data[f*channels+c] = int(v)
		}
	}

	enc := gowav.NewEncoder(ws, sampleRate, 16, channels, 1)
	// Write must run even for an empty buffer so the header is emitted.
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding WAV samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing WAV file: %w", err)
	}
	return nil
}

// Encoder writes PCM16 waveforms as 16-bit PCM and float waveforms as
// 32-bit IEEE float.
type Encoder struct{}

func (Encoder) Encode(w io.Writer, wave audio.Waveform, sampleRate int) error {
	if wave.Encoding != audio.PCM16 {
		return WriteFloat32(w, wave, sampleRate)
	}

	if ws, ok := w.(io.WriteSeeker); ok {
		return WritePCM16(ws, wave, sampleRate)
	}
	mem := &memWriteSeeker{}
	if err := WritePCM16(mem, wave, sampleRate); err != nil {
		return err
	}
	if _, err := w.Write(mem.Bytes()); err != nil {
		return fmt.Errorf("writing WAV file: %w", err)
	}
	return nil
}
