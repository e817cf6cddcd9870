// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Encoding tells how the values of a Waveform are scaled.
type Encoding int

const (
	// Float32 samples are nominally in [-1, 1].
	Float32 Encoding = iota
	// PCM16 samples hold integral values in [-32768, 32767].
	PCM16
)

// PCM16Scale maps a float sample in [-1, 1) onto the 16-bit integer range.
const PCM16Scale = 32768.0

func (e Encoding) String() string {
	switch e {
	case Float32:
		return "float32"
	case PCM16:
		return "int16"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Waveform is a planar (channel x sample) buffer of audio samples.
// A mono waveform has exactly one channel.
type Waveform struct {
	Data     [][]float32
	Encoding Encoding
}

// Handle pairs a waveform with its sample rate in Hz.
type Handle struct {
	Wave Waveform
	Rate int
}

// NewWaveform builds a float waveform from one slice per channel.
// The slices are used as-is, not copied.
func NewWaveform(channels ...[]float32) Waveform {
	return Waveform{Data: channels, Encoding: Float32}
}

// FromInterleaved splits interleaved frames into a planar waveform.
// Trailing samples that do not make a whole frame are dropped.
func FromInterleaved(samples []float32, channels int) Waveform {
	if channels < 1 {
		return Waveform{}
	}
	frames := len(samples) / channels
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	for f := range frames {
		base := f * channels
		for c := range channels {
			data[c][f] = samples[base+c]
		}
	}
	return Waveform{Data: data, Encoding: Float32}
}

// FromPCM16 builds a 16-bit waveform from one slice per channel.
func FromPCM16(channels ...[]int16) Waveform {
	data := make([][]float32, len(channels))
	for c, ch := range channels {
		data[c] = make([]float32, len(ch))
		for i, v := range ch {
			data[c][i] = float32(v)
		}
	}
	return Waveform{Data: data, Encoding: PCM16}
}

// Channels returns the number of channels.
func (w Waveform) Channels() int { return len(w.Data) }

// Len returns the number of frames (samples per channel).
func (w Waveform) Len() int {
	if len(w.Data) == 0 {
		return 0
	}
	return len(w.Data[0])
}

// Empty reports whether the waveform holds no samples at all.
func (w Waveform) Empty() bool { return w.Len() == 0 }

// Shape returns the buffer dimensions as [channels frames].
func (w Waveform) Shape() [2]int { return [2]int{w.Channels(), w.Len()} }

// Validate checks that every channel has the same length.
func (w Waveform) Validate() error {
	n := w.Len()
	for c, ch := range w.Data {
		if len(ch) != n {
			return fmt.Errorf("channel %d has %d samples, want %d: %w", c, len(ch), n, ErrRaggedChannels)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (w Waveform) Clone() Waveform {
	data := make([][]float32, len(w.Data))
	for c, ch := range w.Data {
		data[c] = append([]float32(nil), ch...)
	}
	return Waveform{Data: data, Encoding: w.Encoding}
}

// Interleaved returns the samples frame by frame.
func (w Waveform) Interleaved() []float32 {
	channels := w.Channels()
	frames := w.Len()
	out := make([]float32, frames*channels)
	for c, ch := range w.Data {
		for f, v := range ch {
			out[f*channels+c] = v
		}
	}
	return out
}

// Float returns a copy in float representation. PCM16 values are divided by 32768.
func (w Waveform) Float() Waveform {
	out := w.Clone()
	if w.Encoding == PCM16 {
		for _, ch := range out.Data {
			for i := range ch {
				ch[i] /= PCM16Scale
			}
		}
	}
	out.Encoding = Float32
	return out
}

// AsPCM16 returns a copy in 16-bit representation. Float samples are scaled
// by 32768, rounded to the nearest integer and clamped to the int16 range, so
// values decoded from a 16-bit container come back exactly.
func (w Waveform) AsPCM16() Waveform {
	out := w.Clone()
	if w.Encoding == PCM16 {
		return out
	}
	for _, ch := range out.Data {
		for i, v := range ch {
			x := math.Round(float64(v) * PCM16Scale)
			x = math.Max(math.MinInt16, math.Min(math.MaxInt16, x))
			ch[i] = float32(x)
		}
	}
	out.Encoding = PCM16
	return out
}

// Int16 returns the samples as int16, truncating toward zero and clamping.
// Float waveforms are scaled by 32768 first.
func (w Waveform) Int16() [][]int16 {
	scale := float32(1)
	if w.Encoding == Float32 {
		scale = PCM16Scale
	}
	out := make([][]int16, len(w.Data))
	for c, ch := range w.Data {
		out[c] = make([]int16, len(ch))
		for i, v := range ch {
			x := v * scale
			if x > math.MaxInt16 {
				x = math.MaxInt16
			} else if x < math.MinInt16 {
				x = math.MinInt16
			}
			out[c][i] = int16(x)
		}
	}
	return out
}

// Stats summarizes a waveform for diagnostics.
type Stats struct {
	Min, Max, Mean float64
}

// Stats computes min, max and mean over every sample. NaN samples are skipped.
func (w Waveform) Stats() Stats {
	var (
		s     Stats
		sum   float64
		count int
	)
	for _, ch := range w.Data {
		for _, v := range ch {
			x := float64(v)
			if math.IsNaN(x) {
				continue
			}
			if count == 0 || x < s.Min {
				s.Min = x
			}
			if count == 0 || x > s.Max {
				s.Max = x
			}
			sum += x
			count++
		}
	}
	if count > 0 {
		s.Mean = sum / float64(count)
	}
	return s
}
