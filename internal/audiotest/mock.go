// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides sample generators and a mock streaming source
// for tests. It does not import the audio package, so the audio package's own
// tests could use it without an import cycle.
package audiotest

import (
	"io"
	"math"
)

// Sine returns n samples of a full-scale sine wave at freq Hz.
func Sine(rate, n int, freq float64) []float32 {
	return SineAmp(rate, n, freq, 1.0)
}

// SineAmp returns n samples of a sine wave with peak amplitude amp.
func SineAmp(rate, n int, freq, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / float64(rate)
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*t))
	}
	return out
}

// Silence returns n zero samples.
func Silence(n int) []float32 {
	return make([]float32, n)
}

// Constant returns n samples of value.
func Constant(n int, value float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp returns n samples rising linearly from -1 toward 1.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = -1 + 2*float32(i)/float32(n)
	}
	return out
}

// MockSource is a streaming source whose samples come from a waveform
// function. It satisfies audio.Source structurally.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a source of totalSamples frames.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSineSource creates a mock source that generates a sine wave on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
