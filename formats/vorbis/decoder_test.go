// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audremix/audio"
)

// mockOggReader hands out interleaved values like oggvorbis.Reader.
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}
	n := copy(buf, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func newMockSource(t *testing.T, rate, channels int, samples []float32) *source {
	t.Helper()

	src, err := newSource(&mockOggReader{sampleRate: rate, channels: channels, samples: samples})
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}
	return src
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"empty":   {},
		"garbage": []byte("this is not an ogg vorbis stream"),
		"riff":    []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newMockSource(t, 48000, 2, nil)
	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Errorf("metadata = %d Hz, %d ch; want 48000 Hz, 2 ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewSource_NoChannels(t *testing.T) {
	t.Parallel()

	if _, err := newSource(&mockOggReader{sampleRate: 8000}); !errors.Is(err, ErrNoChannels) {
		t.Errorf("newSource() error = %v, want ErrNoChannels", err)
	}
}

func TestSource_ReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		frames   int
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3}, 3},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2}, 2},
		{"5.1", 6, make([]float32, 6*100), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wave, err := audio.ReadAll(newMockSource(t, 44100, tt.channels, tt.samples))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if wave.Shape() != [2]int{tt.channels, tt.frames} {
				t.Errorf("Shape() = %v, want [%d %d]", wave.Shape(), tt.channels, tt.frames)
			}
			if wave.Data[0][0] != tt.samples[0] {
				t.Errorf("first sample = %v, want %v", wave.Data[0][0], tt.samples[0])
			}
		})
	}
}

func TestSource_ReadSamples_WholeFrames(t *testing.T) {
	t.Parallel()

	src := newMockSource(t, 44100, 2, []float32{1, 2, 3, 4, 5, 6})

	buf := make([]float32, 5)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4 (two whole stereo frames)", n)
	}

	if n, err := src.ReadSamples(buf[:1]); n != 0 || err != nil {
		t.Errorf("ReadSamples() with less than a frame = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newMockSource(t, 44100, 1, []float32{0.5})
	buf := make([]float32, 8)
	if n, _ := src.ReadSamples(buf); n != 1 {
		t.Fatalf("ReadSamples() n = %d, want 1", n)
	}
	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_ReadSamples_DecodeError(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&mockOggReader{sampleRate: 8000, channels: 1, err: io.ErrUnexpectedEOF})
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want wrapped ErrUnexpectedEOF", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 44100*2)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src, _ := newSource(&mockOggReader{sampleRate: 44100, channels: 2, samples: samples})
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
