// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mewkiz/flac"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/internal/audiotest"
)

func encode(t *testing.T, wave audio.Waveform, rate int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, wave, rate); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

func decode(t *testing.T, data []byte) (audio.Source, audio.Waveform) {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })

	wave, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return src, wave
}

func TestRoundTrip_PCM16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
		rate     int
	}{
		{"mono single block", 1, 1000, 16000},
		{"mono exact blocks", 1, 2 * BlockSize, 44100},
		{"stereo partial last block", 2, BlockSize + 123, 22050},
		{"six channels", 6, 5000, 48000},
		{"merged rate", 1, 9000, 40000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chans := make([][]int16, tt.channels)
			for c := range chans {
				chans[c] = make([]int16, tt.frames)
				for i := range chans[c] {
					chans[c][i] = int16((i*(c+3))%65536 - 32768)
				}
			}
			wave := audio.FromPCM16(chans...)

			data := encode(t, wave, tt.rate)
			if !bytes.HasPrefix(data, []byte("fLaC")) {
				t.Fatalf("output does not start with the fLaC signature")
			}

			src, got := decode(t, data)
			if src.SampleRate() != tt.rate || src.Channels() != tt.channels {
				t.Errorf("metadata = %d Hz, %d ch; want %d Hz, %d ch", src.SampleRate(), src.Channels(), tt.rate, tt.channels)
			}
			if audio.NativeEncoding(src) != audio.PCM16 {
				t.Errorf("NativeEncoding() = %v, want int16", audio.NativeEncoding(src))
			}
			back := got.AsPCM16().Int16()
			for c := range chans {
				if !slices.Equal(back[c], chans[c]) {
					t.Fatalf("channel %d differs after round trip", c)
				}
			}
		})
	}
}

func TestEncode_FloatInputIsQuantized(t *testing.T) {
	t.Parallel()

	wave := audio.NewWaveform([]float32{0.5, 0.001, -0.001, 1, -1, 3})
	_, got := decode(t, encode(t, wave, 8000))

	want := []int16{16384, 32, -32, 32767, -32768, 32767}
	if back := got.AsPCM16().Int16()[0]; !slices.Equal(back, want) {
		t.Errorf("decoded %v, want %v", back, want)
	}
}

func TestEncode_Empty(t *testing.T) {
	t.Parallel()

	src, got := decode(t, encode(t, audio.FromPCM16([]int16{}), 8000))
	if src.SampleRate() != 8000 || got.Len() != 0 {
		t.Errorf("decoded %d Hz with %d frames, want 8000 Hz and 0 frames", src.SampleRate(), got.Len())
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	nine := make([][]float32, 9)
	for c := range nine {
		nine[c] = make([]float32, 4)
	}
	tests := []struct {
		name string
		wave audio.Waveform
		rate int
		want error
	}{
		{"no channels", audio.Waveform{}, 8000, ErrUnsupportedChannels},
		{"nine channels", audio.NewWaveform(nine...), 8000, ErrUnsupportedChannels},
		{"zero rate", audio.NewWaveform(make([]float32, 4)), 0, ErrUnsupportedRate},
		{"huge rate", audio.NewWaveform(make([]float32, 4)), 1 << 21, ErrUnsupportedRate},
		{"ragged", audio.NewWaveform(make([]float32, 4), make([]float32, 3)), 8000, audio.ErrRaggedChannels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := Write(io.Discard, tt.wave, tt.rate); !errors.Is(err, tt.want) {
				t.Errorf("Write() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncode_FileStaysOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.flac")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	wave := audio.NewWaveform(audiotest.Sine(16000, 16000, 440))
	if err := Write(f, wave, 16000); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	// The encoder must leave closing to the caller.
	if err := f.Close(); err != nil {
		t.Fatalf("Close() after Write = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	_, got := decode(t, data)
	if got.Len() != 16000 {
		t.Errorf("decoded %d frames, want 16000", got.Len())
	}
}

func TestWrite_ShortFinalBlockToFile(t *testing.T) {
	t.Parallel()

	for _, frames := range []int{3, 15, BlockSize + 4, 2 * BlockSize} {
		path := filepath.Join(t.TempDir(), "short.flac")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		wave := audio.NewWaveform(audiotest.Sine(8000, frames, 440))
		if err := Write(f, wave, 8000); err != nil {
			t.Fatalf("Write(%d frames) error = %v", frames, err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		stream, err := flac.ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile(%d frames) error = %v", frames, err)
		}
		info := *stream.Info
		_ = stream.Close()
		if info.BlockSizeMin != BlockSize || info.NSamples != uint64(frames) {
			t.Errorf("%d frames: STREAMINFO min block %d, samples %d", frames, info.BlockSizeMin, info.NSamples)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		_, got := decode(t, data)
		if got.Len() != frames {
			t.Fatalf("decoded %d frames, want %d", got.Len(), frames)
		}

		sum := md5.New()
		for _, v := range got.Data[0] {
			_ = binary.Write(sum, binary.LittleEndian, int16(v*audio.PCM16Scale))
		}
		if !bytes.Equal(sum.Sum(nil), info.MD5sum[:]) {
			t.Errorf("%d frames: STREAMINFO MD5 does not match the decoded samples", frames)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty":   {},
		"garbage": []byte("RIFF....WAVEfmt not a flac stream"),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := encode(t, audio.FromPCM16([]int16{16384, -16384, 0}, []int16{1, 2, 3}), 8000)
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if got := src.(audio.PCMSource).BitDepth(); got != 16 {
		t.Errorf("BitDepth() = %d, want 16", got)
	}

	buf := make([]float32, 5) // two whole stereo frames
	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil {
		t.Fatalf("first read = %d, %v; want 4, nil", n, err)
	}
	if buf[0] != 0.5 || buf[2] != -0.5 || buf[1] != 1.0/32768 {
		t.Errorf("first read = %v", buf[:n])
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || err != io.EOF {
		t.Errorf("second read = %d, %v; want 2, EOF", n, err)
	}
}

func BenchmarkWrite(b *testing.B) {
	wave := audio.NewWaveform(audiotest.Sine(44100, 44100, 440), audiotest.Sine(44100, 44100, 220))

	b.ReportAllocs()
	for b.Loop() {
		_ = Write(io.Discard, wave, 44100)
	}
}
