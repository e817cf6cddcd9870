// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"

	"github.com/ik5/audremix/audio"
)

func TestPeak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		wave audio.Waveform
		want float32
	}{
		{name: "empty", wave: audio.Waveform{}, want: 0},
		{name: "negative peak", wave: audio.NewWaveform([]float32{0.1, -0.7, 0.3}), want: 0.7},
		{name: "across channels", wave: audio.NewWaveform([]float32{0.1, 0.2}, []float32{0.4, -0.3}), want: 0.4},
		{name: "nan skipped", wave: audio.NewWaveform([]float32{float32(math.NaN()), 0.25}), want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Peak(tt.wave); got != tt.want {
				t.Errorf("Peak() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := audio.NewWaveform([]float32{0.1, -0.25, 0.2})
	out := Normalize(in)

	if got := Peak(out); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("Normalize() peak = %v, want 1", got)
	}
	if math.Abs(float64(out.Data[0][0])-0.4) > 1e-6 {
		t.Errorf("Normalize() sample 0 = %v, want 0.4", out.Data[0][0])
	}
	if in.Data[0][1] != -0.25 {
		t.Errorf("Normalize() modified its input: %v", in.Data[0])
	}
}

func TestNormalize_Silence(t *testing.T) {
	t.Parallel()

	out := Normalize(audio.NewWaveform(make([]float32, 16)))
	for i, v := range out.Data[0] {
		if v != 0 {
			t.Fatalf("Normalize(silence)[%d] = %v, want 0", i, v)
		}
	}
}

func TestLimitHeadroom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		samples  []float32
		wantPeak float32
		changed  bool
	}{
		{name: "quiet passes through", samples: []float32{0.5, -0.2}, wantPeak: 0.5},
		{name: "exactly at headroom", samples: []float32{0.95, -0.1}, wantPeak: 0.95},
		{name: "full scale is limited", samples: []float32{1.0, -0.5}, wantPeak: 0.95, changed: true},
		{name: "pcm range is limited", samples: []float32{16000, -32000}, wantPeak: 0.95, changed: true},
		{name: "awkward peak", samples: []float32{1.0000001, 0.3}, wantPeak: 0.95, changed: true},
		{name: "just above headroom", samples: []float32{0.95000005, -0.95000005}, wantPeak: 0.95, changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := audio.NewWaveform(tt.samples)
			out := LimitHeadroom(in, Headroom)

			if got := Peak(out); got != tt.wantPeak {
				t.Errorf("LimitHeadroom() peak = %.9f, want %.9f", got, tt.wantPeak)
			}
			if !tt.changed {
				for i := range tt.samples {
					if out.Data[0][i] != tt.samples[i] {
						t.Errorf("LimitHeadroom() changed sample %d: %v -> %v", i, tt.samples[i], out.Data[0][i])
					}
				}
			}
		})
	}
}

func TestLimitHeadroom_KeepsShape(t *testing.T) {
	t.Parallel()

	out := LimitHeadroom(audio.NewWaveform([]float32{2.0, -1.0, 0.5}), Headroom)

	// Limiting is one division, so ratios between samples survive.
	if r := out.Data[0][1] / out.Data[0][0]; math.Abs(float64(r)+0.5) > 1e-6 {
		t.Errorf("sample ratio = %v, want -0.5", r)
	}
}

func TestQuantize(t *testing.T) {
	t.Parallel()

	in := audio.NewWaveform([]float32{0.5, -0.5, 1.0, -1.2, 0.001, 0})
	out := Quantize(in)

	want := []float32{16384, -16384, 32767, -32767, 32, 0}
	if out.Encoding != audio.PCM16 {
		t.Fatalf("Quantize() encoding = %v, want %v", out.Encoding, audio.PCM16)
	}
	for i, w := range want {
		if out.Data[0][i] != w {
			t.Errorf("Quantize()[%d] = %v, want %v", i, out.Data[0][i], w)
		}
	}
	if in.Encoding != audio.Float32 {
		t.Error("Quantize() changed the input encoding")
	}
}

func TestQuantize_PCM16Unchanged(t *testing.T) {
	t.Parallel()

	in := audio.FromPCM16([]int16{100, -200})
	out := Quantize(in)

	if out.Data[0][0] != 100 || out.Data[0][1] != -200 {
		t.Errorf("Quantize(PCM16) = %v, want [100 -200]", out.Data[0])
	}
}

func BenchmarkLimitHeadroom(b *testing.B) {
	wave := audio.NewWaveform(make([]float32, 48000))
	wave.Data[0][100] = 1.5

	b.ReportAllocs()

	for range b.N {
		_ = LimitHeadroom(wave, Headroom)
	}
}
