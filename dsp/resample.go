// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	"github.com/ik5/audremix/audio"
)

// Algorithm names a resampling method.
type Algorithm string

const (
	// AlgorithmSinc is polyphase band-limited interpolation from go-audio-resampler.
	AlgorithmSinc Algorithm = "sinc"
	// AlgorithmCubic streams through audio.Resampler (Catmull-Rom).
	AlgorithmCubic Algorithm = "cubic"
	// AlgorithmLagrange uses beep's Lagrange polynomial resampler.
	AlgorithmLagrange Algorithm = "lagrange"
)

// Sinc quality presets, from cheapest to most accurate.
const (
	PresetQuick    = "quick"
	PresetLow      = "low"
	PresetMedium   = "medium"
	PresetHigh     = "high"
	PresetVeryHigh = "veryhigh"
)

// ResamplerConfig selects and tunes the resampler. Zero fields take the
// values of SincBest, and a zero Quality means 4.
type ResamplerConfig struct {
	Algorithm Algorithm
	// Preset is the sinc filter quality, one of the Preset constants.
	Preset string
	// Quality is the Lagrange interpolation quality, within [1, 64].
	Quality int
}

// SincBest is the very high quality polyphase filter.
func SincBest() ResamplerConfig {
	return ResamplerConfig{Algorithm: AlgorithmSinc, Preset: PresetVeryHigh}
}

// SincFast is a shorter polyphase filter, good enough for speech.
func SincFast() ResamplerConfig {
	return ResamplerConfig{Algorithm: AlgorithmSinc, Preset: PresetLow}
}

func (c ResamplerConfig) withDefaults() ResamplerConfig {
	best := SincBest()
	if c.Algorithm == "" {
		c.Algorithm = best.Algorithm
	}
	if c.Preset == "" {
		c.Preset = best.Preset
	}
	if c.Quality == 0 {
		c.Quality = 4
	}
	return c
}

// Validate reports configuration errors after defaults are applied.
func (c ResamplerConfig) Validate() error {
	c = c.withDefaults()
	switch c.Algorithm {
	case AlgorithmSinc:
		if _, ok := sincPresets[c.Preset]; !ok {
			return fmt.Errorf("%q: %w", c.Preset, ErrUnknownPreset)
		}
	case AlgorithmLagrange:
		if c.Quality < 1 || c.Quality > 64 {
			return fmt.Errorf("quality=%d: %w", c.Quality, ErrInvalidQuality)
		}
	case AlgorithmCubic:
	default:
		return fmt.Errorf("%q: %w", c.Algorithm, ErrUnknownAlgorithm)
	}
	return nil
}

// ResampledLen returns the frame count after converting n frames from one rate to another.
func ResampledLen(n, from, to int) int {
	if n <= 0 || from <= 0 || to <= 0 {
		return 0
	}
	return int((int64(n)*int64(to) + int64(from) - 1) / int64(from))
}

// Resample converts every channel of w from one rate to another. The result is
// in float representation, keeps the channel count and holds exactly
// ResampledLen(w.Len(), from, to) frames. Equal rates yield a copy.
func Resample(w audio.Waveform, from, to int, cfg ResamplerConfig) (audio.Waveform, error) {
	if from <= 0 || to <= 0 {
		return audio.Waveform{}, fmt.Errorf("resample %d Hz -> %d Hz: %w", from, to, ErrInvalidRate)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return audio.Waveform{}, err
	}
	if err := w.Validate(); err != nil {
		return audio.Waveform{}, err
	}

	src := w.Float()
	if src.Channels() == 0 || from == to {
		return src, nil
	}
	n := ResampledLen(src.Len(), from, to)

	switch cfg.Algorithm {
	case AlgorithmSinc:
		return sincResample(src, from, to, cfg.Preset, n)
	case AlgorithmCubic:
		return cubicResample(src, from, to, n)
	case AlgorithmLagrange:
		return lagrangeResample(src, from, to, cfg.Quality, n), nil
	}
	return audio.Waveform{}, fmt.Errorf("%q: %w", cfg.Algorithm, ErrUnknownAlgorithm)
}

func cubicResample(w audio.Waveform, from, to, n int) (audio.Waveform, error) {
	if w.Empty() {
		return w.Clone(), nil
	}
	r := audio.NewResampler(audio.NewBufferSource(w, from), to)
	out, err := audio.ReadAll(r)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("cubic resample: %w", err)
	}
	for c := range out.Data {
		out.Data[c] = fitLength(out.Data[c], n)
	}
	return out, nil
}

// fitLength truncates or zero-extends ch to n samples.
func fitLength(ch []float32, n int) []float32 {
	if len(ch) >= n {
		return ch[:n]
	}
	return append(ch, make([]float32, n-len(ch))...)
}
