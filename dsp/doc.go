// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the whole-buffer operations of the remix pipeline:
// resampling, median mono reduction, peak normalization, headroom limiting,
// 16-bit quantization, and the center padding and stacking used by merges.
//
// Every function returns a new Waveform and leaves its input untouched.
//
// # Resampling
//
// Resample converts every channel of a waveform between two rates. The output
// always holds ceil(n * dst / src) frames. The algorithm and its parameters
// come from a ResamplerConfig:
//
//	cfg := dsp.SincBest()                  // polyphase, very high quality preset
//	cfg := dsp.SincFast()                  // polyphase, low quality preset
//	cfg := dsp.ResamplerConfig{Preset: dsp.PresetHigh}
//	cfg := dsp.ResamplerConfig{Algorithm: dsp.AlgorithmCubic}
//	cfg := dsp.ResamplerConfig{Algorithm: dsp.AlgorithmLagrange, Quality: 4}
//
//	out, err := dsp.Resample(wave, 44100, 40000, cfg)
//
// # Level Stages
//
//	wave = dsp.MedianMono(wave)              // per-frame median across channels
//	wave = dsp.Normalize(wave)               // peak becomes 1.0
//	wave = dsp.LimitHeadroom(wave, dsp.Headroom) // peak never above 0.95
//	wave = dsp.Quantize(wave)                // int16 values in [-32767, 32767]
package dsp
