// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"

	"github.com/ik5/audremix/audio"
)

var sincPresets = map[string]resampler.QualitySpec{
	PresetQuick:    {Preset: resampler.QualityQuick},
	PresetLow:      {Preset: resampler.QualityLow},
	PresetMedium:   {Preset: resampler.QualityMedium},
	PresetHigh:     {Preset: resampler.QualityHigh},
	PresetVeryHigh: {Preset: resampler.QualityVeryHigh},
}

// sincResample runs every channel through the polyphase resampler and fits
// the result to n frames, since the filter delay may leave a few frames more
// or less than the exact ratio.
func sincResample(w audio.Waveform, from, to int, preset string, n int) (audio.Waveform, error) {
	spec := sincPresets[preset]
	out := audio.Waveform{Data: make([][]float32, w.Channels()), Encoding: audio.Float32}
	for c, ch := range w.Data {
		if len(ch) == 0 {
			out.Data[c] = make([]float32, n)
			continue
		}
		res, err := resampler.ResampleMonoFloat32(ch, float64(from), float64(to), spec.Preset)
		if err != nil {
			return audio.Waveform{}, fmt.Errorf("sinc resample channel %d: %w", c, err)
		}
		out.Data[c] = fitLength(res, n)
	}
	return out, nil
}
