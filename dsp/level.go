// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/utils"
)

// Headroom is the highest peak amplitude LimitHeadroom lets through.
const Headroom = 0.95

// Peak returns the largest absolute sample value. NaN samples are skipped.
func Peak(w audio.Waveform) float32 {
	var peak float32
	for _, ch := range w.Data {
		for _, v := range ch {
			a := float32(math.Abs(float64(v)))
			if a > peak {
				peak = a
			}
		}
	}
	return peak
}

// Scale multiplies every sample by gain.
func Scale(w audio.Waveform, gain float32) audio.Waveform {
	out := w.Clone()
	for _, ch := range out.Data {
		for i := range ch {
			ch[i] *= gain
		}
	}
	return out
}

// Normalize scales w so its peak absolute amplitude is 1.0.
// Silent waveforms are returned unchanged.
func Normalize(w audio.Waveform) audio.Waveform {
	peak := Peak(w)
	if peak == 0 {
		return w.Clone()
	}
	return divide(w, float64(peak))
}

// LimitHeadroom divides w by peak/headroom when that ratio exceeds one, so
// the result never peaks above headroom. Quieter waveforms are returned unchanged.
func LimitHeadroom(w audio.Waveform, headroom float32) audio.Waveform {
	ratio := float64(Peak(w)) / float64(headroom)
	if ratio <= 1 {
		return w.Clone()
	}
	return divide(w, ratio)
}

// divide works in float64 so that the peak lands on float32(peak/d) and no
// sample rounds above it.
func divide(w audio.Waveform, d float64) audio.Waveform {
	out := w.Clone()
	for _, ch := range out.Data {
		for i := range ch {
			ch[i] = float32(float64(ch[i]) / d)
		}
	}
	return out
}

// Quantize converts a float waveform to 16-bit representation: samples are
// scaled by 32768, clipped to [-32767, 32767] and truncated.
// PCM16 input is returned as a copy.
func Quantize(w audio.Waveform) audio.Waveform {
	out := w.Clone()
	if w.Encoding == audio.PCM16 {
		return out
	}
	for _, ch := range out.Data {
		for i, v := range ch {
			ch[i] = float32(utils.Float32ToInt16(v))
		}
	}
	out.Encoding = audio.PCM16
	return out
}
