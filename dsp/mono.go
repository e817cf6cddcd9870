// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/utils"
)

// MedianMono collapses channels into one by taking the median of each frame,
// ignoring NaN samples. Waveforms with at most one channel are returned as a copy.
func MedianMono(w audio.Waveform) audio.Waveform {
	channels := w.Channels()
	if channels <= 1 {
		return w.Clone()
	}

	frames := w.Len()
	mono := make([]float32, frames)
	frame := make([]float32, channels)
	scratch := make([]float32, 0, channels)
	for f := range frames {
		for c := range channels {
			frame[c] = w.Data[c][f]
		}
		mono[f] = utils.Median(frame, scratch)
	}

	return audio.Waveform{Data: [][]float32{mono}, Encoding: w.Encoding}
}
