// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	"github.com/ik5/audremix/audio"
)

// PadCenter pads every channel of w with silence up to size frames, keeping
// the original samples centered. With an odd pad amount the extra frame goes
// to the end.
func PadCenter(w audio.Waveform, size int) (audio.Waveform, error) {
	if w.Channels() == 0 {
		return audio.Waveform{}, ErrEmptyWaveform
	}
	n := w.Len()
	if size < n {
		return audio.Waveform{}, fmt.Errorf("pad %d frames to %d: %w", n, size, ErrPadTooShort)
	}

	lpad := (size - n) / 2
	out := audio.Waveform{Data: make([][]float32, w.Channels()), Encoding: w.Encoding}
	for c, ch := range w.Data {
		padded := make([]float32, size)
		copy(padded[lpad:], ch)
		out.Data[c] = padded
	}
	return out, nil
}

// Stack joins the channels of several equal-length waveforms into one
// multi-channel waveform, in argument order.
func Stack(waves ...audio.Waveform) (audio.Waveform, error) {
	if len(waves) == 0 {
		return audio.Waveform{}, ErrNothingToStack
	}

	n := waves[0].Len()
	enc := waves[0].Encoding
	out := audio.Waveform{Encoding: enc}
	for i, w := range waves {
		if err := w.Validate(); err != nil {
			return audio.Waveform{}, fmt.Errorf("stack input %d: %w", i, err)
		}
		if w.Len() != n {
			return audio.Waveform{}, fmt.Errorf("stack input %d has %d frames, want %d: %w", i, w.Len(), n, ErrLengthMismatch)
		}
		if w.Encoding != enc {
			return audio.Waveform{}, fmt.Errorf("stack input %d is %s, want %s: %w", i, w.Encoding, enc, ErrEncodingMismatch)
		}
		for _, ch := range w.Data {
			out.Data = append(out.Data, append([]float32(nil), ch...))
		}
	}
	return out, nil
}
