// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"github.com/faiface/beep"

	"github.com/ik5/audremix/audio"
)

// pairStreamer feeds two planar channels to beep, which works on stereo frames.
type pairStreamer struct {
	left, right []float32
	pos         int
}

func (s *pairStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.left) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.left) {
		samples[n][0] = float64(s.left[s.pos])
		samples[n][1] = float64(s.right[s.pos])
		n++
		s.pos++
	}
	return n, true
}

func (s *pairStreamer) Err() error { return nil }

// lagrangeResample runs channels through beep.Resample two at a time. An odd
// last channel is paired with itself.
func lagrangeResample(w audio.Waveform, from, to, quality, n int) audio.Waveform {
	channels := w.Channels()
	out := audio.Waveform{Data: make([][]float32, channels), Encoding: audio.Float32}

	for c := 0; c < channels; c += 2 {
		left := w.Data[c]
		right := left
		if c+1 < channels {
			right = w.Data[c+1]
		}

		res := beep.Resample(quality, beep.SampleRate(from), beep.SampleRate(to), &pairStreamer{left: left, right: right})
		l, r := drainStereo(res, n)

		out.Data[c] = l
		if c+1 < channels {
			out.Data[c+1] = r
		}
	}
	return out
}

func drainStereo(s beep.Streamer, n int) ([]float32, []float32) {
	left := make([]float32, 0, n)
	right := make([]float32, 0, n)
	buf := make([][2]float64, 512)

	for len(left) < n {
		k, ok := s.Stream(buf)
		for i := 0; i < k && len(left) < n; i++ {
			left = append(left, float32(buf[i][0]))
			right = append(right, float32(buf[i][1]))
		}
		if !ok || k == 0 {
			break
		}
	}
	return fitLength(left, n), fitLength(right, n)
}
