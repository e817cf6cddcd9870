// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audremix/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// cubic interpolation. Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Position between frames[1] and frames[2], in source frames.
	pos float64

	srcBuf []float32
	eof    bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame pulls one frame from src into dst. It reports whether a frame was read.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}
	n, err := r.src.ReadSamples(r.srcBuf)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	copy(dst, r.srcBuf)
	if r.useFilter {
		for c := range r.channels {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}
	return true, nil
}

// prime fills the four-frame window. frames[0] duplicates the first frame so
// the first output sample lands exactly on the first input sample.
func (r *Resampler) prime() error {
	r.primed = true

	n, err := r.src.ReadSamples(r.srcBuf)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}
	if n < r.channels {
		r.eof = true
		return io.EOF
	}
	copy(r.filterState, r.srcBuf)
	copy(r.frames[0], r.srcBuf)
	copy(r.frames[1], r.srcBuf)
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.frames[i], r.frames[i-1])
		}
		r.hasFrame[i] = ok
	}
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	ok, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[3], r.frames[2])
	}
	r.hasFrame[3] = ok
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels == 0 || len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// Interpolating past the last real frame would invent samples.
		if !r.hasFrame[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = utils.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
