// SPDX-License-Identifier: EPL-2.0

package audremix

import (
	"fmt"
	"time"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/dsp"
)

// RemixOptions selects the remix stages. The zero value only applies the
// headroom limit.
type RemixOptions struct {
	// TargetRate defaults to the handle's own rate.
	TargetRate int
	// Normalize scales the peak to 1.0 before the headroom limit.
	Normalize bool
	// Quantize converts the result to 16-bit representation.
	Quantize bool
	// ForceResample runs the resampler even when the rates match.
	ForceResample bool
	// ToMono collapses channels by per-frame median.
	ToMono bool
	// Axis is the channel axis of the waveform. Only 0 is supported.
	Axis int
}

// Remix runs h through resample, mono reduction, normalization, headroom
// limiting and quantization, in that order. The peak of the result never
// exceeds dsp.Headroom (0.95 of full scale). A 16-bit input is rescaled to
// float range first.
func (p *Pipeline) Remix(h audio.Handle, opts RemixOptions) (out audio.Handle, err error) {
	const op = "remix"
	started := time.Now()
	defer func() { p.done(op, started, out.Wave, err) }()

	if opts.Axis != 0 {
		return audio.Handle{}, valueError(op, fmt.Errorf("axis %d: %w", opts.Axis, ErrInvalidAxis))
	}
	if h.Rate <= 0 || opts.TargetRate < 0 {
		return audio.Handle{}, valueError(op, fmt.Errorf("%d Hz -> %d Hz: %w", h.Rate, opts.TargetRate, ErrInvalidRate))
	}
	if err := h.Wave.Validate(); err != nil {
		return audio.Handle{}, valueError(op, err)
	}

	target := opts.TargetRate
	if target == 0 {
		target = h.Rate
	}
	p.debugWave("Remix input", h)

	w := h.Wave.Float()
	if opts.ForceResample || h.Rate != target {
		w, err = dsp.Resample(w, h.Rate, target, p.resampler)
		if err != nil {
			return audio.Handle{}, valueError(op, err)
		}
	}
	if opts.ToMono {
		w = dsp.MedianMono(w)
	}
	if opts.Normalize {
		w = dsp.Normalize(w)
	}
	w = dsp.LimitHeadroom(w, dsp.Headroom)
	if opts.Quantize {
		w = dsp.Quantize(w)
	}

	out = audio.Handle{Wave: w, Rate: target}
	p.debugWave("Remix output", out)
	return out, nil
}
