// SPDX-License-Identifier: EPL-2.0

package audremix

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/dsp"
)

// Merge aligns h1 and h2 to rate, reduces each to one channel by median,
// centers the shorter one in silence so both have the same length, stacks
// the two and remixes the stack into a normalized, quantized mono waveform
// at rate. Each input gets one vote in the final median whatever its
// channel count.
func (p *Pipeline) Merge(h1, h2 audio.Handle, rate int) (out audio.Handle, err error) {
	const op = "merge"
	started := time.Now()
	defer func() { p.done(op, started, out.Wave, err) }()

	if rate <= 0 {
		return audio.Handle{}, valueError(op, fmt.Errorf("merge rate %d: %w", rate, ErrInvalidRate))
	}
	for i, h := range []audio.Handle{h1, h2} {
		if h.Wave.Empty() {
			return audio.Handle{}, valueError(op, fmt.Errorf("input %d: %w", i+1, ErrEmptyWaveform))
		}
	}

	r1, err := p.Remix(h1, RemixOptions{TargetRate: rate})
	if err != nil {
		return audio.Handle{}, err
	}
	r2, err := p.Remix(h2, RemixOptions{TargetRate: rate})
	if err != nil {
		return audio.Handle{}, err
	}

	m1, m2 := dsp.MedianMono(r1.Wave), dsp.MedianMono(r2.Wave)

	size := max(m1.Len(), m2.Len())
	p1, err := dsp.PadCenter(m1, size)
	if err != nil {
		return audio.Handle{}, valueError(op, err)
	}
	p2, err := dsp.PadCenter(m2, size)
	if err != nil {
		return audio.Handle{}, valueError(op, err)
	}
	stacked, err := dsp.Stack(p1, p2)
	if err != nil {
		return audio.Handle{}, valueError(op, err)
	}

	out, err = p.Remix(audio.Handle{Wave: stacked, Rate: rate}, RemixOptions{
		Normalize: true,
		Quantize:  true,
		ToMono:    true,
	})
	if err != nil {
		return audio.Handle{}, err
	}

	p.log.WithFields(logrus.Fields{
		"inputs": []int{h1.Rate, h2.Rate},
		"rate":   rate,
		"frames": out.Wave.Len(),
	}).Info("Merged audio")
	return out, nil
}
