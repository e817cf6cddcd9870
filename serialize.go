// SPDX-License-Identifier: EPL-2.0

package audremix

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/dsp"
)

// SaveOptions controls how Save writes a waveform.
type SaveOptions struct {
	// FormatRate is the rate written to the file header. The samples are not
	// resampled. Zero uses the handle's rate.
	FormatRate int
	// Quantize writes a float-range waveform as 16-bit samples
	// (x32768, clipped to +-32767).
	Quantize bool
}

// SaveResult reports the outcome of Save.
type SaveResult struct {
	Path string
	// Bytes is the size of the written file.
	Bytes int64
	// Encoding is the sample representation that was written.
	Encoding audio.Encoding
	Kind     ErrorKind
	Err      error
}

// OK reports whether Save succeeded.
func (r SaveResult) OK() bool { return r.Err == nil }

// Save writes h to path in the container named by the file extension (wav or
// flac). Waveforms already in 16-bit representation, or whose peak exceeds
// 1.0, are written as 16-bit samples; other waveforms are written as 32-bit
// float unless opts.Quantize is set. FLAC is always 16-bit.
//
// Save does not return an error. Failures are reported in the result and
// logged at warning level.
func (p *Pipeline) Save(path string, h audio.Handle, opts SaveOptions) (res SaveResult) {
	const op = "save"
	started := time.Now()
	res.Path = path

	w, err := p.save(path, h, opts, &res)
	if err != nil {
		res.Err = err
		res.Kind = KindOf(err)
		p.log.WithError(err).WithField("path", path).Warn("Failed to save audio")
	} else {
		p.log.WithFields(logrus.Fields{
			"path":     path,
			"bytes":    res.Bytes,
			"encoding": res.Encoding,
		}).Info("Saved audio")
	}
	p.done(op, started, w, err)
	return res
}

// SaveOK is Save reduced to success or failure.
func (p *Pipeline) SaveOK(path string, h audio.Handle, opts SaveOptions) bool {
	return p.Save(path, h, opts).OK()
}

func (p *Pipeline) save(path string, h audio.Handle, opts SaveOptions, res *SaveResult) (audio.Waveform, error) {
	const op = "save"

	key := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	enc, ok := p.registry.Encoder(key)
	if !ok {
		return audio.Waveform{}, ioError(op, path, fmt.Errorf("extension %q: %w", filepath.Ext(path), ErrUnsupportedFormat))
	}

	rate := h.Rate
	if opts.FormatRate > 0 {
		rate = opts.FormatRate
	}
	if rate <= 0 || opts.FormatRate < 0 {
		return audio.Waveform{}, valueError(op, fmt.Errorf("rate %d: %w", rate, ErrInvalidRate))
	}
	if err := h.Wave.Validate(); err != nil {
		return audio.Waveform{}, valueError(op, err)
	}

	w := outputWave(h.Wave, opts.Quantize || key == "flac")
	res.Encoding = w.Encoding

	f, err := os.Create(path)
	if err != nil {
		return audio.Waveform{}, ioError(op, path, err)
	}
	if err := enc.Encode(f, w, rate); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return audio.Waveform{}, ioError(op, path, err)
	}
	if err := f.Close(); err != nil {
		return audio.Waveform{}, ioError(op, path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return audio.Waveform{}, ioError(op, path, err)
	}
	res.Bytes = info.Size()
	return w, nil
}

// outputWave picks the representation written by Save.
func outputWave(w audio.Waveform, quantize bool) audio.Waveform {
	switch {
	case w.Encoding == audio.PCM16:
		return w
	case dsp.Peak(w) > 1:
		return pcmRange(w)
	case quantize:
		return dsp.Quantize(w)
	default:
		return w
	}
}

// pcmRange reinterprets a float waveform that already holds integer-scale
// values as 16-bit samples, truncating and clipping to the int16 range.
func pcmRange(w audio.Waveform) audio.Waveform {
	out := w.Clone()
	for _, ch := range out.Data {
		for i, v := range ch {
			x := math.Trunc(float64(v))
			ch[i] = float32(math.Max(math.MinInt16, math.Min(math.MaxInt16, x)))
		}
	}
	out.Encoding = audio.PCM16
	return out
}

// ToBytes encodes w at rate into an in-memory container, "WAV" or "FLAC".
// WAV keeps the waveform's representation (16-bit or 32-bit float); FLAC
// stores 16-bit samples.
func (p *Pipeline) ToBytes(w audio.Waveform, rate int, format string) (data []byte, err error) {
	const op = "to_bytes"
	started := time.Now()
	defer func() { p.done(op, started, w, err) }()

	enc, ok := p.registry.Encoder(format)
	if !ok {
		return nil, ioError(op, "", fmt.Errorf("format %q: %w", format, ErrUnsupportedFormat))
	}
	if rate <= 0 {
		return nil, valueError(op, fmt.Errorf("rate %d: %w", rate, ErrInvalidRate))
	}
	if err := w.Validate(); err != nil {
		return nil, valueError(op, err)
	}

	buf := new(bytes.Buffer)
	if err := enc.Encode(buf, w, rate); err != nil {
		return nil, ioError(op, "", err)
	}
	return buf.Bytes(), nil
}

// FromBytes decodes an in-memory container, detected from its contents.
// Sources stored as 16-bit samples come back in 16-bit representation, so
// integer waveforms survive a ToBytes round trip exactly.
func (p *Pipeline) FromBytes(data []byte) (h audio.Handle, err error) {
	const op = "from_bytes"
	started := time.Now()
	defer func() { p.done(op, started, h.Wave, err) }()

	if len(data) == 0 {
		return audio.Handle{}, ioError(op, "", errors.New("no data"))
	}
	dec, err := p.sniff(data)
	if err != nil {
		return audio.Handle{}, ioError(op, "", err)
	}
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return audio.Handle{}, ioError(op, "", err)
	}
	defer src.Close()

	w, err := audio.ReadAll(src)
	if err != nil {
		return audio.Handle{}, ioError(op, "", err)
	}
	if audio.NativeEncoding(src) == audio.PCM16 {
		w = w.AsPCM16()
	}
	return audio.Handle{Wave: w, Rate: src.SampleRate()}, nil
}
