// SPDX-License-Identifier: EPL-2.0

package audremix

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/dsp"
)

// sniffLimit is how much of a file is inspected when its extension does not
// name a known container.
const sniffLimit = 3072

// sniffed maps detected MIME types to registry keys.
var sniffed = []struct {
	mime string
	key  string
}{
	{"audio/wav", "wav"},
	{"audio/mpeg", "mp3"},
	{"audio/flac", "flac"},
	{"audio/ogg", "ogg"},
	{"application/ogg", "ogg"},
	{"audio/aiff", "aiff"},
}

// mimetype's FLAC signature wants a STREAMINFO block that is not the last
// metadata block, which our own encoder never writes.
func init() {
	mimetype.Extend(flacStream, "audio/flac", ".flac")
}

func flacStream(raw []byte, _ uint32) bool {
	return bytes.HasPrefix(raw, []byte("fLaC"))
}

// LoadOptions controls decoding.
type LoadOptions struct {
	// TargetRate resamples the decoded audio. Zero keeps the native rate.
	TargetRate int
	// Mono averages the channels while decoding.
	Mono bool
}

// Load decodes the file at path into a float waveform. The container comes
// from the file extension, or from the file contents when the extension is
// unknown.
func (p *Pipeline) Load(path string, opts LoadOptions) (h audio.Handle, err error) {
	const op = "load"
	started := time.Now()
	defer func() { p.done(op, started, h.Wave, err) }()

	if opts.TargetRate < 0 {
		return audio.Handle{}, valueError(op, fmt.Errorf("target rate %d: %w", opts.TargetRate, ErrInvalidRate))
	}

	f, err := os.Open(path)
	if err != nil {
		return audio.Handle{}, ioError(op, path, err)
	}
	defer f.Close()

	dec, err := p.decoderFor(filepath.Ext(path), f)
	if err != nil {
		return audio.Handle{}, ioError(op, path, err)
	}

	h, err = p.decode(dec, f, opts.Mono)
	if err != nil {
		return audio.Handle{}, ioError(op, path, err)
	}

	if opts.TargetRate > 0 && opts.TargetRate != h.Rate {
		w, err := dsp.Resample(h.Wave, h.Rate, opts.TargetRate, p.resampler)
		if err != nil {
			return audio.Handle{}, valueError(op, err)
		}
		h = audio.Handle{Wave: w, Rate: opts.TargetRate}
	}

	p.log.WithFields(logrus.Fields{
		"path":  path,
		"shape": h.Wave.Shape(),
		"rate":  h.Rate,
	}).Info("Loaded audio")
	return h, nil
}

// decoderFor picks a decoder by extension, falling back to content sniffing.
// r is left at its start either way.
func (p *Pipeline) decoderFor(ext string, r io.ReadSeeker) (audio.Decoder, error) {
	if dec, ok := p.registry.Get(ext); ok {
		return dec, nil
	}

	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding: %w", err)
	}
	return p.sniff(head[:n])
}

func (p *Pipeline) sniff(head []byte) (audio.Decoder, error) {
	mtype := mimetype.Detect(head)
	for _, s := range sniffed {
		if !mtype.Is(s.mime) {
			continue
		}
		if dec, ok := p.registry.Get(s.key); ok {
			return dec, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", mtype.String(), ErrUnsupportedFormat)
}

func (p *Pipeline) decode(dec audio.Decoder, r io.Reader, mono bool) (audio.Handle, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return audio.Handle{}, err
	}
	if mono && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}
	defer src.Close()

	w, err := audio.ReadAll(src)
	if err != nil {
		return audio.Handle{}, err
	}
	return audio.Handle{Wave: w, Rate: src.SampleRate()}, nil
}
