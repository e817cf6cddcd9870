// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// PCMSource is implemented by sources decoding a lossless integer container.
// BitDepth reports the bits per sample stored in the container.
type PCMSource interface {
	Source
	BitDepth() int
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder writes a whole waveform at rate into w using a container format.
type Encoder interface {
	Encode(w io.Writer, wave Waveform, rate int) error
}

// Registry for decoders and encoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive and a leading dot is ignored, so file extensions
// can be used directly.
type Registry struct {
	decoders map[string]Decoder
	encoders map[string]Encoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
		encoders: make(map[string]Encoder),
		mtx:      &sync.Mutex{},
	}
}

func formatKey(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.decoders[formatKey(format)] = d
}

func (r *Registry) RegisterEncoder(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[formatKey(format)] = e
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.decoders[formatKey(format)]
	return d, ok
}

func (r *Registry) Encoder(format string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.encoders[formatKey(format)]
	return e, ok
}

// Formats returns the sorted list of decodable format keys.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
