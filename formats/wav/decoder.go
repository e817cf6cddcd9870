// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audremix/audio"
)

const (
	formatPCM        = 0x0001
	formatIEEEFloat  = 0x0003
	formatExtensible = 0xFFFE

	// unknownSize marks a data chunk written by a streaming encoder that
	// never patched the header.
	unknownSize = 0xFFFFFFFF
)

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	bitDepth   int
	float      bool
	remaining  int64 // bytes left in the data chunk, -1 when unknown
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BitDepth() int   { return s.bitDepth }
func (s *wavSource) BufSize() int    { return 4096 }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.remaining == 0 {
		return 0, io.EOF
	}

	width := s.bitDepth / 8
	want := len(dst) * width
	if s.remaining > 0 && int64(want) > s.remaining {
		want = int(s.remaining)
	}
	if len(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n, err := io.ReadFull(s.r, s.buf[:want])
	exhausted := false
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		exhausted = true
	case err != nil:
		return 0, fmt.Errorf("reading WAV data: %w", err)
	}
	if s.remaining > 0 {
		s.remaining -= int64(n)
		if s.remaining == 0 {
			exhausted = true
		}
	}

	samples := n / width
	s.convert(dst[:samples], s.buf[:samples*width])

	if exhausted {
		s.remaining = 0
		return samples, io.EOF
	}
	return samples, nil
}

func (s *wavSource) convert(dst []float32, b []byte) {
	switch {
	case s.float && s.bitDepth == 32:
		for i := range dst {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
		}
	case s.float && s.bitDepth == 64:
		for i := range dst {
			dst[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:])))
		}
	case s.bitDepth == 8:
		for i := range dst {
			dst[i] = (float32(b[i]) - 128) / 128
		}
	case s.bitDepth == 16:
		for i := range dst {
			dst[i] = float32(int16(binary.LittleEndian.Uint16(b[2*i:]))) / 32768.0
		}
	case s.bitDepth == 24:
		for i := range dst {
			j := 3 * i
			v := int32(b[j]) | int32(b[j+1])<<8 | int32(b[j+2])<<16
			v = (v << 8) >> 8
			dst[i] = float32(v) / 8388608.0
		}
	case s.bitDepth == 32:
		for i := range dst {
			dst[i] = float32(float64(int32(binary.LittleEndian.Uint32(b[4*i:]))) / 2147483648.0)
		}
	}
}

type format struct {
	tag        uint16
	channels   int
	sampleRate int
	bitDepth   int
}

func parseFormat(chunk []byte) (format, error) {
	if len(chunk) < 16 {
		return format{}, fmt.Errorf("fmt chunk of %d bytes: %w", len(chunk), ErrUnsupportedWavLayout)
	}
	f := format{
		tag:        binary.LittleEndian.Uint16(chunk[0:2]),
		channels:   int(binary.LittleEndian.Uint16(chunk[2:4])),
		sampleRate: int(binary.LittleEndian.Uint32(chunk[4:8])),
		bitDepth:   int(binary.LittleEndian.Uint16(chunk[14:16])),
	}
	// The sub-format GUID starts with the real format tag.
	if f.tag == formatExtensible && len(chunk) >= 26 {
		f.tag = binary.LittleEndian.Uint16(chunk[24:26])
	}

	if f.channels < 1 || f.sampleRate <= 0 {
		return format{}, fmt.Errorf("%d channels at %d Hz: %w", f.channels, f.sampleRate, ErrUnsupportedWavLayout)
	}
	switch {
	case f.tag == formatPCM && (f.bitDepth == 8 || f.bitDepth == 16 || f.bitDepth == 24 || f.bitDepth == 32):
	case f.tag == formatIEEEFloat && (f.bitDepth == 32 || f.bitDepth == 64):
	default:
		return format{}, fmt.Errorf("format tag %#04x with %d bits: %w", f.tag, f.bitDepth, ErrUnsupportedSampleFormat)
	}
	return f, nil
}

type Decoder struct{}

// Decode walks the RIFF chunks up to "data", skipping anything it does not
// need. Samples are then streamed straight from r.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading RIFF header: %w", err)
	}
	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var (
		fmtFound bool
		f        format
		chunk    = make([]byte, 8)
	)
	for {
		if _, err := io.ReadFull(r, chunk); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrMissingDataChunk
			}
			return nil, fmt.Errorf("reading chunk header: %w", err)
		}
		id := string(chunk[:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, int(size)+int(size&1))
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("reading fmt chunk: %w", err)
			}
			parsed, err := parseFormat(body[:size])
			if err != nil {
				return nil, err
			}
			f, fmtFound = parsed, true

		case "data":
			if !fmtFound {
				return nil, fmt.Errorf("data chunk before fmt chunk: %w", ErrUnsupportedWavLayout)
			}
			remaining := int64(size)
			if size == unknownSize {
				remaining = -1
			}
			return &wavSource{
				r:          r,
				sampleRate: f.sampleRate,
				channels:   f.channels,
				bitDepth:   f.bitDepth,
				float:      f.tag == formatIEEEFloat,
				remaining:  remaining,
				buf:        make([]byte, 4096),
			}, nil

		default:
			skip := int64(size) + int64(size&1)
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				if err == io.EOF {
					return nil, ErrMissingDataChunk
				}
				return nil, fmt.Errorf("skipping %q chunk: %w", id, err)
			}
		}
	}
}
