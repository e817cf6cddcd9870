// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// # Decoding
//
// The Decoder walks the RIFF chunk list, skipping anything other than "fmt "
// and "data", and streams samples as float32 in [-1.0, 1.0]. Supported sample
// formats:
//   - PCM 8, 16, 24 and 32 bit
//   - IEEE float 32 and 64 bit
//   - WAVE_FORMAT_EXTENSIBLE wrapping either of the above
//
// The returned source implements audio.PCMSource, so callers can tell a
// 16-bit file apart from a float one:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if audio.NativeEncoding(src) == audio.PCM16 {
//	    // keep the result as 16-bit
//	}
//
// # Encoding
//
// WritePCM16 produces 16-bit PCM through github.com/go-audio/wav, which needs
// an io.WriteSeeker to patch chunk sizes. WriteFloat32 produces 32-bit IEEE
// float files so float waveforms survive a round trip unchanged. Encoder
// picks between them from the waveform encoding and buffers in memory when
// the destination cannot seek.
//
// # Errors
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrUnsupportedWavLayout: malformed or misplaced fmt chunk
//   - ErrUnsupportedSampleFormat: compressed or unusual sample formats
//   - ErrMissingDataChunk: the file ends before any audio data
package wav
