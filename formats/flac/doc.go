// SPDX-License-Identifier: EPL-2.0

// Package flac reads and writes FLAC streams using github.com/mewkiz/flac.
//
// The Decoder handles any bit depth from 4 to 32 and up to eight channels,
// scaling samples to float32 in [-1.0, 1.0]. Its source implements
// audio.PCMSource, so 16-bit streams can be kept as PCM16.
//
// Write always produces 16-bit FLAC with fixed 4096-frame blocks and verbatim
// subframes:
//
//	err := flac.Write(file, wave, 44100)
package flac
