// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams using
// github.com/jfreymuth/oggvorbis.
//
// The decoder yields an audio.Source of interleaved float32 samples in
// [-1.0, 1.0] with the stream's own channel count and sample rate:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	wave, err := audio.ReadAll(src)
//
// Vorbis is lossy, so the source does not implement audio.PCMSource and
// decoded audio is always kept as float. Encoding is not supported.
package vorbis
