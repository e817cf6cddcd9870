// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files using github.com/go-audio/aiff.
//
// 8, 16, 24 and 32-bit integer samples are scaled to float32 in [-1.0, 1.0].
// The source implements audio.PCMSource, so 16-bit files can be kept in their
// native representation:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	wave, err := audio.ReadAll(src)
//	if audio.NativeEncoding(src) == audio.PCM16 {
//	    wave = wave.AsPCM16()
//	}
//
// go-audio seeks between chunks; a reader that cannot seek is buffered in
// memory first.
package aiff
