// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo 16-bit PCM, so the source reports
// two channels even for mono files; both channels then carry the same signal.
// Samples are scaled to float32 in [-1.0, 1.0]:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	wave, err := audio.ReadAll(src)
//
// MP3 is lossy, so decoded audio is always kept as float and the source does
// not implement audio.PCMSource. Encoding is not supported.
package mp3
