// SPDX-License-Identifier: EPL-2.0

// Package audremix loads, remixes, merges and saves audio buffers.
//
// A Pipeline works on audio.Handle values, a planar waveform paired with its
// sample rate. The stages are:
//
//   - Load decodes a WAV, MP3, FLAC, Ogg Vorbis or AIFF file, optionally
//     resampling it and averaging it to mono.
//   - Remix resamples, reduces to mono by per-frame median, peak-normalizes,
//     limits the peak to 0.95 and quantizes to 16 bits. Each stage except the
//     headroom limit is optional.
//   - Merge aligns two handles to one rate, centers the shorter in silence,
//     stacks their channels and remixes the stack into one normalized 16-bit
//     mono waveform.
//   - Save, ToBytes and FromBytes write WAV or FLAC to a file or a byte slice
//     and read any supported container back from memory.
//
// # Quick Start
//
//	p, _ := audremix.New()
//	voice, _ := p.Load("voice.mp3", audremix.LoadOptions{})
//	music, _ := p.Load("music.flac", audremix.LoadOptions{})
//	mixed, _ := p.Merge(voice, music, audremix.DefaultMergeRate)
//	if res := p.Save("out.wav", mixed, audremix.SaveOptions{}); !res.OK() {
//		log.Print(res.Err)
//	}
//
// # Errors
//
// Every operation except Save returns an *Error. KindOf tells file and
// container failures (KindIO) from bad parameters (KindValue). Save reports
// the same information in its SaveResult.
//
// # Lower Level Packages
//
// The buffer operations live in dsp, the streaming Source interfaces and the
// format Registry in audio, and one decoder per container under formats/.
package audremix
