// SPDX-License-Identifier: EPL-2.0

// Package audio provides the value types and streaming primitives shared by
// the rest of the module.
//
// # Waveforms and Handles
//
// A Waveform is a planar buffer: one []float32 per channel, all of equal
// length. Its Encoding says how the values are scaled:
//   - Float32: samples nominally in [-1.0, 1.0]
//   - PCM16: integral values in [-32768, 32767]
//
// A Handle pairs a Waveform with its sample rate. Handles are plain values;
// nothing in the module keeps a reference to one after a call returns.
//
//	h := audio.Handle{Wave: audio.NewWaveform(left, right), Rate: 44100}
//
// # Streaming Sources
//
// Decoders produce a Source that yields interleaved float32 samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources chain: NewResampler changes the rate with cubic interpolation,
// NewMonoMixer averages channels down to one, and NewBufferSource turns an
// in-memory Waveform back into a Source. ReadAll drains any Source into a
// Waveform:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	wave, err := audio.ReadAll(audio.NewMonoMixer(src))
//
// # Format Registry
//
// The registry maps format keys (file extensions) to decoders and encoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.RegisterEncoder("wav", wav.Encoder{})
//	decoder, _ := registry.Get(".WAV")
//
// # Error Handling
//
// Sources return io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Process n samples from buf
//	}
package audio
