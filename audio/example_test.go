// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/internal/audiotest"
)

// Example_waveform shows the planar buffer and its two encodings.
func Example_waveform() {
	left := []float32{0, 0.5, -0.5, 1}
	right := []float32{0, 0.25, -0.25, -1}
	h := audio.Handle{Wave: audio.NewWaveform(left, right), Rate: 8000}

	fmt.Println("shape:", h.Wave.Shape(), "encoding:", h.Wave.Encoding)

	pcm := h.Wave.AsPCM16()
	fmt.Println("pcm16:", pcm.Data[0], pcm.Encoding)
	fmt.Println("back to float:", pcm.Float().Data[0])
	// Output:
	// shape: [2 4] encoding: float32
	// pcm16: [0 16384 -16384 32767] int16
	// back to float: [0 0.5 -0.5 0.9999695]
}

// Example_downsampling streams a 48kHz source through the cubic resampler.
func Example_downsampling() {
	source := audiotest.NewSineSource(48000, 1, 48000, 440.0)
	resampler := audio.NewResampler(source, 8000)

	fmt.Printf("Input rate: %d Hz\n", source.SampleRate())
	fmt.Printf("Output rate: %d Hz\n", resampler.SampleRate())

	buf := make([]float32, 4096)
	total := 0
	for {
		n, err := resampler.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
	}

	fmt.Printf("Output samples: %d\n", total)
	// Output:
	// Input rate: 48000 Hz
	// Output rate: 8000 Hz
	// Output samples: 8000
}

// Example_processingChain chains a resampler and a mono mixer, then drains
// the result into a Waveform.
func Example_processingChain() {
	source := audiotest.NewSineSource(8000, 2, 8000, 440.0)
	mono := audio.NewMonoMixer(audio.NewResampler(source, 16000))

	wave, err := audio.ReadAll(mono)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("shape: %v\n", wave.Shape())
	fmt.Printf("duration: %.2f seconds\n", float64(wave.Len())/float64(mono.SampleRate()))
	// Output:
	// shape: [1 16000]
	// duration: 1.00 seconds
}

// Example_bufferSource turns an in-memory waveform back into a stream.
func Example_bufferSource() {
	wave := audio.FromPCM16([]int16{16384, -16384, 0})
	src := audio.NewBufferSource(wave, 8000)

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	fmt.Println(buf[:n], err == io.EOF)
	// Output:
	// [0.5 -0.5 0] true
}

type mockDecoder struct{}

func (m mockDecoder) Decode(r io.Reader) (audio.Source, error) {
	return audiotest.NewSineSource(16000, 1, 1000, 440.0), nil
}

// Example_registry looks decoders up by file extension.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("mock", mockDecoder{})

	decoder, ok := registry.Get(".MOCK")
	if !ok {
		fmt.Println("Decoder not found")
		return
	}
	fmt.Printf("Retrieved decoder: %T\n", decoder)

	if _, ok := registry.Get("unknown"); !ok {
		fmt.Println("Unknown format not found in registry")
	}
	fmt.Println("Formats:", registry.Formats())
	// Output:
	// Retrieved decoder: audio_test.mockDecoder
	// Unknown format not found in registry
	// Formats: [mock]
}

// Example_errorHandling shows the read loop every consumer of a Source uses.
func Example_errorHandling() {
	source := audiotest.NewSineSource(16000, 1, 1000, 440.0)

	buf := make([]float32, 4096)
	totalSamples := 0
	for {
		n, err := source.ReadSamples(buf)
		totalSamples += n
		if err == io.EOF {
			fmt.Println("Reached end of audio stream")
			break
		}
		if err != nil {
			fmt.Printf("Error reading samples: %v\n", err)
			break
		}
	}

	fmt.Printf("Successfully processed %d samples\n", totalSamples)
	// Output:
	// Reached end of audio stream
	// Successfully processed 1000 samples
}
