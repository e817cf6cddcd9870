// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/audremix/audio"
	"github.com/ik5/audremix/formats/aiff"
)

// ExampleDecoder_Decode decodes an AIFF file and checks its native encoding.
func ExampleDecoder_Decode() {
	f, err := os.Open("loop.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	wave, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}
	if audio.NativeEncoding(src) == audio.PCM16 {
		wave = wave.AsPCM16()
	}
	fmt.Println(wave.Shape(), wave.Encoding)
}
