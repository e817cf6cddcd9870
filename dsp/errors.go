// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	ErrInvalidRate      = errors.New("sample rate must be positive")
	ErrUnknownAlgorithm = errors.New("unknown resampling algorithm")
	ErrInvalidQuality   = errors.New("lagrange quality must be within [1, 64]")
	ErrUnknownPreset    = errors.New("unknown sinc quality preset")
	ErrPadTooShort      = errors.New("target length is shorter than the waveform")
	ErrEmptyWaveform    = errors.New("waveform has no samples")
	ErrLengthMismatch   = errors.New("waveforms differ in length")
	ErrEncodingMismatch = errors.New("waveforms differ in encoding")
	ErrNothingToStack   = errors.New("no waveforms to stack")
)
