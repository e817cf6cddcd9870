// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile              = errors.New("not a WAV file")
	ErrUnsupportedWavLayout    = errors.New("unsupported WAV layout")
	ErrUnsupportedSampleFormat = errors.New("unsupported WAV sample format")
	ErrMissingDataChunk        = errors.New("WAV file has no data chunk")
	ErrTooManyChannels         = errors.New("too many channels for a WAV header")
)
