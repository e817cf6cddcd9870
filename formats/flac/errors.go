// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrUnsupportedChannels = errors.New("FLAC supports 1 to 8 channels")
	ErrUnsupportedRate     = errors.New("sample rate out of FLAC range")
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
	ErrFrameMismatch       = errors.New("FLAC frame does not match stream layout")
)
