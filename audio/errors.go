// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrRaggedChannels = errors.New("channels differ in length")
	ErrNoChannels     = errors.New("source reports no channels")
)
