// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"slices"
)

// Median returns the median of values, ignoring NaN entries. The mean of the
// two middle values is used for an even count. scratch is reused when large
// enough; pass nil to allocate. Returns NaN when no value is a number.
func Median(values []float32, scratch []float32) float32 {
	scratch = scratch[:0]
	for _, v := range values {
		if !math.IsNaN(float64(v)) {
			scratch = append(scratch, v)
		}
	}

	n := len(scratch)
	switch n {
	case 0:
		return float32(math.NaN())
	case 1:
		return scratch[0]
	case 2:
		return (scratch[0] + scratch[1]) / 2
	}

	slices.Sort(scratch)
	if n%2 == 1 {
		return scratch[n/2]
	}
	return (scratch[n/2-1] + scratch[n/2]) / 2
}
