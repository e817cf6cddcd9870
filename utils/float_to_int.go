// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 quantizes a float sample: it scales by 32768, clips to
// [-32767, 32767] and truncates toward zero.
func Float32ToInt16(x float32) int16 {
	v := x * 32768.0
	if v > 32767 {
		v = 32767
	} else if v < -32767 {
		v = -32767
	}

	return int16(v)
}
