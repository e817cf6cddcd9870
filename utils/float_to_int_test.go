// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "truncates toward zero", input: 0.001, want: 32},
		{name: "truncates negative", input: -0.001, want: -32},
		{name: "headroom peak", input: 0.95, want: 31129},
		{name: "full scale clips", input: 1.0, want: 32767},
		{name: "negative full scale clips", input: -1.0, want: -32767},
		{name: "clamp over max", input: 1.5, want: 32767},
		{name: "clamp way under min", input: -100.0, want: -32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestFloat32ToInt16Range checks that -32768 is never produced.
func TestFloat32ToInt16Range(t *testing.T) {
	t.Parallel()

	for f := -2.0; f <= 2.0; f += 0.01 {
		got := Float32ToInt16(float32(f))
		if got == math.MinInt16 {
			t.Fatalf("Float32ToInt16(%v) = %d, want >= -32767", f, got)
		}
	}
}

// TestFloat32ToInt16Symmetry tests that conversion is symmetric
func TestFloat32ToInt16Symmetry(t *testing.T) {
	t.Parallel()

	for _, val := range []float32{0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1.0, 3.0} {
		pos := Float32ToInt16(val)
		neg := Float32ToInt16(-val)

		if pos != -neg {
			t.Errorf("Float32ToInt16 not symmetric: +%v=%v, -%v=%v", val, pos, val, neg)
		}
	}
}

// TestFloat32ToInt16Monotonic tests that function is monotonic
func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)

	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Errorf("Float32ToInt16 not monotonic: f=%v gives %v, but previous was %v", f, curr, prev)
		}
		prev = curr
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	var result int16
	input := float32(0.5)

	b.ReportAllocs()

	for range b.N {
		result = Float32ToInt16(input)
	}

	_ = result
}

// TestFloat32ToInt16_ZeroAllocs verifies no heap allocations
func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToInt16(0.5)
	})

	if allocs > 0 {
		t.Errorf("Float32ToInt16 allocated %v times, want 0", allocs)
	}
}
