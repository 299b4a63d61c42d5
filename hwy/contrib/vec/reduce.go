// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vec

//go:generate go run ../../../cmd/hwygen -widths 1,2,4,8 -output sum_width_gen.go

// Width is the number of float64 lanes Sum accumulates in parallel.
// Four lanes fill one 256-bit register.
const Width = 4

// Sum returns the sum of all elements of v.
//
// Returns 0 if the slice is empty.
//
// The reduction runs in two phases. The first len(v) - len(v)%Width
// elements are accumulated into Width independent lanes, lane i taking
// v[i], v[i+Width], v[i+2*Width], ... The lanes are then folded left to
// right, ((lane0 + lane1) + lane2) + lane3, and the remaining elements are
// added in index order. The result may differ in the last bits from a
// naive left-to-right loop, but it is identical across calls and
// platforms for the same input.
//
// NaN and infinities propagate per IEEE 754.
//
// Example:
//
//	data := []float64{1, 2, 3, 4, 5}
//	result := Sum(data) // (1 + 2 + 3 + 4) + 5 = 15
func Sum(v []float64) float64 {
	return sumWidth4(v)
}

// SumWidth is Sum with an explicit lane width. Width 1 is a plain scalar
// loop. SumWidth(v, Width) == Sum(v) bit for bit.
//
// Panics if width is not a positive power of two.
func SumWidth(v []float64, width int) float64 {
	if width < 1 || width&(width-1) != 0 {
		panic("vec: lane width must be a positive power of two")
	}
	switch width {
	case 1:
		return sumWidth1(v)
	case 2:
		return sumWidth2(v)
	case 4:
		return sumWidth4(v)
	case 8:
		return sumWidth8(v)
	}
	return sumWidthGeneric(v, width)
}

// SplitTail splits n elements into the count handled by full lane groups
// and the count left for the scalar remainder pass.
func SplitTail(n, width int) (full, tail int) {
	tail = n % width
	return n - tail, tail
}

// sumWidthGeneric is the reference shape of the generated kernels, kept
// for widths that have no unrolled variant.
func sumWidthGeneric(v []float64, width int) float64 {
	acc := make([]float64, width)
	full, _ := SplitTail(len(v), width)

	for i := 0; i < full; i += width {
		group := v[i : i+width : i+width]
		for lane, x := range group {
			acc[lane] += x
		}
	}

	total := acc[0]
	for _, s := range acc[1:] {
		total += s
	}

	// Handle tail elements with scalar code
	for _, x := range v[full:] {
		total += x
	}
	return total
}
