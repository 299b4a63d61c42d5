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

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"
)

// makeVector64 creates a test vector of given size
func makeVector64(size int, gen func(int) float64) []float64 {
	v := make([]float64, size)
	for i := range v {
		v[i] = gen(i)
	}
	return v
}

// randomVector64 returns size values in [-1e6, 1e6) from a fixed seed.
func randomVector64(size int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	return makeVector64(size, func(int) float64 {
		return (r.Float64()*2 - 1) * 1e6
	})
}

// twoPhaseSum spells out the reduction order Sum promises, with the
// partition computed independently of SplitTail.
func twoPhaseSum(v []float64, width int) float64 {
	groups := len(v) / width
	lanes := make([]float64, width)
	for g := 0; g < groups; g++ {
		for lane := 0; lane < width; lane++ {
			lanes[lane] = lanes[lane] + v[g*width+lane]
		}
	}
	total := lanes[0]
	for lane := 1; lane < width; lane++ {
		total = total + lanes[lane]
	}
	for i := groups * width; i < len(v); i++ {
		total = total + v[i]
	}
	return total
}

// sameBits reports whether a and b are the same float64, treating any
// two NaNs as equal.
func sameBits(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Float64bits(a) == math.Float64bits(b)
}

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
		want float64
	}{
		{"nil", nil, 0},
		{"empty", []float64{}, 0},
		{"single", []float64{42.5}, 42.5},
		{"tail only", []float64{1, 2, 3}, 6},
		{"one group", []float64{1, 2, 3, 4}, 10},
		{"group plus tail", []float64{1, 2, 3, 4, 5}, 15},
		{"two groups", []float64{1, 2, 3, 4, 5, 6, 7, 8}, 36},
		{"negative", []float64{-1, -2, -3, -4, -5, -6, -7}, -28},
		{"cancel", []float64{1.5, -1.5, 2.5, -2.5, 3.5, -3.5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sum(tt.v); got != tt.want {
				t.Errorf("Sum(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestSum_EmptyIsExactZero(t *testing.T) {
	got := Sum(nil)
	if math.Float64bits(got) != 0 {
		t.Errorf("Sum(nil) bits = %#x, want +0", math.Float64bits(got))
	}
}

func TestSum_SingleElement(t *testing.T) {
	for _, x := range []float64{
		1, -1, 0.1, -0.3, 1e308, -1e308, 5e-324, math.MaxFloat64, math.SmallestNonzeroFloat64,
	} {
		if got := Sum([]float64{x}); got != x {
			t.Errorf("Sum([%v]) = %v, want %v", x, got, x)
		}
	}
}

func TestSum_MatchesTwoPhase(t *testing.T) {
	for n := 0; n <= 67; n++ {
		v := randomVector64(n, uint64(n))
		want := twoPhaseSum(v, Width)
		if got := Sum(v); !sameBits(got, want) {
			t.Errorf("Sum(n=%d) = %v, want %v (two-phase)", n, got, want)
		}
	}
	for _, n := range []int{1000, 1023, 4096, 100003} {
		v := randomVector64(n, uint64(n))
		want := twoPhaseSum(v, Width)
		if got := Sum(v); !sameBits(got, want) {
			t.Errorf("Sum(n=%d) = %v, want %v (two-phase)", n, got, want)
		}
	}
}

func TestSum_Reproducible(t *testing.T) {
	v := randomVector64(10007, 7)
	first := Sum(v)
	for i := 0; i < 10; i++ {
		if got := Sum(v); !sameBits(got, first) {
			t.Fatalf("Sum call %d = %v, first call = %v", i, got, first)
		}
	}
}

// TestSum_ReductionOrder pins the lane order on an input where it differs
// from a naive left-to-right loop.
func TestSum_ReductionOrder(t *testing.T) {
	v := []float64{1e100, 1, -1e100, 1, 1, 1, 1, 1}

	naive := 0.0
	for _, x := range v {
		naive += x
	}
	if naive != 5 {
		t.Fatalf("naive sum = %v, want 5", naive)
	}

	// lanes: 1e100+1, 1+1, -1e100+1, 1+1 -> ((1e100 + 2) + -1e100) + 2
	if got := Sum(v); got != 2 {
		t.Errorf("Sum(%v) = %v, want 2", v, got)
	}
}

// TestSum_EachElementOnce uses distinct powers of two so that skipping or
// repeating any element changes the exactly representable total.
func TestSum_EachElementOnce(t *testing.T) {
	for n := 0; n <= 52; n++ {
		v := makeVector64(n, func(i int) float64 { return math.Ldexp(1, i) })
		want := math.Ldexp(1, n) - 1
		for _, w := range []int{1, 2, 4, 8, 16} {
			if got := SumWidth(v, w); got != want {
				t.Errorf("SumWidth(n=%d, w=%d) = %v, want %v", n, w, got, want)
			}
		}
	}
}

func TestSum_SpecialValues(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name string
		v    []float64
		want float64
	}{
		{"NaN in lane", []float64{1, nan, 3, 4, 5}, nan},
		{"NaN in tail", []float64{1, 2, 3, 4, nan}, nan},
		{"+Inf in lane", []float64{1, 2, inf, 4, 5, 6}, inf},
		{"+Inf in tail", []float64{1, 2, 3, 4, inf}, inf},
		{"-Inf", []float64{-inf, 2, 3}, math.Inf(-1)},
		{"+Inf and -Inf", []float64{inf, 2, 3, 4, -inf}, nan},
		{"+Inf and -Inf same lane", []float64{inf, 0, 0, 0, -inf, 0, 0, 0}, nan},
		{"NaN with +Inf", []float64{inf, nan}, nan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sum(tt.v)
			if !sameBits(got, tt.want) {
				t.Errorf("Sum(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestSumWidth_GeneratedMatchesGeneric(t *testing.T) {
	for _, w := range []int{1, 2, 4, 8} {
		for n := 0; n <= 40; n++ {
			v := randomVector64(n, uint64(1000*w+n))
			want := sumWidthGeneric(v, w)
			if got := SumWidth(v, w); !sameBits(got, want) {
				t.Errorf("SumWidth(n=%d, w=%d) = %v, generic = %v", n, w, got, want)
			}
		}
	}
}

func TestSumWidth_MatchesTwoPhase(t *testing.T) {
	for _, w := range []int{1, 2, 4, 8, 16, 32, 64} {
		for _, n := range []int{0, 1, w - 1, w, w + 1, 3*w + 2, 1000} {
			v := randomVector64(n, uint64(n*w+3))
			want := twoPhaseSum(v, w)
			if got := SumWidth(v, w); !sameBits(got, want) {
				t.Errorf("SumWidth(n=%d, w=%d) = %v, want %v", n, w, got, want)
			}
		}
	}
}

func TestSumWidth_DefaultWidthIsSum(t *testing.T) {
	v := randomVector64(999, 99)
	if a, b := Sum(v), SumWidth(v, Width); !sameBits(a, b) {
		t.Errorf("Sum = %v, SumWidth(Width) = %v", a, b)
	}
}

func TestSumWidth_PanicOnBadWidth(t *testing.T) {
	for _, w := range []int{0, -1, -4, 3, 6, 12} {
		t.Run(fmt.Sprintf("width=%d", w), func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("SumWidth(width=%d) did not panic", w)
				}
			}()
			SumWidth([]float64{1, 2, 3}, w)
		})
	}
}

func TestSplitTail(t *testing.T) {
	for _, w := range []int{1, 2, 4, 8} {
		for n := 0; n <= 33; n++ {
			full, tail := SplitTail(n, w)
			if full+tail != n {
				t.Errorf("SplitTail(%d, %d) = (%d, %d), does not cover n", n, w, full, tail)
			}
			if full%w != 0 {
				t.Errorf("SplitTail(%d, %d) full = %d, not a multiple of width", n, w, full)
			}
			if tail < 0 || tail >= w {
				t.Errorf("SplitTail(%d, %d) tail = %d, want [0, %d)", n, w, tail, w)
			}
		}
	}
	if full, tail := SplitTail(5, 4); full != 4 || tail != 1 {
		t.Errorf("SplitTail(5, 4) = (%d, %d), want (4, 1)", full, tail)
	}
}

func BenchmarkSum(b *testing.B) {
	for _, n := range []int{16, 1024, 1 << 16} {
		v := randomVector64(n, 1)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.SetBytes(int64(n * 8))
			for b.Loop() {
				_ = Sum(v)
			}
		})
	}
}

func BenchmarkSumWidth(b *testing.B) {
	v := randomVector64(1<<16, 1)
	for _, w := range []int{1, 2, 4, 8, 16} {
		b.Run(fmt.Sprintf("w=%d", w), func(b *testing.B) {
			b.SetBytes(int64(len(v) * 8))
			for b.Loop() {
				_ = SumWidth(v, w)
			}
		})
	}
}
