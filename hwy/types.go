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

// Package hwy is the runtime layer shared by the hwycore primitives.
//
// It detects the SIMD instruction set of the host CPU, reports register
// widths, and owns the logger used by the hwy/contrib packages:
//
//	import "github.com/ajroetker/hwycore/hwy"
//
//	fmt.Println(hwy.CurrentName(), hwy.CurrentWidth())
//	lanes := hwy.MaxLanes[float64]() // 4 on AVX2
//
// The numeric kernels themselves live in hwy/contrib/vec and are written
// as lane-accumulator loops, so their results never depend on what was
// detected here.
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
// The reducers only operate on floating-point data.
type Lanes interface {
	Floats
}
