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

// Package vec provides the float64 sum reduction.
//
// Sum walks its input as Width parallel lane accumulators followed by a
// scalar remainder pass:
//
//	data := []float64{1, 2, 3, 4, 5}
//	total := vec.Sum(data) // lanes [1 2 3 4] fold to 10, plus tail 5 = 15
//
// The lane loops are plain Go with independent accumulators, which the
// compiler can keep in vector registers; there is no assembly and no
// runtime dispatch, so a given input always produces the same bits.
// SumWidth exposes the same algorithm for other power-of-two widths, and
// BatchSum reduces many rows at once over a workerpool.Pool.
package vec
