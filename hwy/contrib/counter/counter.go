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

// Package counter provides a monotonic counter that any number of
// goroutines can increment and read concurrently.
//
// Usage:
//
//	var c counter.Counter
//	pool.ParallelForAtomic(8, func(int) {
//	    for range 100000 {
//	        c.Increment()
//	    }
//	})
//	c.Load() // 800000
package counter

import (
	"math"
	"sync"
)

// Counter is a non-negative count guarded by its own mutex. The zero value
// is a counter at 0, ready to use.
//
// Every Increment and Load enters the same critical section exactly once,
// so operations on one Counter are totally ordered and none is lost.
// Distinct counters share nothing.
//
// The count saturates at math.MaxInt64 instead of wrapping.
//
// A Counter must not be copied after first use.
type Counter struct {
	mu    sync.Mutex
	count int64
}

// New returns a counter at 0.
func New() *Counter {
	return &Counter{}
}

// Increment adds 1 to the count, unless it is already math.MaxInt64.
func (c *Counter) Increment() {
	c.mu.Lock()
	if c.count != math.MaxInt64 {
		c.count++
	}
	c.mu.Unlock()
}

// Load returns the current count.
func (c *Counter) Load() int64 {
	c.mu.Lock()
	n := c.count
	c.mu.Unlock()
	return n
}
