// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// spreading independent work items over goroutines.
//
// The primitives in hwycore never start goroutines on their own. A Pool is
// how callers opt in: vec.BatchSum spreads rows over one, and hwyprobe uses
// one to hammer a shared counter from many goroutines at once.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(len(rows), func(start, end int) {
//	    for i := start; i < end; i++ {
//	        process(rows[i])
//	    }
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ajroetker/hwycore/hwy"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and reused until Close.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool

	// mu is held for reading while tasks are sent on workC and for
	// writing while workC is closed.
	mu sync.RWMutex
}

// task is one unit handed to a worker; done is signalled when fn returns.
type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New creates a pool with numWorkers persistent workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}

	hwy.Logger().Debug("workerpool: started", "workers", numWorkers)
	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.fn()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Work already queued completes.
// Calling Close multiple times is safe, including concurrently with
// Parallel* calls; after Close every Parallel* method runs on the calling
// goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed.Store(true)
		close(p.workC)
		p.mu.Unlock()
		hwy.Logger().Debug("workerpool: closed", "workers", p.numWorkers)
	})
}

// workersFor returns how many workers to use for units pieces of work, or
// 0 if the work should run inline on the caller.
func (p *Pool) workersFor(units int) int {
	if p.closed.Load() {
		return 0
	}
	workers := min(p.numWorkers, units)
	if workers <= 1 {
		return 0
	}
	return workers
}

// dispatch hands fn to workers goroutines and waits for all of them.
// If the pool was closed after workersFor, fn runs workers times on the
// caller instead; every fn passed here loops or claims a chunk from a
// shared cursor, so that still covers all the work.
func (p *Pool) dispatch(workers int, fn func()) {
	p.mu.RLock()
	if p.closed.Load() {
		p.mu.RUnlock()
		for range workers {
			fn()
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- task{fn: fn, done: &wg}
	}
	p.mu.RUnlock()
	wg.Wait()
}

// ParallelFor calls fn over [0, n) split into one contiguous range per
// worker. Blocks until all ranges are done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := p.workersFor(n)
	if workers == 0 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	var next atomic.Int64
	p.dispatch(workers, func() {
		start := int(next.Add(1)-1) * chunkSize
		if start >= n {
			return
		}
		fn(start, min(start+chunkSize, n))
	})
}

// ParallelForAtomic calls fn(i) for each i in [0, n), with workers pulling
// indices from a shared atomic cursor. This balances load when the cost of
// each index varies. Blocks until all indices are done.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.workersFor(n)
	if workers == 0 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	p.dispatch(workers, func() {
		for {
			i := int(next.Add(1) - 1)
			if i >= n {
				return
			}
			fn(i)
		}
	})
}

// ParallelForAtomicBatched is ParallelForAtomic with workers grabbing
// batchSize indices per atomic operation. fn receives [start, end).
func (p *Pool) ParallelForAtomicBatched(n, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	numBatches := (n + batchSize - 1) / batchSize
	workers := p.workersFor(numBatches)
	if workers == 0 {
		fn(0, n)
		return
	}

	var next atomic.Int64
	p.dispatch(workers, func() {
		for {
			start := int(next.Add(1)-1) * batchSize
			if start >= n {
				return
			}
			fn(start, min(start+batchSize, n))
		}
	})
}
