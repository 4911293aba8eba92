// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bands splits surface work into horizontal row bands and runs them
// on a pool of goroutines.
package bands

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MinRows is the smallest band handed to a worker. Smaller surfaces run on
// the calling goroutine.
const MinRows = 16

// Pool runs band work on a fixed set of workers.
//
// Each worker has its own queue and steals from the others when its queue
// is empty, so bands of uneven cost still balance.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu orders enqueues against Close: bands are only queued while the
	// workers are guaranteed to drain them.
	mu sync.RWMutex
}

// New starts a pool with the given number of workers. If workers is 0 or
// negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			drain(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case work := <-q:
			work()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// Rows calls fn for consecutive row ranges [y0, y1) covering [0, height)
// and returns when all calls have finished. A nil or closed pool, or a
// height below 2*MinRows, runs fn once on the calling goroutine.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if p == nil || height < 2*MinRows {
		fn(0, height)
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		fn(0, height)
		return
	}

	n := min(p.workers, height/MinRows)
	step := (height + n - 1) / n

	var wg sync.WaitGroup
	for i, y0 := 0, 0; y0 < height; i, y0 = i+1, y0+step {
		y1 := min(y0+step, height)
		wg.Add(1)
		p.queues[i%p.workers] <- func() {
			defer wg.Done()
			fn(y0, y1)
		}
	}
	p.mu.RUnlock()
	wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// Close stops the workers after queued bands complete. Rows calls racing
// Close either queue before the workers stop or run on the caller. Safe to
// call more than once.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}
