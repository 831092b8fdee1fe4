// Package workerpool provides a bounded goroutine pool with backpressure.
//
// Resolving a selection tree fans out into many small store reads (an order's
// items, an item's sides and upsells). The pool caps how many of those reads
// run at once across all in-flight requests, so a deep query cannot spawn
// unbounded goroutines.
//
//	pool := workerpool.New(8)
//	defer pool.Shutdown()
//
//	pool.FanOut(fetchA, fetchB, fetchC) // runs concurrently, returns when all done
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when all workers are busy and the task
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit and SubmitWait after Shutdown has been
// called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
//
// Senders enqueue under a read lock and Shutdown closes the queue under the
// write lock, so a send can never hit a closed channel: every task accepted
// before Shutdown is guaranteed to run.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once

	mu     sync.RWMutex
	closed bool
}

// New creates a Pool with the given number of workers.
// size must be > 0.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		// Buffer equal to 2× the worker count so bursts can be absorbed.
		tasks: make(chan func(), size*2),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task for execution.
// It returns immediately — it never blocks.
//   - Returns ErrPoolFull if the task queue is at capacity.
//   - Returns ErrPoolClosed if Shutdown has been called.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait is like Submit but blocks until a slot is available.
// Returns ErrPoolClosed if Shutdown has already begun; a call that is mid-send
// when Shutdown starts completes its enqueue and the task still runs.
func (p *Pool) SubmitWait(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	p.tasks <- task
	return nil
}

// FanOut runs every task through the pool and waits for all of them to
// finish. Tasks that cannot be enqueued (pool shutting down) run inline on
// the calling goroutine, so FanOut always completes all tasks.
func (p *Pool) FanOut(tasks ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for _, task := range tasks {
		task := task
		wrapped := func() {
			defer wg.Done()
			task()
		}
		if err := p.SubmitWait(wrapped); err != nil {
			wrapped()
		}
	}

	wg.Wait()
}

// Shutdown stops accepting new tasks, runs everything already queued, waits
// for all in-flight tasks to complete, and releases the worker goroutines.
// It is safe to call multiple times.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		// No sender can be mid-send past this point (they enqueue under
		// the read lock and check closed first), so closing is safe.
		close(p.tasks)
		p.wg.Wait()
	})
}

// worker drains the task channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun executes task, recovering from panics so a bad task doesn't kill
// the worker goroutine.
func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
