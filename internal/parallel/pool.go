package parallel

import (
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that execute batches of work.
//
// The tile generator uses one pool to paint the dirty tiles of a single
// tile set concurrently. ExecuteAll blocks until the whole batch is done,
// so a caller sees the batch as one synchronous operation.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// work is shared by all workers.
	work chan func()

	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, a single worker is used. A single-worker
// pool starts no goroutines: its batches run on the caller.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}

	p := &WorkerPool{
		workers: workers,
		work:    make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	if workers > 1 {
		p.wg.Add(workers)
		for range workers {
			go p.worker()
		}
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			p.drain()
			return
		case fn := <-p.work:
			fn()
		}
	}
}

// drain runs whatever is still buffered when the pool closes.
func (p *WorkerPool) drain() {
	for {
		select {
		case fn := <-p.work:
			fn()
		default:
			return
		}
	}
}

// ExecuteAll runs every function in work and waits for all of them.
// With a single worker, or a single item, the work runs on the calling
// goroutine. After Close, work also runs on the calling goroutine so a
// batch is never silently dropped.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if p.workers == 1 || len(work) == 1 || !p.IsRunning() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))

	for _, fn := range work {
		wrapped := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.work <- wrapped:
		case <-p.done:
			wrapped()
		}
	}

	wg.Wait()
}

// Close stops the workers after running any buffered work.
// Close must not race with ExecuteAll; it is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool has not been closed.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
