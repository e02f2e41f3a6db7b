// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import (
	"sync"
	"sync/atomic"
)

// Generator paints scheduled tile sets on one dedicated worker goroutine.
//
// Sets are painted one at a time in the order they were first scheduled.
// A set scheduled for a page and region that is already waiting replaces
// the waiting set in place. RemoveSetsWithPage guarantees that no set of a
// page is waiting or being painted when it returns.
//
// Thread safety: all methods are safe for concurrent use.
type Generator struct {
	opts    options
	painter *tilePainter

	// mu is the queue lock. It guards everything below up to requestMu
	// and is the lock of completed.
	mu        sync.Mutex
	pending   pendingQueue
	current   *TileSet
	waiters   int // goroutines blocked in RemoveSetsWithPage
	started   bool
	closed    bool
	stats     Stats
	completed *sync.Cond // broadcast after a painted set when waiters > 0

	// requestMu is the lock of newRequest. The worker acquires it before
	// releasing mu, so a producer cannot signal between the worker's empty
	// check and its wait.
	requestMu  sync.Mutex
	newRequest *sync.Cond

	state     atomic.Int32
	ready     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewGenerator creates a generator. The worker does not run until Start;
// sets scheduled before that stay queued.
func NewGenerator(opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Generator{
		opts:    o,
		painter: newTilePainter(o.tileWidth, o.tileHeight, o.paintWorkers, o.debugLabels),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	g.completed = sync.NewCond(&g.mu)
	g.newRequest = sync.NewCond(&g.requestMu)
	return g
}

// Start launches the worker goroutine and waits until it is ready.
//
// The ready hook, if any, runs on the worker before it accepts work. If the
// hook fails, Start returns its error and the generator is closed for new
// work; Close must still be called to release resources.
func (g *Generator) Start() error {
	g.mu.Lock()
	switch {
	case g.closed:
		g.mu.Unlock()
		return ErrClosed
	case g.started:
		g.mu.Unlock()
		return ErrAlreadyStarted
	}
	g.started = true
	g.mu.Unlock()

	errc := make(chan error, 1)
	go g.run(errc)
	return <-errc
}

// run is the worker goroutine.
func (g *Generator) run(errc chan<- error) {
	defer close(g.done)
	defer g.setState(StateStopped)

	if err := g.readyToRun(); err != nil {
		Logger().Warn("tilegen: ready hook failed", "error", err)
		g.mu.Lock()
		g.closed = true
		g.mu.Unlock()
		errc <- err
		return
	}
	close(g.ready)
	Logger().Info("tilegen: generator ready",
		"paint_workers", g.painter.workers.Workers(),
		"tile_width", g.opts.tileWidth,
		"tile_height", g.opts.tileHeight)
	errc <- nil

	for g.waitForWork() {
		g.drain()
	}
}

// readyToRun runs the ready hook on the worker goroutine.
func (g *Generator) readyToRun() error {
	if p := g.opts.provider; p != nil {
		Logger().Info("tilegen: using device",
			"adapter", p.AdapterInfo().Name,
			"surface_format", p.SurfaceFormat().String())
	}
	if g.opts.readyHook == nil {
		return nil
	}
	return g.opts.readyHook(g.opts.provider)
}

// waitForWork blocks while the queue is empty. It returns false once the
// generator is closed.
func (g *Generator) waitForWork() bool {
	g.mu.Lock()
	for g.pending.len() == 0 && !g.closed {
		g.setState(StateIdle)
		g.requestMu.Lock()
		g.mu.Unlock()
		g.newRequest.Wait()
		g.requestMu.Unlock()
		g.mu.Lock()
	}
	ok := !g.closed
	if ok {
		g.setState(StateDraining)
	}
	g.mu.Unlock()
	return ok
}

// drain paints queued sets until the queue is empty or the generator closes.
// Painting happens without the queue lock so producers are never blocked
// by a slow rasterizer.
func (g *Generator) drain() {
	for {
		g.mu.Lock()
		if g.closed {
			g.mu.Unlock()
			return
		}
		set := g.pending.popFront()
		if set == nil {
			g.mu.Unlock()
			return
		}
		g.current = set
		g.setState(StateExecuting)
		g.mu.Unlock()

		tiles := g.painter.paint(set)
		Logger().Debug("tilegen: painted tile set",
			"region", set.region,
			"bounds", set.region.Bounds(g.opts.tileWidth, g.opts.tileHeight),
			"tiles", tiles)

		g.mu.Lock()
		g.current = nil
		set.release()
		g.stats.Painted++
		g.stats.TilesPainted += uint64(tiles) //nolint:gosec // tile count is never negative
		g.setState(StateDraining)
		if g.waiters > 0 {
			g.completed.Broadcast()
		}
		g.mu.Unlock()
	}
}

// ScheduleTileSet queues set for painting and wakes the worker.
//
// If a set for the same page and region is already waiting, set replaces
// it at the waiting set's position and the old set is discarded without
// merging its dirty tiles. A set being painted is not replaced; a new
// request for its region is queued behind it.
//
// The generator owns set after a successful call.
func (g *Generator) ScheduleTileSet(set *TileSet) error {
	if set == nil {
		return ErrNilTileSet
	}

	superseded, queued, err := g.enqueue(set)
	if err != nil {
		return err
	}

	if superseded != nil {
		Logger().Debug("tilegen: coalesced tile set", "region", set.region, "dirty", set.DirtyCount())
	} else {
		Logger().Debug("tilegen: scheduled tile set", "region", set.region, "dirty", set.DirtyCount(), "queued", queued)
	}

	g.requestMu.Lock()
	g.newRequest.Signal()
	g.requestMu.Unlock()
	return nil
}

// enqueue pushes set under the queue lock and returns the set it
// superseded, if any, and the resulting queue length.
func (g *Generator) enqueue(set *TileSet) (superseded *TileSet, queued int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, 0, ErrClosed
	}
	if !set.scheduled.CompareAndSwap(false, true) {
		return nil, 0, ErrAlreadyScheduled
	}
	superseded = g.pending.push(set)
	g.stats.Scheduled++
	if superseded != nil {
		superseded.release()
		g.stats.Coalesced++
	}
	return superseded, g.pending.len(), nil
}

// RemoveSetsWithPage drops every waiting set of page and, if a set of page
// is being painted, blocks until it finishes.
//
// When RemoveSetsWithPage returns, no set of page is queued or being
// painted, so the caller may release the page's textures. It returns
// immediately when none of page's sets is being painted. Sets of other
// pages are not affected.
//
// It must not be called from Page.PaintTile of the page being painted.
func (g *Generator) RemoveSetsWithPage(page Page) {
	if page == nil || !comparablePage(page) {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := g.removePageLocked(page)

	if g.current == nil || g.current.page != page {
		if len(removed) > 0 {
			Logger().Debug("tilegen: removed tile sets", "count", len(removed))
		}
		return
	}

	Logger().Debug("tilegen: waiting for tile set being painted",
		"region", g.current.region, "removed", len(removed))
	g.stats.Waits++
	g.waiters++
	for g.current != nil && g.current.page == page {
		g.completed.Wait()
	}
	g.waiters--

	// Sets of page scheduled by other goroutines during the wait.
	if late := g.removePageLocked(page); len(late) > 0 {
		Logger().Debug("tilegen: removed tile sets scheduled while waiting", "count", len(late))
	}
}

// removePageLocked drops and releases every waiting set of page.
// Caller must hold g.mu.
func (g *Generator) removePageLocked(page Page) []*TileSet {
	removed := g.pending.removePage(page)
	for _, s := range removed {
		s.release()
	}
	g.stats.Removed += uint64(len(removed))
	return removed
}

// Close stops the generator. The set being painted, if any, finishes;
// waiting sets are discarded. Close waits for the worker to exit and is
// safe to call multiple times.
func (g *Generator) Close() {
	g.closeOnce.Do(func() {
		g.mu.Lock()
		g.closed = true
		started := g.started
		g.mu.Unlock()

		g.requestMu.Lock()
		g.newRequest.Broadcast()
		g.requestMu.Unlock()

		if started {
			<-g.done
		}

		g.mu.Lock()
		dropped := g.pending.drain()
		for _, s := range dropped {
			s.release()
		}
		g.stats.Dropped += uint64(len(dropped))
		g.mu.Unlock()

		g.painter.close()
		g.setState(StateStopped)
		Logger().Info("tilegen: generator closed", "dropped", len(dropped))
	})
}

// Ready returns a channel closed once the worker has run its ready hook
// and accepts work.
func (g *Generator) Ready() <-chan struct{} {
	return g.ready
}

// IsRunning reports whether the worker is running and accepting work.
func (g *Generator) IsRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.started || g.closed {
		return false
	}
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}

// State returns the worker's current state.
func (g *Generator) State() State {
	return State(g.state.Load())
}

// PendingCount returns the number of sets waiting to be painted.
// The set being painted is not counted.
func (g *Generator) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending.len()
}

// Stats returns a snapshot of the generator's counters.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

func (g *Generator) setState(s State) {
	g.state.Store(int32(s))
}
