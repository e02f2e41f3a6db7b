// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tilegen schedules tile painting onto one dedicated background
// worker.
//
// # Overview
//
// A tiled page (a web page, a map, a long document) is drawn as a grid of
// textures. When part of the page changes, the compositor schedules a
// TileSet: a rectangular band of tiles belonging to one Page, plus the
// subset of those tiles that are dirty. The Generator paints scheduled sets
// one at a time, in submission order, on its own goroutine.
//
//	gen := tilegen.NewGenerator(tilegen.WithPaintWorkers(4))
//	if err := gen.Start(); err != nil {
//	    return err
//	}
//	defer gen.Close()
//
//	set, _ := tilegen.NewTileSet(page, tilegen.Region{X: 0, Y: 2, Cols: 4, Rows: 2})
//	set.MarkAllDirty()
//	_ = gen.ScheduleTileSet(set)
//
// # Coalescing
//
// While a set is waiting, scheduling another set for the same page and
// region replaces it in place. The newer set carries the latest dirty tiles
// and keeps the earlier queue position, so rapid invalidation (scrolling,
// animation) never grows the queue and never paints stale content first.
// Dirty tiles are not merged: the newest request fully supersedes.
//
// # Cancellation
//
// Before destroying a page's textures, call RemoveSetsWithPage. It drops
// every waiting set for that page and, if one of its sets is being painted,
// blocks until painting finishes. When it returns no work for the page is
// queued or running, and the page's resources may be released.
//
// RemoveSetsWithPage must not be called from inside Page.PaintTile for the
// page being painted: the worker would wait on itself.
//
// # Painting
//
// The Page interface is the rasterizer. Dirty tiles of one set may be
// painted concurrently by a small worker pool (WithPaintWorkers); the set
// as a whole is still one synchronous step for the queue. Pages that also
// implement TextureProvider have each painted tile uploaded through
// gpucontext.TextureUpdater.
package tilegen
