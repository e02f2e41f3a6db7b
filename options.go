// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tilegen/internal/parallel"
)

// Option configures a Generator during creation.
//
// Example:
//
//	gen := tilegen.NewGenerator(
//	    tilegen.WithPaintWorkers(4),
//	    tilegen.WithTileSize(512, 512),
//	)
type Option func(*options)

// options holds optional configuration for Generator creation.
type options struct {
	paintWorkers int
	tileWidth    int
	tileHeight   int
	debugLabels  bool

	provider  gpucontext.DeviceProvider
	readyHook func(gpucontext.DeviceProvider) error
}

// defaultOptions returns the default generator options.
func defaultOptions() options {
	return options{
		paintWorkers: 1,
		tileWidth:    parallel.TileWidth,
		tileHeight:   parallel.TileHeight,
	}
}

// WithPaintWorkers sets how many goroutines paint the dirty tiles of one
// set. Sets are still painted one at a time. Values below 1 are ignored.
// With more than one worker, Page.PaintTile must be safe for concurrent
// calls on distinct tiles.
func WithPaintWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.paintWorkers = n
		}
	}
}

// WithTileSize sets the tile size in pixels. Non-positive sizes are ignored.
func WithTileSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.tileWidth = width
			o.tileHeight = height
		}
	}
}

// WithDebugLabels draws each painted tile's "col,row" in its top-left corner.
func WithDebugLabels(enabled bool) Option {
	return func(o *options) {
		o.debugLabels = enabled
	}
}

// WithDeviceProvider sets the GPU device provider handed to the ready hook.
// The generator never creates a device itself.
func WithDeviceProvider(provider gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithReadyHook sets a function run on the worker goroutine before it
// accepts work, for example to bind a GPU context and paint placeholder
// textures. A hook error is returned by Start and closes the generator.
//
// Example:
//
//	tilegen.WithReadyHook(func(gpucontext.DeviceProvider) error {
//	    grid.PaintPlaceholders()
//	    return nil
//	})
func WithReadyHook(hook func(gpucontext.DeviceProvider) error) Option {
	return func(o *options) {
		o.readyHook = hook
	}
}
