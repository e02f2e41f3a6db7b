// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import "errors"

// Sentinel errors for tilegen.
var (
	// ErrClosed is returned when work is scheduled on, or Start is called
	// for, a generator that has been closed.
	ErrClosed = errors.New("tilegen: generator is closed")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("tilegen: generator already started")

	// ErrNilTileSet is returned when a nil set is scheduled.
	ErrNilTileSet = errors.New("tilegen: nil tile set")

	// ErrNilPage is returned when a tile set is created without a page.
	ErrNilPage = errors.New("tilegen: nil page")

	// ErrInvalidPage is returned when a page's dynamic type cannot be
	// compared with ==, such as a slice, map or func type.
	ErrInvalidPage = errors.New("tilegen: page type is not comparable")

	// ErrInvalidRegion is returned when a region has no tiles or a negative origin.
	ErrInvalidRegion = errors.New("tilegen: invalid region")

	// ErrAlreadyScheduled is returned when the same TileSet instance is
	// scheduled twice. A set belongs to the generator once scheduled.
	ErrAlreadyScheduled = errors.New("tilegen: tile set already scheduled")
)
