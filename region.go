// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import (
	"fmt"
	"image"
)

// Region is a rectangular block of tiles in page tile coordinates.
//
// X and Y are the column and row of the first (top-left) tile; Cols and
// Rows are the block size. Regions are compared by value.
type Region struct {
	X    int
	Y    int
	Cols int
	Rows int
}

// Valid reports whether the region covers at least one tile and starts
// at a non-negative tile position.
func (r Region) Valid() bool {
	return r.X >= 0 && r.Y >= 0 && r.Cols > 0 && r.Rows > 0
}

// Contains reports whether tile (col, row) lies inside the region.
func (r Region) Contains(col, row int) bool {
	return col >= r.X && col < r.X+r.Cols && row >= r.Y && row < r.Y+r.Rows
}

// TileCount returns the number of tiles covered by the region.
func (r Region) TileCount() int {
	if !r.Valid() {
		return 0
	}
	return r.Cols * r.Rows
}

// Bounds returns the page-space pixel rectangle covered by the region
// for the given tile size.
func (r Region) Bounds(tileWidth, tileHeight int) image.Rectangle {
	return image.Rect(
		r.X*tileWidth,
		r.Y*tileHeight,
		(r.X+r.Cols)*tileWidth,
		(r.Y+r.Rows)*tileHeight,
	)
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.Cols, r.Rows)
}
