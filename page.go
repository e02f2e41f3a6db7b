// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import (
	"image"

	"github.com/gogpu/gpucontext"
)

// Page owns the tiles a TileSet paints and knows how to rasterize them.
//
// Page values are compared with == to decide which sets belong to the
// same page, so the dynamic type must be comparable; implement Page on a
// pointer type.
type Page interface {
	// PaintTile rasterizes tile (col, row) into dst. dst is tile-local:
	// its bounds start at (0,0) and span one tile. dst is cleared before
	// the call and must not be retained afterwards.
	//
	// With more than one paint worker, PaintTile is called concurrently
	// for distinct tiles of the same set.
	PaintTile(col, row int, dst *image.RGBA)
}

// TextureProvider is implemented by pages that keep a texture per tile.
// After a tile is painted, its pixels are uploaded to the texture returned
// for it. A nil texture skips the upload.
type TextureProvider interface {
	TileTexture(col, row int) gpucontext.TextureUpdater
}
