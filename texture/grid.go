// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// ErrInvalidDimensions is returned when a grid is created with a
// non-positive size.
var ErrInvalidDimensions = errors.New("texture: invalid dimensions")

// Grid holds the textures of one tiled page.
//
// Tiles are stored in a flat slice, index = row*cols + col. Textures are
// allocated once; the grid itself is immutable after NewGrid, and each
// texture synchronizes its own uploads.
type Grid struct {
	textures []*PixmapTexture

	cols int
	rows int

	tileWidth  int
	tileHeight int
}

// NewGrid allocates cols x rows transparent textures of tileWidth x tileHeight.
func NewGrid(cols, rows, tileWidth, tileHeight int) (*Grid, error) {
	if cols <= 0 || rows <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d tiles of %dx%d", ErrInvalidDimensions, cols, rows, tileWidth, tileHeight)
	}

	g := &Grid{
		textures:   make([]*PixmapTexture, cols*rows),
		cols:       cols,
		rows:       rows,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
	}
	for i := range g.textures {
		g.textures[i] = NewPixmapTexture(tileWidth, tileHeight)
	}
	return g, nil
}

// TextureAt returns the texture for tile (col, row), or nil if out of range.
func (g *Grid) TextureAt(col, row int) *PixmapTexture {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return g.textures[row*g.cols+col]
}

// PaintPlaceholders fills every texture with the default checkerboard.
func (g *Grid) PaintPlaceholders() {
	for _, tex := range g.textures {
		tex.paint(func(img *image.RGBA) {
			PaintPlaceholder(img)
		})
	}
}

// Composite copies every tile into dst, with the grid's top-left corner
// placed at at. Tiles falling outside dst are clipped.
func (g *Grid) Composite(dst xdraw.Image, at image.Point) {
	for row := range g.rows {
		for col := range g.cols {
			origin := at.Add(image.Pt(col*g.tileWidth, row*g.tileHeight))
			g.textures[row*g.cols+col].read(func(img *image.RGBA) {
				xdraw.Copy(dst, origin, img, img.Bounds(), xdraw.Src, nil)
			})
		}
	}
}

// Bounds returns the pixel bounds covered by the whole grid.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.cols*g.tileWidth, g.rows*g.tileHeight)
}

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// TileSize returns the tile dimensions in pixels.
func (g *Grid) TileSize() (width, height int) { return g.tileWidth, g.tileHeight }

// Format returns the pixel format shared by all textures in the grid.
func (g *Grid) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
