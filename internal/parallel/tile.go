// Package parallel provides the tile buffers, dirty-cell bitmaps and the
// bounded worker pool used to paint tile sets for tilegen.
//
// A tiled page is divided into fixed-size tiles addressed by (column, row).
// Painting a tile happens into a pooled RGBA buffer that is handed to the
// page's rasterizer and then uploaded to the tile's texture.
//
//   - 256x256 tiles by default, matching the texture size of tiled pages
//   - Tile buffer reuse via sync.Pool, keyed by tile size
//   - Lock-free dirty tracking for the cells of a tile set
//   - A small worker pool to fan out the dirty tiles of one set
//
// Thread safety: Tile is NOT thread-safe. A tile buffer is owned by exactly
// one painting goroutine between TilePool.Get and TilePool.Put.
package parallel

import "image"

// Default tile dimensions.
const (
	// TileWidth is the default tile width in pixels.
	TileWidth = 256

	// TileHeight is the default tile height in pixels.
	TileHeight = 256

	// BytesPerPixel is the size of one RGBA pixel.
	BytesPerPixel = 4
)

// Tile is a pooled pixel buffer for one tile of a page.
//
// X and Y are page-space tile coordinates (column and row), not pixels.
type Tile struct {
	// X is the tile column.
	X int

	// Y is the tile row.
	Y int

	// Width is the tile width in pixels.
	Width int

	// Height is the tile height in pixels.
	Height int

	// Data holds Width*Height RGBA pixels, densely packed rows.
	Data []byte
}

// Reset zeroes the pixel data and clears the tile coordinates.
func (t *Tile) Reset() {
	clear(t.Data)
	t.X = 0
	t.Y = 0
}

// Image returns an *image.RGBA that shares memory with Data.
// The image bounds are tile-local: (0,0) is the top-left pixel of the tile.
func (t *Tile) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.Data,
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
}

// Stride returns the row stride in bytes.
func (t *Tile) Stride() int {
	return t.Width * BytesPerPixel
}

// ByteSize returns the size of the pixel data in bytes.
func (t *Tile) ByteSize() int {
	return t.Width * t.Height * BytesPerPixel
}
