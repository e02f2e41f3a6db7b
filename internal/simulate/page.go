package simulate

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tilegen/texture"
)

// tints gives each page generation its own hue so reloads are visible.
var tints = []color.RGBA{
	{R: 0x3A, G: 0x6E, B: 0xA5, A: 0xFF},
	{R: 0xA5, G: 0x5A, B: 0x3A, A: 0xFF},
	{R: 0x4E, G: 0x9A, B: 0x52, A: 0xFF},
	{R: 0x84, G: 0x4E, B: 0x9A, A: 0xFF},
}

// docPage is a synthetic document page. Each tile is a vertical gradient
// over the page height, tinted by the page generation.
type docPage struct {
	gen      int
	rows     int
	tileSize int
	grid     *texture.Grid

	painted atomic.Int64
}

func newDocPage(gen, cols, rows, tileSize int) (*docPage, error) {
	grid, err := texture.NewGrid(cols, rows, tileSize, tileSize)
	if err != nil {
		return nil, err
	}
	return &docPage{
		gen:      gen,
		rows:     rows,
		tileSize: tileSize,
		grid:     grid,
	}, nil
}

// PaintTile is safe for concurrent calls on distinct tiles.
func (p *docPage) PaintTile(col, row int, dst *image.RGBA) {
	tint := tints[p.gen%len(tints)]
	pageHeight := p.rows * p.tileSize
	b := dst.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		// Lighter towards the bottom of the page.
		k := (row*p.tileSize + y) * 0xFF / pageHeight
		c := color.RGBA{
			R: mix(tint.R, k),
			G: mix(tint.G, k),
			B: mix(tint.B, k),
			A: 0xFF,
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
	// One-pixel tile seam on the left edge.
	if col > 0 {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst.SetRGBA(b.Min.X, y, color.RGBA{A: 0xFF})
		}
	}
	p.painted.Add(1)
}

func (p *docPage) TileTexture(col, row int) gpucontext.TextureUpdater {
	if tex := p.grid.TextureAt(col, row); tex != nil {
		return tex
	}
	return nil
}

// mix blends v towards white by k/255.
func mix(v uint8, k int) uint8 {
	return uint8(int(v) + (0xFF-int(v))*k/0xFF/2) //nolint:gosec // result is within [v, 255]
}
