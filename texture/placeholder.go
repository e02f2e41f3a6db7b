// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"image"
	"image/color"

	"github.com/gogpu/tilegen/internal/cache"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CheckerSize is the edge length of one placeholder checker square in pixels.
const CheckerSize = 16

// Placeholder checker colors.
var (
	checkerLight = color.RGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF}
	checkerDark  = color.RGBA{R: 0xD9, G: 0xD9, B: 0xD9, A: 0xFF}
)

// PaintPlaceholder fills dst with the default checkerboard shown for tiles
// that have not been painted yet.
func PaintPlaceholder(dst xdraw.Image) {
	b := dst.Bounds()
	light := image.NewUniform(checkerLight)
	dark := image.NewUniform(checkerDark)

	for y := b.Min.Y; y < b.Max.Y; y += CheckerSize {
		for x := b.Min.X; x < b.Max.X; x += CheckerSize {
			src := light
			if ((x-b.Min.X)/CheckerSize+(y-b.Min.Y)/CheckerSize)%2 == 1 {
				src = dark
			}
			sq := image.Rect(x, y, x+CheckerSize, y+CheckerSize).Intersect(b)
			xdraw.Draw(dst, sq, src, image.Point{}, xdraw.Src)
		}
	}
}

// labelCacheSize bounds the rendered labels kept for reuse.
const labelCacheSize = 256

// labels caches rendered label images by text.
var labels = cache.New[string, *image.NRGBA](labelCacheSize)

// DrawLabel draws s in the top-left corner of dst on a translucent white
// backing box, using the 7x13 fixed font. Rendered labels are cached.
func DrawLabel(dst xdraw.Image, s string) {
	if s == "" {
		return
	}
	label := labels.GetOrCreate(s, func() *image.NRGBA {
		return renderLabel(s)
	})

	b := dst.Bounds()
	r := label.Bounds().Add(b.Min).Intersect(b)
	xdraw.Draw(dst, r, label, image.Point{}, xdraw.Over)
}

// renderLabel renders s on its backing box into a new image at the origin.
func renderLabel(s string) *image.NRGBA {
	const pad = 2
	face := basicfont.Face7x13

	d := &font.Drawer{
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	width := d.MeasureString(s).Ceil()

	img := image.NewNRGBA(image.Rect(0, 0, width+2*pad, face.Height+2*pad))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xC0}), image.Point{}, xdraw.Src)

	d.Dst = img
	d.Dot = fixed.P(pad, pad+face.Ascent)
	d.DrawString(s)
	return img
}
