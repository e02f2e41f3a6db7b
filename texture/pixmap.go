// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Errors returned by texture uploads.
var (
	// ErrDataSize is returned when uploaded data does not match the region size.
	ErrDataSize = errors.New("texture: data size mismatch")

	// ErrOutOfBounds is returned when an upload region exceeds the texture.
	ErrOutOfBounds = errors.New("texture: region out of bounds")
)

// PixmapTexture is a CPU-backed RGBA texture.
//
// It accepts uploads through the same interfaces gogpu textures implement,
// which makes it a drop-in target for software pipelines and tests.
type PixmapTexture struct {
	mu      sync.RWMutex
	img     *image.RGBA
	uploads int
}

// NewPixmapTexture creates a transparent texture of the given size.
func NewPixmapTexture(width, height int) *PixmapTexture {
	return &PixmapTexture{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the texture width in pixels.
func (t *PixmapTexture) Width() int {
	return t.img.Rect.Dx()
}

// Height returns the texture height in pixels.
func (t *PixmapTexture) Height() int {
	return t.img.Rect.Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTexture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// UpdateData replaces the whole texture with data.
// Data must hold exactly Width*Height RGBA pixels.
func (t *PixmapTexture) UpdateData(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(data) != len(t.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), len(t.img.Pix))
	}
	copy(t.img.Pix, data)
	t.uploads++
	return nil
}

// UpdateRegion replaces the w x h sub-rectangle at (x, y) with densely
// packed RGBA rows from data.
func (t *PixmapTexture) UpdateRegion(x, y, w, h int, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := image.Rect(x, y, x+w, y+h)
	if w <= 0 || h <= 0 || !r.In(t.img.Rect) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, t.img.Rect)
	}
	rowBytes := w * 4
	if len(data) != rowBytes*h {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), rowBytes*h)
	}

	for row := range h {
		off := t.img.PixOffset(x, y+row)
		copy(t.img.Pix[off:off+rowBytes], data[row*rowBytes:(row+1)*rowBytes])
	}
	t.uploads++
	return nil
}

// Uploads returns how many successful uploads the texture has received.
func (t *PixmapTexture) Uploads() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.uploads
}

// Snapshot returns a copy of the current texture contents.
func (t *PixmapTexture) Snapshot() *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cp := image.NewRGBA(t.img.Rect)
	copy(cp.Pix, t.img.Pix)
	return cp
}

// paint runs fn with exclusive access to the backing image.
func (t *PixmapTexture) paint(fn func(img *image.RGBA)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.img)
}

// read runs fn with shared access to the backing image.
func (t *PixmapTexture) read(fn func(img *image.RGBA)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(t.img)
}

// Ensure PixmapTexture satisfies the gpucontext texture interfaces.
var (
	_ gpucontext.Texture              = (*PixmapTexture)(nil)
	_ gpucontext.TextureUpdater       = (*PixmapTexture)(nil)
	_ gpucontext.TextureRegionUpdater = (*PixmapTexture)(nil)
)
