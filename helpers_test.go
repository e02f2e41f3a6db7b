// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/tilegen/texture"
)

// paintCall records one PaintTile invocation.
type paintCall struct {
	page     string
	col, row int
}

// recorder collects paint calls across pages in completion order.
type recorder struct {
	mu    sync.Mutex
	calls []paintCall
}

func (r *recorder) add(c paintCall) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []paintCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]paintCall, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recorder) forPage(name string) []paintCall {
	var out []paintCall
	for _, c := range r.snapshot() {
		if c.page == name {
			out = append(out, c)
		}
	}
	return out
}

// testPage is a Page that fills tiles with a solid color and records calls.
// If gate is non-nil, PaintTile blocks until it is closed. If entered is
// non-nil, PaintTile reports the tile before blocking.
type testPage struct {
	name    string
	rec     *recorder
	fill    color.RGBA
	gate    chan struct{}
	entered chan [2]int
	panicAt *[2]int
}

func newTestPage(name string, rec *recorder) *testPage {
	return &testPage{
		name: name,
		rec:  rec,
		fill: color.RGBA{R: 0x20, G: 0x40, B: 0xC0, A: 0xFF},
	}
}

// gated makes PaintTile block until release is called.
func (p *testPage) gated() *testPage {
	p.gate = make(chan struct{})
	p.entered = make(chan [2]int, 64)
	return p
}

func (p *testPage) release() {
	close(p.gate)
}

func (p *testPage) PaintTile(col, row int, dst *image.RGBA) {
	if p.entered != nil {
		p.entered <- [2]int{col, row}
	}
	if p.gate != nil {
		<-p.gate
	}
	if p.panicAt != nil && *p.panicAt == [2]int{col, row} {
		panic("rasterizer failure")
	}
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, p.fill)
		}
	}
	p.rec.add(paintCall{page: p.name, col: col, row: row})
}

// texturedPage uploads painted tiles into a texture grid.
type texturedPage struct {
	*testPage
	grid *texture.Grid
}

func (p *texturedPage) TileTexture(col, row int) gpucontext.TextureUpdater {
	if tex := p.grid.TextureAt(col, row); tex != nil {
		return tex
	}
	return nil
}

// failingTexture rejects every upload.
type failingTexture struct{}

func (failingTexture) UpdateData([]byte) error { return texture.ErrDataSize }

type failingPage struct {
	*testPage
}

func (failingPage) TileTexture(int, int) gpucontext.TextureUpdater { return failingTexture{} }

// panickingTexturePage paints normally but panics when asked for a
// tile's texture.
type panickingTexturePage struct {
	*testPage
}

func (panickingTexturePage) TileTexture(int, int) gpucontext.TextureUpdater {
	panic("texture lookup failure")
}

// sliceFillPage has a dynamic type that cannot be compared with ==.
type sliceFillPage []color.RGBA

func (sliceFillPage) PaintTile(int, int, *image.RGBA) {}

// boxedPage is a comparable type whose values may still panic on ==
// when inner holds a slice.
type boxedPage struct {
	inner any
}

func (boxedPage) PaintTile(int, int, *image.RGBA) {}

// fakeProvider is a headless gpucontext.DeviceProvider.
type fakeProvider struct{}

func (fakeProvider) Device() gpucontext.Device { return nil }
func (fakeProvider) Queue() gpucontext.Queue   { return nil }
func (fakeProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
func (fakeProvider) Adapter() gpucontext.Adapter { return nil }
func (fakeProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "test adapter"}
}

// newSet builds a tile set and marks the given page tiles dirty.
// With no tiles, the whole region is marked.
func newSet(t *testing.T, page Page, r Region, dirty ...[2]int) *TileSet {
	t.Helper()
	set, err := NewTileSet(page, r)
	if err != nil {
		t.Fatalf("NewTileSet(%v) error = %v", r, err)
	}
	if len(dirty) == 0 {
		set.MarkAllDirty()
	}
	for _, c := range dirty {
		set.MarkDirty(c[0], c[1])
	}
	return set
}

func mustSchedule(t *testing.T, g *Generator, set *TileSet) {
	t.Helper()
	if err := g.ScheduleTileSet(set); err != nil {
		t.Fatalf("ScheduleTileSet(%v) error = %v", set, err)
	}
}

func startGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g := NewGenerator(opts...)
	if err := g.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

// eventually polls cond until it holds or five seconds pass.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// waitIdle waits until the worker has painted painted sets and is idle.
func waitIdle(t *testing.T, g *Generator, painted uint64) {
	t.Helper()
	eventually(t, "generator idle", func() bool {
		return g.State() == StateIdle && g.PendingCount() == 0 && g.Stats().Painted == painted
	})
}

// waitEntered waits until page starts painting a tile.
func waitEntered(t *testing.T, p *testPage) [2]int {
	t.Helper()
	select {
	case c := <-p.entered:
		return c
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for %s to start painting", p.name)
		return [2]int{}
	}
}

// waiterCount returns the number of goroutines blocked in RemoveSetsWithPage.
func (g *Generator) waiterCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiters
}

// hasPage reports whether any queued or executing set belongs to page.
func (g *Generator) hasPage(page Page) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != nil && g.current.page == page {
		return true
	}
	for _, s := range g.pending.sets {
		if s.page == page {
			return true
		}
	}
	return false
}

// lockedBuffer is a bytes.Buffer safe for the worker and the test to share.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureLogs routes tilegen logging at Debug level into a buffer for the
// duration of the test.
func captureLogs(t *testing.T) *lockedBuffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	buf := &lockedBuffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return buf
}
