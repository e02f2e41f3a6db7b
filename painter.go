// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/tilegen/internal/parallel"
	"github.com/gogpu/tilegen/texture"
	"github.com/sourcegraph/conc/panics"
)

// defaultPainter serves TileSet.Paint: default tile size, no worker pool.
var defaultPainter = newTilePainter(parallel.TileWidth, parallel.TileHeight, 1, false)

// tilePainter rasterizes the dirty tiles of a set and uploads them.
type tilePainter struct {
	tileWidth  int
	tileHeight int
	labels     bool

	tiles   *parallel.TilePool
	workers *parallel.WorkerPool
}

func newTilePainter(tileWidth, tileHeight, workers int, labels bool) *tilePainter {
	return &tilePainter{
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		labels:     labels,
		tiles:      parallel.NewTilePool(),
		workers:    parallel.NewWorkerPool(workers),
	}
}

// paint paints the dirty tiles of set and returns how many were painted.
// It returns only after every tile is done. A set is painted at most once.
func (p *tilePainter) paint(set *TileSet) int {
	if !set.painted.CompareAndSwap(false, true) {
		Logger().Debug("tilegen: tile set already painted", "region", set.region)
		return 0
	}

	if set.dirty.IsEmpty() {
		return 0
	}
	cells := set.takeDirty()

	work := make([]func(), len(cells))
	for i, c := range cells {
		col, row := c[0], c[1]
		work[i] = func() {
			p.paintTile(set.page, col, row)
		}
	}
	p.workers.ExecuteAll(work)

	return len(cells)
}

// paintTile rasterizes one tile into a pooled buffer and uploads it.
// A panic anywhere in the step, rasterizer or upload, is logged and the
// tile is skipped; the calling worker keeps running.
func (p *tilePainter) paintTile(page Page, col, row int) {
	tile := p.tiles.Get(p.tileWidth, p.tileHeight)
	defer p.tiles.Put(tile)

	tile.X, tile.Y = col, row

	var pc panics.Catcher
	pc.Try(func() { p.renderTile(page, tile) })
	if r := pc.Recovered(); r != nil {
		Logger().Error("tilegen: paint panicked",
			"col", col, "row", row,
			"panic", fmt.Sprint(r.Value),
			"stack", string(r.Stack))
	}
}

// renderTile runs the page's rasterizer on tile, draws the debug label
// and uploads the pixels to the tile's texture, if the page has one.
func (p *tilePainter) renderTile(page Page, tile *parallel.Tile) {
	col, row := tile.X, tile.Y
	img := tile.Image()

	page.PaintTile(col, row, img)

	if p.labels {
		texture.DrawLabel(img, fmt.Sprintf("%d,%d", col, row))
	}

	tp, ok := page.(TextureProvider)
	if !ok {
		return
	}
	tex := tp.TileTexture(col, row)
	if tex == nil {
		return
	}
	if err := tex.UpdateData(tile.Data); err != nil {
		Logger().Warn("tilegen: texture upload failed",
			"col", col, "row", row, slog.Any("error", err))
	}
}

func (p *tilePainter) close() {
	p.workers.Close()
}
