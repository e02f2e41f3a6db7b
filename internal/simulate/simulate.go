// Package simulate drives a tile generator with a synthetic scrolling page.
//
// Each step schedules the visible band of tiles and invalidates the band
// shown in the previous step again, so requests for regions that have not
// been painted yet coalesce. Every ReloadEvery steps the page is replaced
// and the old page's work is cancelled with RemoveSetsWithPage.
package simulate

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tilegen"
	"github.com/gogpu/tilegen/internal/config"
)

// pollInterval is how often Run checks whether the generator went idle.
const pollInterval = 2 * time.Millisecond

// Result summarizes a finished simulation.
type Result struct {
	Steps int
	Pages int

	// Stats are the generator counters after all work was painted.
	Stats tilegen.Stats

	// TilesPainted counts PaintTile calls on the final page.
	TilesPainted int64

	// Image is the composite of the final page's textures.
	Image *image.RGBA
}

// Run simulates cfg.Simulate.Steps scroll steps and waits until every
// scheduled set has been painted, coalesced or removed.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	cols, rows, ts := cfg.Page.Cols, cfg.Page.Rows, cfg.Page.TileSize
	viewport := cfg.Simulate.ViewportRows

	page, err := newDocPage(0, cols, rows, ts)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	gen := tilegen.NewGenerator(
		tilegen.WithPaintWorkers(cfg.Generator.Workers),
		tilegen.WithTileSize(ts, ts),
		tilegen.WithDebugLabels(cfg.Generator.Labels),
		tilegen.WithReadyHook(func(gpucontext.DeviceProvider) error {
			page.grid.PaintPlaceholders()
			return nil
		}),
	)
	defer gen.Close()

	if err := gen.Start(); err != nil {
		return nil, fmt.Errorf("start generator: %w", err)
	}

	pages := 1
	prevTop := -1
	maxTop := rows - viewport
	for step := range cfg.Simulate.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if every := cfg.Simulate.ReloadEvery; every > 0 && step > 0 && step%every == 0 {
			gen.RemoveSetsWithPage(page)
			if page, err = newDocPage(pages, cols, rows, ts); err != nil {
				return nil, fmt.Errorf("reload page: %w", err)
			}
			page.grid.PaintPlaceholders()
			pages++
			prevTop = -1
			logger.Debug("page reloaded", "step", step, "generation", page.gen)
		}

		top := ScrollTop(step, maxTop)
		if err := scheduleBand(gen, page, cols, top, viewport); err != nil {
			return nil, err
		}
		if prevTop >= 0 && prevTop != top {
			if err := scheduleBand(gen, page, cols, prevTop, viewport); err != nil {
				return nil, err
			}
		}
		prevTop = top

		logger.Debug("scrolled", "step", step, "top", top, "pending", gen.PendingCount())
	}

	if err := waitIdle(ctx, gen); err != nil {
		return nil, err
	}

	res := &Result{
		Steps:        cfg.Simulate.Steps,
		Pages:        pages,
		Stats:        gen.Stats(),
		TilesPainted: page.painted.Load(),
		Image:        image.NewRGBA(page.grid.Bounds()),
	}
	page.grid.Composite(res.Image, image.Point{})
	return res, nil
}

// ScrollTop returns the first visible tile row at step for a viewport that
// scrolls down to maxTop and back up again.
func ScrollTop(step, maxTop int) int {
	if maxTop <= 0 {
		return 0
	}
	pos := step % (2 * maxTop)
	if pos > maxTop {
		pos = 2*maxTop - pos
	}
	return pos
}

// scheduleBand invalidates every tile of the band starting at row top.
func scheduleBand(gen *tilegen.Generator, page *docPage, cols, top, height int) error {
	set, err := tilegen.NewTileSet(page, tilegen.Region{X: 0, Y: top, Cols: cols, Rows: height})
	if err != nil {
		return fmt.Errorf("create tile set: %w", err)
	}
	set.MarkAllDirty()
	if err := gen.ScheduleTileSet(set); err != nil {
		return fmt.Errorf("schedule %v: %w", set.Region(), err)
	}
	return nil
}

// waitIdle blocks until the generator has no queued or executing set.
func waitIdle(ctx context.Context, gen *tilegen.Generator) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for gen.PendingCount() != 0 || gen.State() != tilegen.StateIdle {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// WritePNG encodes img as PNG to path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
