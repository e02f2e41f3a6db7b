// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/gogpu/tilegen/internal/parallel"
)

// TileSet is one deferred paint request: a region of a page together with
// the tiles in that region that need repainting.
//
// A producer builds a set, marks its dirty tiles and hands it to
// Generator.ScheduleTileSet. From then on the set belongs to the generator;
// the producer must not mark it again. A set is painted at most once.
type TileSet struct {
	page   Page
	region Region
	dirty  *parallel.DirtyRegion

	scheduled atomic.Bool
	painted   atomic.Bool
}

// NewTileSet creates a set for region of page with no dirty tiles.
func NewTileSet(page Page, region Region) (*TileSet, error) {
	if page == nil {
		return nil, ErrNilPage
	}
	if !comparablePage(page) {
		return nil, fmt.Errorf("%w: %T", ErrInvalidPage, page)
	}
	if !region.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegion, region)
	}
	return &TileSet{
		page:   page,
		region: region,
		dirty:  parallel.NewDirtyRegion(region.Cols, region.Rows),
	}, nil
}

// Page returns the page the set belongs to.
func (s *TileSet) Page() Page {
	return s.page
}

// Region returns the tile region covered by the set.
func (s *TileSet) Region() Region {
	return s.region
}

// SameRegion reports whether s and other request the same page and region.
// Dirty tiles are not compared.
func (s *TileSet) SameRegion(other *TileSet) bool {
	if s == nil || other == nil {
		return false
	}
	return s.page == other.page && s.region == other.region
}

// MarkDirty marks page tile (col, row) for repainting.
// Tiles outside the set's region are ignored.
func (s *TileSet) MarkDirty(col, row int) {
	if !s.region.Contains(col, row) {
		return
	}
	s.dirty.Mark(col-s.region.X, row-s.region.Y)
}

// MarkAllDirty marks every tile of the region for repainting.
func (s *TileSet) MarkAllDirty() {
	s.dirty.MarkAll()
}

// IsDirty reports whether page tile (col, row) is marked for repainting.
func (s *TileSet) IsDirty(col, row int) bool {
	if !s.region.Contains(col, row) {
		return false
	}
	return s.dirty.IsDirty(col-s.region.X, row-s.region.Y)
}

// DirtyCount returns the number of dirty tiles in the set.
func (s *TileSet) DirtyCount() int {
	return s.dirty.Count()
}

// Paint paints every dirty tile of the set on the calling goroutine.
// It is meant for callers that drive painting themselves; sets handed to
// a Generator are painted by the generator. Repeated calls do nothing.
func (s *TileSet) Paint() {
	defaultPainter.paint(s)
}

// takeDirty returns the dirty tiles in page coordinates and clears them.
func (s *TileSet) takeDirty() [][2]int {
	cells := s.dirty.GetAndClear()
	for i := range cells {
		cells[i][0] += s.region.X
		cells[i][1] += s.region.Y
	}
	return cells
}

// release drops the set's pending work. Called when the set is painted,
// superseded by a newer set, or removed by cancellation.
func (s *TileSet) release() {
	s.dirty.Clear()
}

func (s *TileSet) String() string {
	return fmt.Sprintf("tileset(%T %v dirty=%d/%d)", s.page, s.region, s.dirty.Count(), s.region.TileCount())
}

// comparablePage reports whether page can be used as a queue key.
// Sets are matched with ==, which panics for slice, map and func types.
func comparablePage(page Page) bool {
	return reflect.TypeOf(page).Comparable()
}
