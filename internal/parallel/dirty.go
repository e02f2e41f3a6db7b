package parallel

import (
	"math/bits"
	"sync/atomic"
)

// DirtyRegion tracks which cells of a tile set need repainting using an
// atomic bitmap. Cell coordinates are local to the set: (0,0) is the
// set's first tile.
//
// The bitmap uses one bit per cell, packed into uint64 words.
// All methods are safe for concurrent use without external synchronization.
type DirtyRegion struct {
	// words is the bitmap. Bit index = row * cols + col.
	words []atomic.Uint64

	cols int
	rows int
}

// NewDirtyRegion creates a dirty bitmap for cols x rows cells.
// All cells start clean. Returns nil if dimensions are zero or negative.
func NewDirtyRegion(cols, rows int) *DirtyRegion {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	total := cols * rows
	return &DirtyRegion{
		words: make([]atomic.Uint64, (total+63)/64),
		cols:  cols,
		rows:  rows,
	}
}

// Mark marks the cell at (col, row) dirty.
// Out-of-range coordinates are ignored.
func (d *DirtyRegion) Mark(col, row int) {
	if col < 0 || col >= d.cols || row < 0 || row >= d.rows {
		return
	}
	idx := row*d.cols + col
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkAll marks every cell dirty.
func (d *DirtyRegion) MarkAll() {
	total := d.cols * d.rows
	full := total / 64

	for i := range full {
		d.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		d.words[full].Store((uint64(1) << rem) - 1)
	}
}

// Clear marks every cell clean.
func (d *DirtyRegion) Clear() {
	for i := range d.words {
		d.words[i].Store(0)
	}
}

// IsDirty reports whether the cell at (col, row) is dirty.
// Returns false for out-of-range coordinates.
func (d *DirtyRegion) IsDirty(col, row int) bool {
	if col < 0 || col >= d.cols || row < 0 || row >= d.rows {
		return false
	}
	idx := row*d.cols + col
	return d.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// IsEmpty reports whether no cell is dirty.
func (d *DirtyRegion) IsEmpty() bool {
	for i := range d.words {
		if d.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of dirty cells.
func (d *DirtyRegion) Count() int {
	n := 0
	for i := range d.words {
		n += bits.OnesCount64(d.words[i].Load())
	}
	return n
}

// GetAndClear atomically takes all dirty cells and clears them.
// Cells are returned in row-major order as [2]int{col, row}.
func (d *DirtyRegion) GetAndClear() [][2]int {
	var cells [][2]int
	total := d.cols * d.rows

	for wi := range d.words {
		word := d.words[wi].Swap(0)
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			idx := wi*64 + bit
			if idx >= total {
				break
			}
			cells = append(cells, [2]int{idx % d.cols, idx / d.cols})
			word &^= 1 << bit
		}
	}

	return cells
}
