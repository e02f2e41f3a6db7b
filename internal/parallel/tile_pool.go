package parallel

import "sync"

// TilePool reuses tile buffers via sync.Pool, one pool per tile size.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool struct {
	// pools maps a [2]int{width, height} key to *sync.Pool.
	pools sync.Map
}

// NewTilePool creates an empty tile pool.
func NewTilePool() *TilePool {
	return &TilePool{}
}

// Get returns a zeroed tile buffer of the given size.
// Returns nil if width or height is zero or negative.
func (p *TilePool) Get(width, height int) *Tile {
	if width <= 0 || height <= 0 {
		return nil
	}

	tile := p.poolFor(width, height).Get().(*Tile)
	tile.Reset()
	return tile
}

// Put returns a tile to the pool. Nil tiles are ignored.
func (p *TilePool) Put(tile *Tile) {
	if tile == nil {
		return
	}
	if pool, ok := p.pools.Load([2]int{tile.Width, tile.Height}); ok {
		pool.(*sync.Pool).Put(tile)
	}
	// Unknown size: let GC reclaim the tile.
}

func (p *TilePool) poolFor(width, height int) *sync.Pool {
	key := [2]int{width, height}
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}

	pool := &sync.Pool{
		New: func() any {
			t := &Tile{Width: width, Height: height}
			t.Data = make([]byte, t.ByteSize())
			return t
		},
	}

	// Another goroutine may have stored one first; use theirs.
	actual, _ := p.pools.LoadOrStore(key, pool)
	return actual.(*sync.Pool)
}
