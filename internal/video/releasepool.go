package video

// ReleasePool is the set of tiles whose final scripted appearance has
// passed; their library slots may be overwritten freely by the S2
// strategy. A tile re-enters the library only through the standard
// "not in library" path, never by being un-released.
type ReleasePool struct {
	tiles map[Tile]struct{}
}

// NewReleasePool returns an empty pool.
func NewReleasePool() *ReleasePool {
	return &ReleasePool{tiles: make(map[Tile]struct{})}
}

// Contains reports whether tile is currently releasable.
func (p *ReleasePool) Contains(tile Tile) bool {
	_, ok := p.tiles[tile]
	return ok
}

// Add marks tile as releasable.
func (p *ReleasePool) Add(tile Tile) {
	p.tiles[tile] = struct{}{}
}

// Remove retires tile from the pool, e.g. once its last library slot has
// been overwritten.
func (p *ReleasePool) Remove(tile Tile) {
	delete(p.tiles, tile)
}

// Len returns the number of tiles currently releasable.
func (p *ReleasePool) Len() int {
	return len(p.tiles)
}

// Clone returns an independent copy, for the encoder's hypothetical swap
// evaluation.
func (p *ReleasePool) Clone() *ReleasePool {
	cp := make(map[Tile]struct{}, len(p.tiles))
	for t := range p.tiles {
		cp[t] = struct{}{}
	}
	return &ReleasePool{tiles: cp}
}
