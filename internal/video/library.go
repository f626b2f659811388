package video

// TileLibrary mirrors the controller's 256-slot tile pattern memory. Like
// TileMap, it owns both the forward array and the reverse index tile ->
// set of slots, and keeps them in lockstep on every mutation.
type TileLibrary struct {
	slots   [LibrarySlots]Tile
	reverse map[Tile]map[uint8]struct{}
}

// NewTileLibrary returns a TileLibrary in its initial state: every slot
// holds BLANK, and reverse[BLANK] contains every slot index.
func NewTileLibrary() *TileLibrary {
	l := &TileLibrary{
		reverse: make(map[Tile]map[uint8]struct{}),
	}
	blankSlots := make(map[uint8]struct{}, LibrarySlots)
	for i := 0; i < LibrarySlots; i++ {
		blankSlots[uint8(i)] = struct{}{}
	}
	l.reverse[BLANK] = blankSlots
	return l
}

// Tile returns the tile pattern currently held in slot i.
func (l *TileLibrary) Tile(i uint8) Tile {
	return l.slots[i]
}

// Set writes tile into slot i, updating the forward array and both the
// old and new tile's reverse slot sets.
func (l *TileLibrary) Set(i uint8, tile Tile) {
	old := l.slots[i]
	if old == tile {
		return
	}
	if set, ok := l.reverse[old]; ok {
		delete(set, i)
		if len(set) == 0 {
			delete(l.reverse, old)
		}
	}
	l.slots[i] = tile
	if l.reverse[tile] == nil {
		l.reverse[tile] = make(map[uint8]struct{})
	}
	l.reverse[tile][i] = struct{}{}
}

// Slots returns every slot index currently holding tile, sorted
// ascending.
func (l *TileLibrary) Slots(tile Tile) []uint8 {
	set := l.reverse[tile]
	out := make([]uint8, 0, len(set))
	for slot := range set {
		out = append(out, slot)
	}
	insertionSortSlots(out)
	return out
}

// HasDuplicates reports whether any tile pattern currently occupies more
// than one slot.
func (l *TileLibrary) HasDuplicates() bool {
	for _, set := range l.reverse {
		if len(set) > 1 {
			return true
		}
	}
	return false
}

// DuplicateSlots returns every slot that shares its tile pattern with at
// least one other slot, across all duplicated tiles.
func (l *TileLibrary) DuplicateSlots() []uint8 {
	var out []uint8
	for _, set := range l.reverse {
		if len(set) > 1 {
			for slot := range set {
				out = append(out, slot)
			}
		}
	}
	insertionSortSlots(out)
	return out
}

// Clone returns a deep, independent copy for the encoder's hypothetical
// swap evaluation: mutating the clone never affects the original.
func (l *TileLibrary) Clone() *TileLibrary {
	clone := &TileLibrary{
		slots:   l.slots,
		reverse: make(map[Tile]map[uint8]struct{}, len(l.reverse)),
	}
	for tile, set := range l.reverse {
		cp := make(map[uint8]struct{}, len(set))
		for slot := range set {
			cp[slot] = struct{}{}
		}
		clone.reverse[tile] = cp
	}
	return clone
}

func insertionSortSlots(slots []uint8) {
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && slots[j] < slots[j-1]; j-- {
			slots[j], slots[j-1] = slots[j-1], slots[j]
		}
	}
}
