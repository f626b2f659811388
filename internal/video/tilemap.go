package video

// TileMap mirrors the controller's 50x100 grid of library-slot indices.
// It owns both the forward grid and the reverse index slot -> set of
// cells; every mutation updates both sides in one step, and no exported
// method allows writing the forward grid directly (see DESIGN.md).
type TileMap struct {
	grid    [MapRows][MapCols]uint8
	reverse [LibrarySlots]map[Cell]struct{}
}

// NewTileMap returns a TileMap in its initial state: every cell holds
// slot 0, and reverse[0] contains all 5000 cells.
func NewTileMap() *TileMap {
	m := &TileMap{}
	for i := range m.reverse {
		m.reverse[i] = make(map[Cell]struct{})
	}
	for r := 0; r < MapRows; r++ {
		for c := 0; c < MapCols; c++ {
			cell := Cell{Row: r, Col: c}
			m.reverse[0][cell] = struct{}{}
		}
	}
	return m
}

// Slot returns the library slot currently assigned to cell.
func (m *TileMap) Slot(cell Cell) uint8 {
	return m.grid[cell.Row][cell.Col]
}

// Set assigns slot to cell, updating the forward grid and both the old
// and new slot's reverse sets. A no-op write (slot already assigned) is
// a harmless but wasted call; callers are expected to filter those out
// before calling Set so that every emitted write actually changes state.
func (m *TileMap) Set(cell Cell, slot uint8) {
	old := m.grid[cell.Row][cell.Col]
	if old == slot {
		return
	}
	delete(m.reverse[old], cell)
	m.grid[cell.Row][cell.Col] = slot
	m.reverse[slot][cell] = struct{}{}
}

// Positions returns a snapshot slice of every cell currently assigned to
// slot, sorted by (row, col) for deterministic iteration.
func (m *TileMap) Positions(slot uint8) []Cell {
	out := make([]Cell, 0, len(m.reverse[slot]))
	for cell := range m.reverse[slot] {
		out = append(out, cell)
	}
	return SortCells(out)
}

// CountOnScreen returns the number of cell in set currently mapped to
// slot. Used by the WriteComputer's "fewest current on-screen uses"
// ordering criterion.
func (m *TileMap) CountOnScreen(slot uint8, set map[Cell]struct{}) int {
	n := 0
	for cell := range set {
		if m.Slot(cell) == slot {
			n++
		}
	}
	return n
}

// TotalUses returns the number of cells mapped to slot across the whole
// tilemap. Used by the WriteComputer's "fewest total map uses" ordering
// criterion.
func (m *TileMap) TotalUses(slot uint8) int {
	return len(m.reverse[slot])
}
