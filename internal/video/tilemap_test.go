package video

import "testing"

func TestNewTileMapAllSlotZero(t *testing.T) {
	m := NewTileMap()
	if got := m.Slot(Cell{0, 0}); got != 0 {
		t.Fatalf("cell (0,0): got slot %d, want 0", got)
	}
	if got := m.TotalUses(0); got != MapCells {
		t.Fatalf("slot 0 total uses: got %d, want %d", got, MapCells)
	}
	for s := 1; s < LibrarySlots; s++ {
		if got := m.TotalUses(uint8(s)); got != 0 {
			t.Fatalf("slot %d total uses: got %d, want 0", s, got)
		}
	}
}

func TestTileMapSetUpdatesBothSides(t *testing.T) {
	m := NewTileMap()
	cell := Cell{10, 20}
	m.Set(cell, 5)

	if got := m.Slot(cell); got != 5 {
		t.Fatalf("forward grid: got slot %d, want 5", got)
	}
	positions := m.Positions(5)
	if len(positions) != 1 || positions[0] != cell {
		t.Fatalf("reverse index for slot 5: got %v, want [%v]", positions, cell)
	}
	if _, ok := indexOf(m.Positions(0), cell); ok {
		t.Fatalf("cell should have been removed from slot 0's reverse set")
	}
}

func TestTileMapSetIsNoOpWhenUnchanged(t *testing.T) {
	m := NewTileMap()
	before := m.TotalUses(0)
	m.Set(Cell{0, 0}, 0)
	if after := m.TotalUses(0); after != before {
		t.Fatalf("no-op Set changed slot 0 use count: %d -> %d", before, after)
	}
}

func TestTileMapCountOnScreen(t *testing.T) {
	m := NewTileMap()
	m.Set(Cell{0, 0}, 1)
	m.Set(Cell{0, 1}, 1)
	m.Set(Cell{0, 2}, 2)

	set := map[Cell]struct{}{
		{0, 0}: {}, {0, 1}: {}, {0, 2}: {},
	}
	if got := m.CountOnScreen(1, set); got != 2 {
		t.Fatalf("CountOnScreen(1): got %d, want 2", got)
	}
}

func indexOf(cells []Cell, target Cell) (int, bool) {
	for i, c := range cells {
		if c == target {
			return i, true
		}
	}
	return -1, false
}
