package video

import "testing"

func allBlankPositions() map[Tile][]Cell {
	return map[Tile][]Cell{BLANK: ViewportCells(0, 0)}
}

func TestNewScreenBuildsCellTileIndex(t *testing.T) {
	positions := allBlankPositions()
	s, err := NewScreen(0, 0, positions)
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	if len(s.Tiles()) != 1 || s.Tiles()[0] != BLANK {
		t.Fatalf("Tiles(): got %v, want [BLANK]", s.Tiles())
	}
	if len(s.VisibleCells()) != len(positions[BLANK]) {
		t.Fatalf("VisibleCells(): got %d, want %d", len(s.VisibleCells()), len(positions[BLANK]))
	}
	tile, ok := s.TileAt(Cell{0, 0})
	if !ok || tile != BLANK {
		t.Fatalf("TileAt(0,0): got %v, %v", tile, ok)
	}
}

func TestNewScreenRejectsTooManyTiles(t *testing.T) {
	positions := make(map[Tile][]Cell, LibrarySlots+1)
	for i := 0; i <= LibrarySlots; i++ {
		positions[distinctTile2(i)] = []Cell{{0, i % MapCols}}
	}
	if len(positions) != LibrarySlots+1 {
		t.Fatalf("setup: expected %d distinct tiles, got %d", LibrarySlots+1, len(positions))
	}
	if _, err := NewScreen(0, 0, positions); err == nil {
		t.Fatalf("expected ErrTooManyUniqueTiles")
	}
}

func TestNewScreenRejectsOutOfRangeCell(t *testing.T) {
	positions := map[Tile][]Cell{BLANK: {{MapRows, 0}}}
	if _, err := NewScreen(0, 0, positions); err == nil {
		t.Fatalf("expected ErrInvalidCell")
	}
}

func TestNewScreenNormalizesOffsets(t *testing.T) {
	s, err := NewScreen(-1, -1, allBlankPositions())
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	if s.X != VirtualWidth-1 || s.Y != VirtualHeight-1 {
		t.Fatalf("offsets not normalized: got (%d,%d)", s.X, s.Y)
	}
}

func TestScreenEqual(t *testing.T) {
	a, _ := NewScreen(0, 0, allBlankPositions())
	b, _ := NewScreen(0, 0, allBlankPositions())
	if !a.Equal(b) {
		t.Fatalf("structurally identical screens should be equal")
	}

	positions := allBlankPositions()
	full := someTile(0xAB)
	positions[BLANK] = positions[BLANK][1:]
	positions[full] = []Cell{{0, 0}}
	c, _ := NewScreen(0, 0, positions)
	if a.Equal(c) {
		t.Fatalf("screens with different tile assignment should not be equal")
	}
}
