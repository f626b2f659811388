package video

import "testing"

func blankViewportScreen(t *testing.T) *Screen {
	t.Helper()
	s, err := NewScreen(0, 0, map[Tile][]Cell{BLANK: ViewportCells(0, 0)})
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	return s
}

func TestComputeWritePanicsOnEmptyCells(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty cells")
		}
	}()
	ComputeWrite(NewTileLibrary(), NewTileMap(), blankViewportScreen(t), NewReleasePool(), someTile(1), nil)
}

func TestComputeWriteS1ReusesExistingSlot(t *testing.T) {
	library := NewTileLibrary()
	target := someTile(0x42)
	library.Set(5, target)
	tilemap := NewTileMap()
	screen := blankViewportScreen(t)

	plan := ComputeWrite(library, tilemap, screen, NewReleasePool(), target, []Cell{{0, 0}})
	if len(plan.LibWrites) != 0 {
		t.Fatalf("S1 should not write the library: got %v", plan.LibWrites)
	}
	if len(plan.MapWrites) != 1 || plan.MapWrites[0].Slot != 5 {
		t.Fatalf("S1 should point the cell at slot 5: got %v", plan.MapWrites)
	}
}

func TestComputeWriteS1SkipsNoOpCells(t *testing.T) {
	library := NewTileLibrary()
	target := someTile(0x42)
	library.Set(5, target)
	tilemap := NewTileMap()
	tilemap.Set(Cell{0, 0}, 5)
	screen := blankViewportScreen(t)

	plan := ComputeWrite(library, tilemap, screen, NewReleasePool(), target, []Cell{{0, 0}})
	if len(plan.MapWrites) != 0 {
		t.Fatalf("cell already at slot 5 should produce no map write: got %v", plan.MapWrites)
	}
}

func TestComputeWriteS2ReusesReleasedSlot(t *testing.T) {
	library := NewTileLibrary()
	old := someTile(0x10)
	library.Set(7, old)
	pool := NewReleasePool()
	pool.Add(old)
	tilemap := NewTileMap()
	screen := blankViewportScreen(t)

	target := someTile(0x99)
	plan := ComputeWrite(library, tilemap, screen, pool, target, []Cell{{1, 1}})

	if len(plan.LibWrites) != 1 || plan.LibWrites[0].Slot != 7 || plan.LibWrites[0].Tile != target {
		t.Fatalf("S2 should load target into the released slot: got %v", plan.LibWrites)
	}
	if !plan.ReleasedValid || plan.Released != old {
		t.Fatalf("S2 should report the displaced tile: valid=%v released=%v", plan.ReleasedValid, plan.Released)
	}
	if !plan.ReleasedWasLastSlot {
		t.Fatalf("slot 7 was old's only slot, ReleasedWasLastSlot should be true")
	}
	if len(plan.MapWrites) != 1 || plan.MapWrites[0].Slot != 7 {
		t.Fatalf("expected one map write to slot 7: got %v", plan.MapWrites)
	}
}

func TestComputeWriteS2SkipsSlotsNotInPool(t *testing.T) {
	library := NewTileLibrary()
	notReleased := someTile(0x11)
	released := someTile(0x22)
	library.Set(0, notReleased)
	library.Set(1, released)
	pool := NewReleasePool()
	pool.Add(released)
	tilemap := NewTileMap()
	screen := blankViewportScreen(t)

	target := someTile(0x99)
	plan := ComputeWrite(library, tilemap, screen, pool, target, []Cell{{2, 2}})
	if len(plan.LibWrites) != 1 || plan.LibWrites[0].Slot != 1 {
		t.Fatalf("expected slot 1 (the released one) to be reused: got %v", plan.LibWrites)
	}
}

func TestComputeWriteS3ConsolidatesDuplicateAndRedirects(t *testing.T) {
	// Fresh library: every slot holds BLANK, so HasDuplicates is true and
	// the release pool is empty, forcing the consolidation branch (S3)
	// for any tile that is not yet in the library.
	library := NewTileLibrary()
	tilemap := NewTileMap()
	screen := blankViewportScreen(t)

	target := someTile(0x55)
	plan := ComputeWrite(library, tilemap, screen, NewReleasePool(), target, []Cell{{0, 0}})

	if len(plan.LibWrites) != 1 || plan.LibWrites[0].Tile != target {
		t.Fatalf("S3 should write target into the chosen slot: got %v", plan.LibWrites)
	}
	chosen := plan.LibWrites[0].Slot
	if chosen == 0 {
		t.Fatalf("S3 should prefer a slot with zero total map uses over slot 0, which the whole tilemap points at")
	}
	if len(plan.MapWrites) != 1 || plan.MapWrites[0].Cell != (Cell{0, 0}) || plan.MapWrites[0].Slot != chosen {
		t.Fatalf("expected the target cell redirected to the chosen slot: got %v", plan.MapWrites)
	}
}

func TestComputeWriteS4EvictsSlotAbsentFromScreen(t *testing.T) {
	library := NewTileLibrary()
	for i := 0; i < LibrarySlots; i++ {
		library.Set(uint8(i), someTile(byte(i)))
	}
	if library.HasDuplicates() {
		t.Fatalf("setup: library should have no duplicates")
	}
	tilemap := NewTileMap()

	// FULL is not among someTile(0..255), so the library cannot already
	// hold it and S1 cannot apply.
	target := FULL
	s, err := NewScreen(0, 0, map[Tile][]Cell{target: {{0, 0}}})
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}

	plan := ComputeWrite(library, tilemap, s, NewReleasePool(), target, []Cell{{0, 0}})
	if len(plan.LibWrites) != 1 {
		t.Fatalf("S4 should write exactly one library slot: got %v", plan.LibWrites)
	}
	evicted := plan.LibWrites[0].Slot
	if _, ok := s.TileAt(Cell{0, 0}); !ok {
		t.Fatalf("setup: screen has no tile at (0,0)")
	}
	if library.Tile(evicted) == target {
		t.Fatalf("evicted slot should not already hold target")
	}
	// Slot 0 (tile someTile(0) == BLANK) is not present on screen and is
	// the lowest such index, so S4 evicts it; the default tilemap already
	// points cell (0,0) at slot 0, so the library write alone suffices.
	if evicted != 0 {
		t.Fatalf("expected eviction of slot 0, got %d", evicted)
	}
	if len(plan.MapWrites) != 0 {
		t.Fatalf("cell (0,0) already points at the evicted slot, expected zero map writes: got %v", plan.MapWrites)
	}
}
