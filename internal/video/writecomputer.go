package video

// MapWrite is a single tilemap cell->slot assignment.
type MapWrite struct {
	Cell Cell
	Slot uint8
}

// LibWrite is a single library slot<-tile load.
type LibWrite struct {
	Slot uint8
	Tile Tile
}

// WritePlan is the pure result of ComputeWrite: the map and library
// writes needed to make tile T appear at cells C, plus, when strategy S2
// freed a slot, the tile that slot previously held.
type WritePlan struct {
	MapWrites []MapWrite
	LibWrites []LibWrite

	// Released, when ReleasedValid is true, is the tile whose slot was
	// reused by strategy S2. ReleasedWasLastSlot reports whether that
	// slot was the tile's only remaining slot in the library — if so the
	// caller should retire the tile from the release pool.
	Released            Tile
	ReleasedValid       bool
	ReleasedWasLastSlot bool
}

// ComputeWrite is the per-write planner, choosing between four strategies
// in strict priority order (reuse an existing library slot, reuse a
// released slot, consolidate a duplicated slot, or force an eviction). It
// is a pure function: library, tilemap, screen and pool are read-only
// inputs, never mutated. cells must be non-empty; passing an empty set is
// a programmer error (the caller should never invoke this strategy with
// no work to do), not a recoverable condition.
func ComputeWrite(library *TileLibrary, tilemap *TileMap, screen *Screen, pool *ReleasePool, target Tile, cells []Cell) WritePlan {
	if len(cells) == 0 {
		panic("video: ComputeWrite called with empty cell set")
	}

	if slots := library.Slots(target); len(slots) > 0 {
		return computeS1(tilemap, screen, slots, target, cells)
	}
	if pool.Len() > 0 {
		if plan, ok := computeS2(library, tilemap, target, cells, pool); ok {
			return plan
		}
	}
	if library.HasDuplicates() {
		return computeS3(library, tilemap, screen, target, cells)
	}
	return computeS4(library, tilemap, screen, target, cells)
}

// candidateOrder sorts slots by (fewest on-screen uses, fewest total map
// uses, smallest index) — the shared ordering criterion behind S1 and the
// slot-to-overwrite choice in S3.
func candidateOrder(tilemap *TileMap, screen *Screen, slots []uint8) {
	onScreen := make(map[uint8]int, len(slots))
	total := make(map[uint8]int, len(slots))
	for _, s := range slots {
		onScreen[s] = tilemap.CountOnScreen(s, screen.screenPositions)
		total[s] = tilemap.TotalUses(s)
	}
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0; j-- {
			a, b := slots[j-1], slots[j]
			if lessCandidate(onScreen[a], total[a], a, onScreen[b], total[b], b) {
				break
			}
			slots[j-1], slots[j] = slots[j], slots[j-1]
		}
	}
}

func lessCandidate(onA, totA int, a uint8, onB, totB int, b uint8) bool {
	if onA != onB {
		return onA < onB
	}
	if totA != totB {
		return totA < totB
	}
	return a < b
}

func filterNoOps(tilemap *TileMap, cells []Cell, slot uint8) []MapWrite {
	writes := make([]MapWrite, 0, len(cells))
	for _, c := range SortCells(cells) {
		if tilemap.Slot(c) != slot {
			writes = append(writes, MapWrite{Cell: c, Slot: slot})
		}
	}
	return writes
}

// computeS1 reuses an already-library-resident tile: zero library writes,
// map-writes only.
func computeS1(tilemap *TileMap, screen *Screen, slots []uint8, target Tile, cells []Cell) WritePlan {
	candidateOrder(tilemap, screen, slots)
	slot := slots[0]
	return WritePlan{MapWrites: filterNoOps(tilemap, cells, slot)}
}

// computeS2 reuses the lowest-indexed released slot.
func computeS2(library *TileLibrary, tilemap *TileMap, target Tile, cells []Cell, pool *ReleasePool) (WritePlan, bool) {
	for slot := 0; slot < LibrarySlots; slot++ {
		old := library.Tile(uint8(slot))
		if !pool.Contains(old) {
			continue
		}
		remaining := library.Slots(old)
		wasLast := len(remaining) == 1
		plan := WritePlan{
			LibWrites:           []LibWrite{{Slot: uint8(slot), Tile: target}},
			Released:            old,
			ReleasedValid:       true,
			ReleasedWasLastSlot: wasLast,
		}
		plan.MapWrites = filterNoOps(tilemap, cells, uint8(slot))
		return plan, true
	}
	return WritePlan{}, false
}

// computeS3 consolidates a duplicated slot, redirecting any cell that
// must keep displaying the displaced tile to the surviving merge slot.
func computeS3(library *TileLibrary, tilemap *TileMap, screen *Screen, target Tile, cells []Cell) WritePlan {
	dupSlots := library.DuplicateSlots()
	candidateOrder(tilemap, screen, dupSlots)
	w := dupSlots[0]
	displaced := library.Tile(w)

	var others []uint8
	for _, s := range library.Slots(displaced) {
		if s != w {
			others = append(others, s)
		}
	}
	// merge target preference: most total map uses, then smallest index
	best := others[0]
	bestUses := tilemap.TotalUses(best)
	for _, s := range others[1:] {
		uses := tilemap.TotalUses(s)
		if uses > bestUses || (uses == bestUses && s < best) {
			best, bestUses = s, uses
		}
	}
	merge := best

	var redirects []MapWrite
	for _, cell := range tilemap.Positions(w) {
		if _, visible := screen.screenPositions[cell]; !visible {
			continue
		}
		if desired, ok := screen.TileAt(cell); ok && desired == displaced {
			redirects = append(redirects, MapWrite{Cell: cell, Slot: merge})
		}
	}

	plan := WritePlan{
		LibWrites: []LibWrite{{Slot: w, Tile: target}},
	}
	plan.MapWrites = append(plan.MapWrites, redirects...)
	plan.MapWrites = append(plan.MapWrites, rawMapWrites(cells, w)...)
	plan.MapWrites = dedupeFilterNoOps(tilemap, plan.MapWrites)
	return plan
}

// computeS4 forces eviction of a slot whose tile is absent from the
// current screen entirely.
func computeS4(library *TileLibrary, tilemap *TileMap, screen *Screen, target Tile, cells []Cell) WritePlan {
	present := make(map[Tile]struct{}, len(screen.Tiles()))
	for _, t := range screen.Tiles() {
		present[t] = struct{}{}
	}
	for slot := 0; slot < LibrarySlots; slot++ {
		if _, ok := present[library.Tile(uint8(slot))]; ok {
			continue
		}
		return WritePlan{
			LibWrites: []LibWrite{{Slot: uint8(slot), Tile: target}},
			MapWrites: filterNoOps(tilemap, cells, uint8(slot)),
		}
	}
	panic("video: no evictable slot found for a screen with <=256 distinct tiles")
}

// rawMapWrites builds map-writes for cells -> slot without checking
// against current tilemap state. Used by S3, which passes the result
// through dedupeFilterNoOps, so a cell that already points at slot is
// dropped there.
func rawMapWrites(cells []Cell, slot uint8) []MapWrite {
	sorted := SortCells(cells)
	writes := make([]MapWrite, len(sorted))
	for i, c := range sorted {
		writes[i] = MapWrite{Cell: c, Slot: slot}
	}
	return writes
}

// dedupeFilterNoOps sorts writes by cell, drops any whose slot already
// matches the tilemap's current assignment, and resolves duplicate cell
// entries (last write wins, matching the encoder's overall commit order)
// — needed because S3's redirect set and target-cell set could in theory
// overlap at a cell boundary.
func dedupeFilterNoOps(tilemap *TileMap, writes []MapWrite) []MapWrite {
	byCell := make(map[Cell]uint8, len(writes))
	for _, w := range writes {
		byCell[w.Cell] = w.Slot
	}
	cells := make([]Cell, 0, len(byCell))
	for c := range byCell {
		cells = append(cells, c)
	}
	cells = SortCells(cells)
	out := make([]MapWrite, 0, len(cells))
	for _, c := range cells {
		slot := byCell[c]
		if tilemap.Slot(c) != slot {
			out = append(out, MapWrite{Cell: c, Slot: slot})
		}
	}
	return out
}
