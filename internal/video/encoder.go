package video

import (
	"screenreel-dx/internal/debug"
)

// ScreenUpdate is the minimal set of library and tilemap writes that
// advances the hardware from the prior frame's state to the current
// target screen. Null is true when this frame's offsets match the
// previous frame's and it produced zero writes (the signal the
// StreamWriter coalesces into a delay command).
type ScreenUpdate struct {
	X, Y      int
	MapWrites []MapWrite
	LibWrites []LibWrite
	Null      bool
}

// FrameEncoder is the sequential, single-threaded per-frame driver. It
// owns one TileMap, one TileLibrary and one ReleasePool for the whole
// session; frame N's committed state is frame N+1's input, so a
// FrameEncoder instance must not be shared across concurrent encodes.
type FrameEncoder struct {
	library  *TileLibrary
	tilemap  *TileMap
	pool     *ReleasePool
	lifetime *FrameLifetime
	logger   *debug.Logger
}

// NewFrameEncoder returns an encoder starting from the controller's blank
// boot state (tilemap all slot 0, library all BLANK). logger may be nil.
func NewFrameEncoder(logger *debug.Logger) *FrameEncoder {
	return &FrameEncoder{
		library: NewTileLibrary(),
		tilemap: NewTileMap(),
		pool:    NewReleasePool(),
		logger:  logger,
	}
}

// TileMap exposes the encoder's live hardware mirror, e.g. for debug
// tooling that wants to inspect state after Encode.
func (e *FrameEncoder) TileMap() *TileMap { return e.tilemap }

// TileLibrary exposes the encoder's live library mirror.
func (e *FrameEncoder) TileLibrary() *TileLibrary { return e.library }

// Encode walks src in order and returns one ScreenUpdate per frame. It is
// the only mutating entry point on FrameEncoder; a given instance should
// be encoded from exactly once, starting from boot state.
func (e *FrameEncoder) Encode(src FrameSource) ([]ScreenUpdate, error) {
	if src.Len() == 0 {
		return nil, ErrEmptyInput
	}

	e.lifetime = NewFrameLifetime(BuildTileAppearanceIndex(src))
	updates := make([]ScreenUpdate, src.Len())
	havePrev := false
	prevX, prevY := 0, 0

	for i := 0; i < src.Len(); i++ {
		screen := src.Frame(i)
		update, err := e.encodeFrame(i, screen)
		if err != nil {
			return nil, err
		}
		update.Null = havePrev && update.X == prevX && update.Y == prevY &&
			len(update.MapWrites) == 0 && len(update.LibWrites) == 0
		updates[i] = update
		prevX, prevY = update.X, update.Y
		havePrev = true
	}
	return updates, nil
}

// encodeFrame applies the writes for one target screen and returns the
// frame's diff: for every tile the screen needs, it buckets the cells
// that must show it by their current slot, then for each bucket decides
// between writing the tile through the standard strategy ladder or
// swapping the bucket's own slot and repairing whatever it displaces,
// whichever costs fewer total writes.
func (e *FrameEncoder) encodeFrame(frameIndex int, screen *Screen) (ScreenUpdate, error) {
	var frameMap []MapWrite
	var frameLib []LibWrite

	for _, target := range screen.Tiles() {
		cellsT := screen.CellsOf(target)
		bySlot := bucketBySlot(e.tilemap, cellsT)

		for _, s := range sortedSlotKeys(bySlot) {
			inside := bySlot[s]
			if e.library.Tile(s) == target {
				continue
			}

			insideSet := cellSet(inside)
			oldTile := e.library.Tile(s)
			outside := computeOutside(e.tilemap, screen, s, insideSet, oldTile)

			stdPlan := ComputeWrite(e.library, e.tilemap, screen, e.pool, target, inside)
			stdTotal := len(stdPlan.MapWrites) + len(stdPlan.LibWrites)

			var swapPlan WritePlan
			swapTotal := 1
			if len(outside) > 0 {
				cloneLib := e.library.Clone()
				clonePool := e.pool.Clone()
				wasLastSlot := len(e.library.Slots(oldTile)) == 1
				cloneLib.Set(s, target)
				if wasLastSlot {
					clonePool.Remove(oldTile)
				}
				swapPlan = ComputeWrite(cloneLib, e.tilemap, screen, clonePool, oldTile, outside)
				swapTotal += len(swapPlan.MapWrites) + len(swapPlan.LibWrites)
			}

			useSwap := swapTotal < stdTotal
			if e.logger != nil {
				e.logger.LogEncoderf(debug.LogLevelTrace, "frame %d tile %s slot %d: std=%d swap=%d useSwap=%v",
					frameIndex, target, s, stdTotal, swapTotal, useSwap)
			}

			if useSwap {
				wasLastSlot := len(e.library.Slots(oldTile)) == 1
				e.library.Set(s, target)
				frameLib = append(frameLib, LibWrite{Slot: s, Tile: target})
				if wasLastSlot {
					e.pool.Remove(oldTile)
				}
				for _, w := range swapPlan.MapWrites {
					e.tilemap.Set(w.Cell, w.Slot)
					frameMap = append(frameMap, w)
				}
				for _, w := range swapPlan.LibWrites {
					e.library.Set(w.Slot, w.Tile)
					frameLib = append(frameLib, w)
				}
				if swapPlan.ReleasedValid && swapPlan.ReleasedWasLastSlot {
					e.pool.Remove(swapPlan.Released)
				}
			} else {
				for _, w := range stdPlan.LibWrites {
					e.library.Set(w.Slot, w.Tile)
					frameLib = append(frameLib, w)
				}
				for _, w := range stdPlan.MapWrites {
					e.tilemap.Set(w.Cell, w.Slot)
					frameMap = append(frameMap, w)
				}
				if stdPlan.ReleasedValid && stdPlan.ReleasedWasLastSlot {
					e.pool.Remove(stdPlan.Released)
				}
			}
		}
	}

	scheduled := e.commitLifetimes(screen)
	for _, t := range scheduled {
		e.pool.Add(t)
	}

	return ScreenUpdate{
		X:         screen.X,
		Y:         screen.Y,
		MapWrites: frameMap,
		LibWrites: frameLib,
	}, nil
}

// commitLifetimes drops this frame's leading appearance entry for every
// tile the frame used and returns the tiles whose last appearance was
// this frame — the release pool is only updated with them once the
// caller has finished every tile's writes for the frame, so a tile
// cannot be reused for its own slot within the same frame it vacates.
func (e *FrameEncoder) commitLifetimes(screen *Screen) []Tile {
	var scheduled []Tile
	for _, tile := range screen.Tiles() {
		if wasLast := e.lifetime.Commit(tile); wasLast {
			scheduled = append(scheduled, tile)
		}
	}
	return scheduled
}

func bucketBySlot(tilemap *TileMap, cells []Cell) map[uint8][]Cell {
	bySlot := make(map[uint8][]Cell)
	for _, c := range cells {
		s := tilemap.Slot(c)
		bySlot[s] = append(bySlot[s], c)
	}
	return bySlot
}

func sortedSlotKeys(m map[uint8][]Cell) []uint8 {
	out := make([]uint8, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	insertionSortSlots(out)
	return out
}

func cellSet(cells []Cell) map[Cell]struct{} {
	set := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

// computeOutside returns the cells currently mapped to slot s, visible on
// screen's viewport, not among the cells already destined for the new
// tile (insideSet), whose screen-desired tile is oldTile — the cells a
// swap of slot s would strand if left unrepaired.
func computeOutside(tilemap *TileMap, screen *Screen, s uint8, insideSet map[Cell]struct{}, oldTile Tile) []Cell {
	var out []Cell
	for _, cell := range tilemap.Positions(s) {
		if _, visible := screen.screenPositions[cell]; !visible {
			continue
		}
		if _, isInside := insideSet[cell]; isInside {
			continue
		}
		if desired, ok := screen.TileAt(cell); ok && desired == oldTile {
			out = append(out, cell)
		}
	}
	return out
}
