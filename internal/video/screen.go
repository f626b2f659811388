package video

import "fmt"

// Screen is an immutable target frame: the viewport's pixel offsets and
// the tile -> set-of-cells mapping covering exactly the cells visible
// through that viewport. Screens are produced by a FrameSource and never
// mutated afterward.
type Screen struct {
	X, Y      int
	positions map[Tile]map[Cell]struct{}

	// cached derived views, computed once at construction
	tiles           []Tile
	screenPositions map[Cell]struct{}
	cellTile        map[Cell]Tile
}

// NewScreen builds a Screen from normalized offsets and a tile -> cells
// mapping. The union of all cell sets must equal exactly the viewport's
// visible cells (ViewportCells(x, y)); every cell must be in bounds.
// NewScreen does not itself re-derive the viewport from (x,y) and check
// coverage — that is FrameSource's contract (see frame_source.go) — but
// it does validate cell bounds and reject more than LibrarySlots distinct
// tiles, since those are invariants the core itself depends on.
func NewScreen(x, y int, positions map[Tile][]Cell) (*Screen, error) {
	x = ((x % VirtualWidth) + VirtualWidth) % VirtualWidth
	y = ((y % VirtualHeight) + VirtualHeight) % VirtualHeight

	if len(positions) > LibrarySlots {
		return nil, fmt.Errorf("%w: %d distinct tiles, limit %d", ErrTooManyUniqueTiles, len(positions), LibrarySlots)
	}

	s := &Screen{
		X:               x,
		Y:               y,
		positions:       make(map[Tile]map[Cell]struct{}, len(positions)),
		screenPositions: make(map[Cell]struct{}),
		cellTile:        make(map[Cell]Tile),
	}
	for tile, cells := range positions {
		set := make(map[Cell]struct{}, len(cells))
		for _, cell := range cells {
			if err := validateCell(cell); err != nil {
				return nil, err
			}
			set[cell] = struct{}{}
			s.screenPositions[cell] = struct{}{}
			s.cellTile[cell] = tile
		}
		if len(set) == 0 {
			continue
		}
		s.positions[tile] = set
		s.tiles = append(s.tiles, tile)
	}
	s.tiles = SortTiles(s.tiles)
	return s, nil
}

// Tiles returns the distinct tiles visible on this screen, sorted by
// lexicographic byte order.
func (s *Screen) Tiles() []Tile {
	return s.tiles
}

// CellsOf returns the cells where tile is displayed on this screen,
// sorted by (row, col). Returns nil if tile is not visible.
func (s *Screen) CellsOf(tile Tile) []Cell {
	set := s.positions[tile]
	if len(set) == 0 {
		return nil
	}
	out := make([]Cell, 0, len(set))
	for cell := range set {
		out = append(out, cell)
	}
	return SortCells(out)
}

// cellsOfSet returns the raw (unsorted) cell set for tile, for internal
// set-arithmetic use where sort order does not matter.
func (s *Screen) cellsOfSet(tile Tile) map[Cell]struct{} {
	return s.positions[tile]
}

// VisibleCells returns the full set of cells visible on this screen,
// sorted by (row, col).
func (s *Screen) VisibleCells() []Cell {
	out := make([]Cell, 0, len(s.screenPositions))
	for cell := range s.screenPositions {
		out = append(out, cell)
	}
	return SortCells(out)
}

// TileAt returns the tile visible at cell and true, or the zero Tile and
// false if cell is not part of this screen's viewport.
func (s *Screen) TileAt(cell Cell) (Tile, bool) {
	tile, ok := s.cellTile[cell]
	return tile, ok
}

// Equal reports whether two screens are structurally identical: same
// offsets and same tile -> cells mapping.
func (s *Screen) Equal(o *Screen) bool {
	if s.X != o.X || s.Y != o.Y {
		return false
	}
	if len(s.positions) != len(o.positions) {
		return false
	}
	for tile, set := range s.positions {
		oset, ok := o.positions[tile]
		if !ok || len(set) != len(oset) {
			return false
		}
		for cell := range set {
			if _, ok := oset[cell]; !ok {
				return false
			}
		}
	}
	return true
}
