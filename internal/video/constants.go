// Package video implements the tile-library/tilemap hardware model, the
// greedy per-frame write-minimizing encoder, and the bit-exact stream
// codec that a tile-based video controller replays.
package video

// Hardware geometry. These are architectural constants of the target
// controller, not configuration: the tile library has exactly 256 slots,
// the tilemap is exactly 50x100 cells, and the viewport is exactly
// 400x300 pixels. None of these dimensions are meant to vary at runtime.
const (
	// TileWidth and TileHeight are the pixel dimensions of one tile.
	TileWidth  = 8
	TileHeight = 12

	// TileBytes is the size in bytes of one packed Tile pattern: one byte
	// per row, MSB is the leftmost pixel.
	TileBytes = TileHeight

	// MapRows and MapCols are the tilemap's fixed dimensions in cells.
	MapRows  = 50
	MapCols  = 100
	MapCells = MapRows * MapCols

	// LibrarySlots is the number of tile pattern slots in the controller's
	// tile library.
	LibrarySlots = 256

	// VirtualWidth and VirtualHeight are the full toroidal pixel space the
	// tilemap represents.
	VirtualWidth  = MapCols * TileWidth  // 800
	VirtualHeight = MapRows * TileHeight // 600

	// ViewportWidth and ViewportHeight are the visible pixel window.
	ViewportWidth  = 400
	ViewportHeight = 300

	// ViewportBaseCols and ViewportBaseRows are the minimum cell span the
	// viewport covers; an extra row/column is added when the pixel offset
	// is not tile-aligned.
	ViewportBaseCols = ViewportWidth / TileWidth   // 50
	ViewportBaseRows = ViewportHeight / TileHeight // 25
)

// Stream magic words, little-endian 16-bit.
const (
	magicResetLow  uint16 = 0xBEEF
	magicResetHigh uint16 = 0xCAFE
	magicDelay     uint16 = 0xBABE
)
