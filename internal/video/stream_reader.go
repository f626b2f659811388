package video

import (
	"encoding/binary"
	"fmt"

	"screenreel-dx/internal/debug"
)

// StreamReader is the inverse of StreamWriter: it drives the same
// TileMap/TileLibrary hardware model from a byte stream and emits the
// reconstructed Screen for every real frame (including the n copies
// implied by a delay command).
type StreamReader struct {
	library *TileLibrary
	tilemap *TileMap
	x, y    int
	logger  *debug.Logger
}

// NewStreamReader returns a reader starting from the controller's blank
// boot state. logger may be nil.
func NewStreamReader(logger *debug.Logger) *StreamReader {
	return &StreamReader{
		library: NewTileLibrary(),
		tilemap: NewTileMap(),
		logger:  logger,
	}
}

// Read decodes buf fully and returns the reconstructed frame sequence.
func (r *StreamReader) Read(buf []byte) ([]*Screen, error) {
	var screens []*Screen
	pos := 0

	readU16 := func() (uint16, error) {
		if pos+2 > len(buf) {
			return 0, streamError(ErrCorruptStream, pos, "truncated word")
		}
		v := binary.LittleEndian.Uint16(buf[pos : pos+2])
		pos += 2
		return v, nil
	}

	for {
		startPos := pos
		w1, err := readU16()
		if err != nil {
			return nil, err
		}
		w2, err := readU16()
		if err != nil {
			return nil, err
		}

		switch {
		case w1 == magicResetLow && w2 == magicResetHigh:
			return screens, nil

		case w1 == magicDelay:
			n := w2
			if n == 0 {
				return nil, streamError(ErrInvalidDelay, startPos, "delay count is zero")
			}
			if len(screens) == 0 {
				return nil, streamError(ErrCorruptStream, startPos, "delay with no prior frame to repeat")
			}
			last := screens[len(screens)-1]
			for i := 0; i < int(n); i++ {
				screens = append(screens, last)
			}
			if r.logger != nil {
				r.logger.LogDecoderf(debug.LogLevelDebug, "delay x%d", n)
			}

		default:
			x, y := int(w1), int(w2)
			if x >= VirtualWidth {
				return nil, streamError(ErrCorruptStream, startPos, fmt.Sprintf("x offset %d out of range", x))
			}
			if y >= VirtualHeight {
				return nil, streamError(ErrCorruptStream, startPos, fmt.Sprintf("y offset %d out of range", y))
			}

			libCount, err := readU16()
			if err != nil {
				return nil, err
			}
			mapCount, err := readU16()
			if err != nil {
				return nil, err
			}
			if libCount > LibrarySlots {
				return nil, streamError(ErrCorruptStream, startPos, fmt.Sprintf("library write count %d exceeds %d", libCount, LibrarySlots))
			}
			if mapCount > MapCells {
				return nil, streamError(ErrCorruptStream, startPos, fmt.Sprintf("map write count %d exceeds %d", mapCount, MapCells))
			}

			for i := uint16(0); i < libCount; i++ {
				if pos+16 > len(buf) {
					return nil, streamError(ErrCorruptStream, pos, "truncated library write record")
				}
				slot := buf[pos]
				if buf[pos+1] != 0 || buf[pos+2] != 0 || buf[pos+3] != 0 {
					return nil, streamError(ErrCorruptStream, pos, "non-zero padding in library write record")
				}
				var tile Tile
				copy(tile[:], buf[pos+4:pos+16])
				r.library.Set(slot, tile)
				pos += 16
			}

			for i := uint16(0); i < mapCount; i++ {
				if pos+4 > len(buf) {
					return nil, streamError(ErrCorruptStream, pos, "truncated map write record")
				}
				row, col, slot, pad := buf[pos], buf[pos+1], buf[pos+2], buf[pos+3]
				if pad != 0 {
					return nil, streamError(ErrCorruptStream, pos, "non-zero padding in map write record")
				}
				cell := Cell{Row: int(row), Col: int(col)}
				if err := validateCell(cell); err != nil {
					return nil, streamError(ErrCorruptStream, pos, err.Error())
				}
				r.tilemap.Set(cell, slot)
				pos += 4
			}

			r.x, r.y = x, y
			screen, err := r.materialize()
			if err != nil {
				return nil, err
			}
			screens = append(screens, screen)

			if r.logger != nil {
				r.logger.LogDecoderf(debug.LogLevelDebug, "update x=%d y=%d lib=%d map=%d", x, y, libCount, mapCount)
			}
		}
	}
}

// materialize builds a Screen from the reader's current hardware state,
// restricted to the current viewport.
func (r *StreamReader) materialize() (*Screen, error) {
	byTile := make(map[Tile][]Cell)
	for _, cell := range ViewportCells(r.x, r.y) {
		slot := r.tilemap.Slot(cell)
		tile := r.library.Tile(slot)
		byTile[tile] = append(byTile[tile], cell)
	}
	return NewScreen(r.x, r.y, byTile)
}
