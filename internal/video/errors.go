package video

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced across the core's boundary. Callers use
// errors.Is against these values; the core never swallows an error and
// never retries.
var (
	// ErrInvalidTileSize is reported when a Tile is constructed from a
	// byte slice that is not exactly TileBytes long.
	ErrInvalidTileSize = errors.New("invalid tile size")

	// ErrInvalidCell is reported when a cell's row or column falls
	// outside the tilemap's 50x100 bounds.
	ErrInvalidCell = errors.New("invalid cell")

	// ErrEmptyInput is reported when the encoder is given an empty frame
	// sequence.
	ErrEmptyInput = errors.New("empty frame sequence")

	// ErrTooManyUniqueTiles is reported when a Screen requires more
	// distinct tiles than the library has slots for.
	ErrTooManyUniqueTiles = errors.New("too many unique tiles")

	// ErrCorruptStream is reported by the decoder on any validation
	// failure: truncated input, an out-of-range offset, an oversized
	// write count, or an unrecognized command word.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrInvalidDelay is reported when a delay command's count is zero.
	ErrInvalidDelay = errors.New("invalid delay count")
)

// streamError wraps a sentinel with the decoder-side byte offset at which
// it was raised.
func streamError(kind error, byteOffset int, detail string) error {
	return fmt.Errorf("stream offset %d: %w: %s", byteOffset, kind, detail)
}
