package videoscript

import (
	"encoding/json"
	"fmt"
	"os"

	"screenreel-dx/internal/video"
)

// Load reads a JSON frame script from path and builds the Screen
// sequence it describes, ready to hand to a video.FrameEncoder via
// video.SliceSource.
func Load(path string) (video.SliceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("videoscript: reading %s: %w", path, err)
	}
	var script Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("videoscript: parsing %s: %w", path, err)
	}
	return Build(&script)
}

// Build converts an already-parsed Script into a Screen sequence.
func Build(script *Script) (video.SliceSource, error) {
	screens := make(video.SliceSource, len(script.Frames))
	for i, frame := range script.Frames {
		screen, err := buildFrame(i, frame)
		if err != nil {
			return nil, err
		}
		screens[i] = screen
	}
	return screens, nil
}

func buildFrame(frameIndex int, frame Frame) (*video.Screen, error) {
	positions := make(map[video.Tile][]video.Cell, len(frame.Tiles))
	for _, group := range frame.Tiles {
		tile, err := decodeRows(group.Rows)
		if err != nil {
			return nil, fmt.Errorf("videoscript: frame %d: %w", frameIndex, err)
		}
		cells := make([]video.Cell, len(group.Cells))
		for i, c := range group.Cells {
			cells[i] = video.Cell{Row: c.Row, Col: c.Col}
		}
		positions[tile] = append(positions[tile], cells...)
	}
	screen, err := video.NewScreen(frame.X, frame.Y, positions)
	if err != nil {
		return nil, fmt.Errorf("videoscript: frame %d: %w", frameIndex, err)
	}
	return screen, nil
}

// decodeRows turns 12 literal pixel rows ('.'/'#', 8 chars each) into the
// packed byte-per-row Tile representation.
func decodeRows(rows []string) (video.Tile, error) {
	if len(rows) != video.TileHeight {
		return video.Tile{}, fmt.Errorf("invalid tile: got %d rows, want %d", len(rows), video.TileHeight)
	}
	raw := make([]byte, video.TileHeight)
	for i, row := range rows {
		if len(row) != video.TileWidth {
			return video.Tile{}, fmt.Errorf("invalid tile row %d: got %d chars, want %d", i, len(row), video.TileWidth)
		}
		var b byte
		for col := 0; col < video.TileWidth; col++ {
			switch row[col] {
			case '#':
				b |= 1 << (7 - col)
			case '.':
			default:
				return video.Tile{}, fmt.Errorf("invalid tile row %d: unexpected character %q", i, row[col])
			}
		}
		raw[i] = b
	}
	return video.NewTile(raw)
}
