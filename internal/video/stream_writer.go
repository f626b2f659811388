package video

import (
	"encoding/binary"
	"sort"

	"screenreel-dx/internal/debug"
)

// StreamStats summarizes an encoded stream: how many frames it covers and
// how much write traffic and delay coalescing went into producing it.
type StreamStats struct {
	Frames        int
	LibraryWrites int
	MapWrites     int
	DelayRuns     int
	DelayFrames   int
}

// StreamWriter serializes a list of per-frame diffs into the bit-exact
// byte stream the controller replays, coalescing consecutive null diffs
// into delay commands.
type StreamWriter struct {
	logger *debug.Logger
}

// NewStreamWriter returns a StreamWriter. logger may be nil.
func NewStreamWriter(logger *debug.Logger) *StreamWriter {
	return &StreamWriter{logger: logger}
}

// Write serializes updates into a single byte stream terminated by the
// end-of-stream marker.
func (w *StreamWriter) Write(updates []ScreenUpdate) ([]byte, StreamStats) {
	var buf []byte
	var stats StreamStats
	var delay uint32

	flushDelay := func() {
		for delay > 0 {
			n := delay
			if n > 0xFFFF {
				n = 0xFFFF
			}
			buf = appendU16(buf, magicDelay)
			buf = appendU16(buf, uint16(n))
			stats.DelayRuns++
			delay -= n
		}
	}

	for _, u := range updates {
		stats.Frames++
		if u.Null {
			delay++
			stats.DelayFrames++
			continue
		}
		flushDelay()

		buf = appendU16(buf, uint16(u.X))
		buf = appendU16(buf, uint16(u.Y))
		buf = appendU16(buf, uint16(len(u.LibWrites)))
		buf = appendU16(buf, uint16(len(u.MapWrites)))

		// Records go out in ascending slot / (row, col) order. The sort is
		// stable so repeated writes to one slot or cell keep their commit
		// order and the last one still wins on replay.
		libWrites := append([]LibWrite(nil), u.LibWrites...)
		sort.SliceStable(libWrites, func(i, j int) bool { return libWrites[i].Slot < libWrites[j].Slot })
		mapWrites := append([]MapWrite(nil), u.MapWrites...)
		sort.SliceStable(mapWrites, func(i, j int) bool { return mapWrites[i].Cell.Less(mapWrites[j].Cell) })

		for _, lw := range libWrites {
			buf = append(buf, byte(lw.Slot), 0, 0, 0)
			buf = append(buf, lw.Tile[:]...)
		}
		for _, mw := range mapWrites {
			buf = append(buf, byte(mw.Cell.Row), byte(mw.Cell.Col), mw.Slot, 0)
		}

		stats.LibraryWrites += len(u.LibWrites)
		stats.MapWrites += len(u.MapWrites)

		if w.logger != nil {
			w.logger.LogStreamf(debug.LogLevelDebug, "update x=%d y=%d lib=%d map=%d", u.X, u.Y, len(u.LibWrites), len(u.MapWrites))
		}
	}
	flushDelay()

	buf = appendU16(buf, magicResetLow)
	buf = appendU16(buf, magicResetHigh)

	return buf, stats
}

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}
