package video

import (
	"bytes"
	"testing"
)

func TestStreamWriterSingleBlankFrame(t *testing.T) {
	enc := NewFrameEncoder(nil)
	updates, err := enc.Encode(SliceSource{fullBlankScreen(0, 0)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	buf, stats := NewStreamWriter(nil).Write(updates)

	want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0xEF, 0xBE, 0xFE, 0xCA}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got % x, want % x", buf, want)
	}
	if stats.Frames != 1 || stats.LibraryWrites != 0 || stats.MapWrites != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestStreamWriterBlankThenSingleDelay(t *testing.T) {
	enc := NewFrameEncoder(nil)
	updates, err := enc.Encode(SliceSource{fullBlankScreen(0, 0), fullBlankScreen(0, 0)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	buf, stats := NewStreamWriter(nil).Write(updates)

	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0,
		0xBE, 0xBA, 0x01, 0x00,
		0xEF, 0xBE, 0xFE, 0xCA,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got % x, want % x", buf, want)
	}
	if len(buf) != 16 {
		t.Fatalf("length: got %d, want 16", len(buf))
	}
	if stats.DelayRuns != 1 || stats.DelayFrames != 1 {
		t.Fatalf("unexpected delay stats: %+v", stats)
	}
}

func nullUpdatesAfterOneRealFrame(nullCount int) []ScreenUpdate {
	updates := make([]ScreenUpdate, nullCount+1)
	updates[0] = ScreenUpdate{X: 0, Y: 0}
	for i := 1; i < len(updates); i++ {
		updates[i] = ScreenUpdate{X: 0, Y: 0, Null: true}
	}
	return updates
}

func encodeDelayPairs(counts ...int) []byte {
	var out []byte
	for _, n := range counts {
		out = appendU16(out, magicDelay)
		out = appendU16(out, uint16(n))
	}
	return out
}

func TestStreamWriter65535NullFramesIsOnePair(t *testing.T) {
	buf, stats := NewStreamWriter(nil).Write(nullUpdatesAfterOneRealFrame(65535))

	want := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, encodeDelayPairs(65535)...)
	want = append(want, 0xEF, 0xBE, 0xFE, 0xCA)
	if !bytes.Equal(buf, want) {
		t.Fatalf("got % x, want % x", buf, want)
	}
	if stats.DelayRuns != 1 {
		t.Fatalf("delay runs: got %d, want 1", stats.DelayRuns)
	}
}

func TestStreamWriter65536NullFramesSplitsIntoTwoPairs(t *testing.T) {
	buf, stats := NewStreamWriter(nil).Write(nullUpdatesAfterOneRealFrame(65536))

	want := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, encodeDelayPairs(65535, 1)...)
	want = append(want, 0xEF, 0xBE, 0xFE, 0xCA)
	if !bytes.Equal(buf, want) {
		t.Fatalf("got % x, want % x", buf, want)
	}
	if stats.DelayRuns != 2 {
		t.Fatalf("delay runs: got %d, want 2", stats.DelayRuns)
	}
	if stats.DelayFrames != 65536 {
		t.Fatalf("delay frames: got %d, want 65536", stats.DelayFrames)
	}
}
