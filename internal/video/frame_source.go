package video

// FrameSource is the external contract the encoder core consumes: an
// ordered, finite sequence of Screen values. Every Screen must be
// internally consistent — every cell in its tile positions lies within
// its own viewport, and the union of those cells equals the viewport's
// cell set — but FrameSource implementations (image decoders, script
// loaders, test fixtures) are themselves outside the core's scope.
type FrameSource interface {
	// Len returns the number of frames.
	Len() int
	// Frame returns the Screen for frame index i, 0 <= i < Len().
	Frame(i int) *Screen
}

// SliceSource adapts a plain []*Screen to FrameSource.
type SliceSource []*Screen

func (s SliceSource) Len() int           { return len(s) }
func (s SliceSource) Frame(i int) *Screen { return s[i] }
