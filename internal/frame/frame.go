// Package frame provides a lock-free double buffer for handing a
// completed PPU frame from the emulation goroutine to the UI goroutine
// without the UI ever observing a partially-written frame.
package frame

import "sync/atomic"

const (
	Width  = 256
	Height = 240
)

// Buffer is a single frame's worth of system-palette indices (0-63).
type Buffer [Width * Height]uint8

// Shared is a single-publisher/single-consumer double buffer. The
// emulation goroutine calls Publish once per completed frame; the UI
// goroutine calls Read whenever it wants the latest complete frame.
// Exactly one goroutine of each kind may call its respective method.
type Shared struct {
	active  atomic.Uint32
	buffers [2]Buffer
}

// New returns a Shared with both buffers zeroed.
func New() *Shared {
	return &Shared{}
}

// Read returns a pointer to the most recently published frame. The
// pointer is only valid until the next call to Publish on another
// goroutine swaps which buffer is active, so callers should copy out
// anything they need to keep.
func (s *Shared) Read() *Buffer {
	index := s.active.Load()
	return &s.buffers[index]
}

// Publish copies frame into the buffer the reader is not currently
// looking at, then atomically swaps it in as the active buffer.
func (s *Shared) Publish(f *Buffer) {
	index := s.active.Load()
	other := index ^ 1
	s.buffers[other] = *f
	s.active.Store(other)
}
