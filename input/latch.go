// Package input decouples key state from any particular windowing library.
// A KeyLatch publishes the most recent key as a single byte; it is not mapped
// onto the CPU bus, so no emulated program reads it. Controller builds the
// NES shift-register protocol from the same key events.
package input

import "sync/atomic"

// KeyLatch is a single-byte atomic publish point: the lowercase ASCII code
// of the most recently pressed key, reset to 0 on key-up.
type KeyLatch struct {
	code uint32
}

func (l *KeyLatch) Press(asciiLower byte) {
	atomic.StoreUint32(&l.code, uint32(asciiLower))
}

// Release clears the latch only if it still holds this key, so an
// already-overtaken key-up doesn't clobber a newer press.
func (l *KeyLatch) Release(asciiLower byte) {
	atomic.CompareAndSwapUint32(&l.code, uint32(asciiLower), 0)
}

func (l *KeyLatch) Load() byte {
	return byte(atomic.LoadUint32(&l.code))
}
