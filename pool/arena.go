// File: pool/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SlabArena: a bump allocator over one mapped byte region, for managed
// payloads. Control blocks are typed Go objects and live with an
// api.Allocator, never here. Regions handed out are 8-byte aligned and
// stay valid until Reset or Close; individual regions are not freed.

package pool

import (
	"fmt"
	"sync"

	"github.com/momentics/hioload-rc/api"
)

const arenaAlign = 8

// SlabArena allocates byte regions out of a single anonymous mapping
// (plain heap slab on platforms without mmap support).
type SlabArena struct {
	mu     sync.Mutex
	slab   []byte
	off    int
	peak   int
	allocs int64
	closed bool
}

// NewSlabArena maps a slab of the given size, rounded up to alignment.
func NewSlabArena(size int) (*SlabArena, error) {
	if size <= 0 {
		return nil, api.ErrInvalidSize
	}
	size = (size + arenaAlign - 1) &^ (arenaAlign - 1)
	slab, err := mapSlab(size)
	if err != nil {
		return nil, fmt.Errorf("pool: slab mapping: %w", err)
	}
	return &SlabArena{slab: slab}, nil
}

// Alloc carves an n-byte region off the slab. The region is zeroed on
// first use of the slab only; callers reusing an arena after Reset own
// any clearing they need.
func (a *SlabArena) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, api.ErrInvalidSize
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, api.ErrAllocatorClosed
	}
	off := (a.off + arenaAlign - 1) &^ (arenaAlign - 1)
	if off+n > len(a.slab) {
		return nil, api.ErrAllocatorExhausted
	}
	a.off = off + n
	if a.off > a.peak {
		a.peak = a.off
	}
	a.allocs++
	return a.slab[off : off+n : off+n], nil
}

// Reset rewinds the arena. Every region handed out before Reset becomes
// invalid immediately; the mapping itself is kept for reuse.
func (a *SlabArena) Reset() {
	a.mu.Lock()
	a.off = 0
	a.mu.Unlock()
}

// Close unmaps the slab. Further Alloc calls fail with
// api.ErrAllocatorClosed. Close is idempotent.
func (a *SlabArena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	slab := a.slab
	a.slab = nil
	return unmapSlab(slab)
}

// Len returns the bytes currently allocated out of the slab.
func (a *SlabArena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.off
}

// Cap returns the slab capacity in bytes.
func (a *SlabArena) Cap() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.slab)
}

// Peak returns the high-water mark of slab usage across Resets.
func (a *SlabArena) Peak() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.peak
}

// Allocs returns how many regions were handed out over the arena's
// lifetime.
func (a *SlabArena) Allocs() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}
