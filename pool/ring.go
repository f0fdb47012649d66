// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded lock-free block recycling. freeRing is a sequence-numbered
// MPMC ring (Dmitry Vyukov's pattern) holding returned blocks; the
// allocator never blocks and never grows past its capacity.

package pool

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-rc/api"
)

const cacheLinePad = 64

var (
	_ api.Allocator     = (*RingAllocator)(nil)
	_ api.StatsProvider = (*RingAllocator)(nil)
)

type ringCell struct {
	sequence atomic.Uint64
	block    any
}

// freeRing is a bounded MPMC ring with capacity rounded to a power of
// two, padded to keep producers and consumers off one cache line.
type freeRing struct {
	head  uint64
	_     [cacheLinePad]byte
	tail  uint64
	_     [cacheLinePad]byte
	mask  uint64
	cells []ringCell
}

func newFreeRing(capacity int) *freeRing {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	r := &freeRing{
		mask:  uint64(size - 1),
		cells: make([]ringCell, size),
	}
	for i := range r.cells {
		r.cells[i].sequence.Store(uint64(i))
	}
	return r
}

// put parks a block; returns false if the ring is full.
func (r *freeRing) put(block any) bool {
	for {
		tail := atomic.LoadUint64(&r.tail)
		index := tail & r.mask
		c := &r.cells[index]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&r.tail, tail, tail+1) {
				c.block = block
				c.sequence.Store(tail + 1)
				return true
			}
		} else if dif < 0 {
			return false // full
		}
		// tail moved, retry
	}
}

// take pops a recycled block; returns nil, false if the ring is empty.
func (r *freeRing) take() (any, bool) {
	for {
		head := atomic.LoadUint64(&r.head)
		index := head & r.mask
		c := &r.cells[index]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&r.head, head, head+1) {
				block := c.block
				c.block = nil
				c.sequence.Store(head + r.mask + 1)
				return block, true
			}
		} else if dif < 0 {
			return nil, false // empty
		}
		// head moved, retry
	}
}

// RingAllocator keeps a fixed-capacity lock-free free list per block
// kind. Returns beyond capacity are dropped to the GC, so the hot path
// stays allocation-free while memory stays bounded.
type RingAllocator struct {
	mu       sync.RWMutex
	rings    map[reflect.Type]*freeRing
	capacity int
	stats    allocStats
}

// NewRingAllocator creates a ring allocator holding up to capacity
// recycled blocks per kind (rounded up to a power of two).
func NewRingAllocator(capacity int) *RingAllocator {
	return &RingAllocator{
		rings:    make(map[reflect.Type]*freeRing),
		capacity: capacity,
	}
}

func (a *RingAllocator) ring(kind reflect.Type) *freeRing {
	a.mu.RLock()
	r := a.rings[kind]
	a.mu.RUnlock()
	if r != nil {
		return r
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if r = a.rings[kind]; r == nil {
		r = newFreeRing(a.capacity)
		a.rings[kind] = r
	}
	return r
}

// Allocate pops a recycled block of the kind, or materializes a fresh
// one from mk when the ring is empty.
func (a *RingAllocator) Allocate(kind reflect.Type, mk func() any) (any, error) {
	if kind == nil || mk == nil {
		return nil, api.ErrInvalidArgument
	}
	a.stats.alloc.Add(1)
	if block, ok := a.ring(kind).take(); ok {
		a.stats.recycled.Add(1)
		return block, nil
	}
	return mk(), nil
}

// Deallocate parks the block in its kind's ring, or drops it to the GC
// when the ring is full.
func (a *RingAllocator) Deallocate(kind reflect.Type, block any) {
	if kind == nil || block == nil {
		return
	}
	a.stats.free.Add(1)
	if !a.ring(kind).put(block) {
		a.stats.dropped.Add(1)
	}
}

// Stats exposes allocation and recycling counters.
func (a *RingAllocator) Stats() api.AllocatorStats {
	return a.stats.snapshot()
}
