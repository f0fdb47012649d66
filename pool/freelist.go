// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFO free-list block allocator. Oldest returned block is reused
// first, which spreads reuse across the working set and keeps a stale
// handle's target cold for as long as the list allows.

package pool

import (
	"reflect"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-rc/api"
)

const defaultMaxIdle = 1024

var (
	_ api.Allocator     = (*FreeListAllocator)(nil)
	_ api.StatsProvider = (*FreeListAllocator)(nil)
)

// FreeListAllocator keeps one FIFO queue of recycled blocks per kind.
// The queue itself is single-goroutine; the allocator owns the locking.
type FreeListAllocator struct {
	mu      sync.Mutex
	lists   map[reflect.Type]*queue.Queue
	maxIdle int
	stats   allocStats
}

// NewFreeListAllocator creates a free-list allocator keeping up to
// maxIdle recycled blocks per kind; maxIdle <= 0 selects the default.
func NewFreeListAllocator(maxIdle int) *FreeListAllocator {
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	return &FreeListAllocator{
		lists:   make(map[reflect.Type]*queue.Queue),
		maxIdle: maxIdle,
	}
}

// Allocate reuses the oldest parked block of the kind, or materializes
// fresh storage from mk when the list is empty.
func (a *FreeListAllocator) Allocate(kind reflect.Type, mk func() any) (any, error) {
	if kind == nil || mk == nil {
		return nil, api.ErrInvalidArgument
	}
	a.mu.Lock()
	list := a.lists[kind]
	var block any
	if list != nil && list.Length() > 0 {
		block = list.Remove()
	}
	a.mu.Unlock()

	a.stats.alloc.Add(1)
	if block != nil {
		a.stats.recycled.Add(1)
		return block, nil
	}
	return mk(), nil
}

// Deallocate parks the block at the list tail, or drops it to the GC
// when the kind already holds maxIdle blocks.
func (a *FreeListAllocator) Deallocate(kind reflect.Type, block any) {
	if kind == nil || block == nil {
		return
	}
	a.stats.free.Add(1)

	a.mu.Lock()
	list := a.lists[kind]
	if list == nil {
		list = queue.New()
		a.lists[kind] = list
	}
	if list.Length() >= a.maxIdle {
		a.mu.Unlock()
		a.stats.dropped.Add(1)
		return
	}
	list.Add(block)
	a.mu.Unlock()
}

// IdleBlocks reports how many recycled blocks are parked for the kind.
func (a *FreeListAllocator) IdleBlocks(kind reflect.Type) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if list := a.lists[kind]; list != nil {
		return list.Length()
	}
	return 0
}

// Stats exposes allocation and recycling counters.
func (a *FreeListAllocator) Stats() api.AllocatorStats {
	return a.stats.snapshot()
}
