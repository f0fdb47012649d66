// File: pool/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// GC-heap block allocator, the process default.

package pool

import (
	"reflect"

	"github.com/momentics/hioload-rc/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Allocator     = (*HeapAllocator)(nil)
	_ api.StatsProvider = (*HeapAllocator)(nil)
)

// HeapAllocator materializes every block fresh on the GC heap.
// Deallocate is accounting only: storage is reclaimed by the collector
// once the last handle lets go, which is what makes this allocator safe
// under any usage pattern.
type HeapAllocator struct {
	stats allocStats
}

// NewHeapAllocator creates a heap allocator with zeroed counters.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

// Allocate returns fresh storage from mk.
func (a *HeapAllocator) Allocate(_ reflect.Type, mk func() any) (any, error) {
	if mk == nil {
		return nil, api.ErrInvalidArgument
	}
	a.stats.alloc.Add(1)
	return mk(), nil
}

// Deallocate records the return; the GC does the rest.
func (a *HeapAllocator) Deallocate(_ reflect.Type, block any) {
	if block == nil {
		return
	}
	a.stats.free.Add(1)
}

// Stats exposes allocation counters.
func (a *HeapAllocator) Stats() api.AllocatorStats {
	return a.stats.snapshot()
}
