// File: api/allocator.go
// Author: momentics <momentics@gmail.com>
//
// Block storage contracts: pluggable allocators for control-block reuse.
//
// Storage may be GC heap, sync.Pool shards, bounded lock-free rings, or
// FIFO free lists. Allocators hand out whole typed blocks; they never
// split or reinterpret storage.

package api

import "reflect"

// Allocator provides storage for reference-count control blocks.
//
// Blocks are typed Go objects; kind identifies the concrete block type so
// an allocator can keep one recycling bucket per kind. mk materializes
// fresh zeroed storage when the allocator has nothing recycled to offer.
// A recycled block is returned as-is; the caller owns reinitialization.
type Allocator interface {
	// Allocate returns storage for one block of the given kind.
	Allocate(kind reflect.Type, mk func() any) (any, error)

	// Deallocate returns a block obtained from Allocate. The block must
	// not be used afterwards.
	Deallocate(kind reflect.Type, block any)
}

// StatsProvider is implemented by allocators that track usage counters.
type StatsProvider interface {
	// Stats exposes allocation/recycling metrics for observability.
	Stats() AllocatorStats
}

// AllocatorStats aggregates block allocation/reuse stats.
type AllocatorStats struct {
	TotalAlloc int64 // blocks handed out, fresh or recycled
	TotalFree  int64 // blocks returned
	InUse      int64 // blocks currently held by callers
	Recycled   int64 // blocks served from a free list instead of mk
	Dropped    int64 // returned blocks the allocator declined to keep
}
