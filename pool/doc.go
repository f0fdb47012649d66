// Package pool
// Author: momentics <momentics@gmail.com>
//
// Block storage allocators for hioload-rc.
// Implements the api.Allocator contract over the GC heap, per-kind
// sync.Pool shards, a bounded lock-free recycling ring, and a FIFO free
// list, plus a mmap-backed SlabArena for managed byte payloads.
// All allocators are safe for concurrent use and account their traffic.
// See heap.go, pooled.go, ring.go, freelist.go, arena.go for details.
package pool
