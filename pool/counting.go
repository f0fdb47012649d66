// File: pool/counting.go
// Author: momentics <momentics@gmail.com>
//
// Accounting wrapper over any allocator. Core handles carry no
// instrumentation; wrap the allocator instead when a test or a debug
// probe needs to watch block traffic.

package pool

import (
	"reflect"

	"github.com/momentics/hioload-rc/api"
)

var (
	_ api.Allocator     = (*CountingAllocator)(nil)
	_ api.StatsProvider = (*CountingAllocator)(nil)
)

// CountingAllocator counts the blocks flowing through an inner
// allocator. A nil inner wraps the process default.
type CountingAllocator struct {
	inner api.Allocator
	stats allocStats
}

// NewCountingAllocator wraps inner with traffic counters.
func NewCountingAllocator(inner api.Allocator) *CountingAllocator {
	if inner == nil {
		inner = Default()
	}
	return &CountingAllocator{inner: inner}
}

// Allocate forwards to the inner allocator, counting successes.
func (a *CountingAllocator) Allocate(kind reflect.Type, mk func() any) (any, error) {
	block, err := a.inner.Allocate(kind, mk)
	if err != nil {
		return nil, err
	}
	a.stats.alloc.Add(1)
	return block, nil
}

// Deallocate forwards to the inner allocator.
func (a *CountingAllocator) Deallocate(kind reflect.Type, block any) {
	if block == nil {
		return
	}
	a.stats.free.Add(1)
	a.inner.Deallocate(kind, block)
}

// Stats exposes the observed traffic.
func (a *CountingAllocator) Stats() api.AllocatorStats {
	return a.stats.snapshot()
}

// Balanced reports whether every allocated block came back.
func (a *CountingAllocator) Balanced() bool {
	s := a.stats.snapshot()
	return s.TotalAlloc == s.TotalFree
}
