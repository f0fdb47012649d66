// File: pool/pooled.go
// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT
//
// sync.Pool-backed block recycling, one shard per block kind.

package pool

import (
	"reflect"
	"sync"

	"github.com/momentics/hioload-rc/api"
)

var (
	_ api.Allocator     = (*PooledAllocator)(nil)
	_ api.StatsProvider = (*PooledAllocator)(nil)
)

// PooledAllocator recycles blocks through per-kind sync.Pools. Returned
// blocks survive until the collector trims the pools, so steady-state
// churn allocates nothing.
type PooledAllocator struct {
	mu     sync.RWMutex
	shards map[reflect.Type]*sync.Pool
	stats  allocStats
}

// NewPooledAllocator creates an empty pooled allocator; shards appear
// lazily as block kinds show up.
func NewPooledAllocator() *PooledAllocator {
	return &PooledAllocator{
		shards: make(map[reflect.Type]*sync.Pool),
	}
}

func (a *PooledAllocator) shard(kind reflect.Type) *sync.Pool {
	a.mu.RLock()
	p := a.shards[kind]
	a.mu.RUnlock()
	if p != nil {
		return p
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if p = a.shards[kind]; p == nil {
		p = &sync.Pool{}
		a.shards[kind] = p
	}
	return p
}

// Allocate serves a recycled block of the kind when one is pooled,
// otherwise materializes fresh storage from mk.
func (a *PooledAllocator) Allocate(kind reflect.Type, mk func() any) (any, error) {
	if kind == nil || mk == nil {
		return nil, api.ErrInvalidArgument
	}
	a.stats.alloc.Add(1)
	if block := a.shard(kind).Get(); block != nil {
		a.stats.recycled.Add(1)
		return block, nil
	}
	return mk(), nil
}

// Deallocate parks the block in its kind's shard for reuse.
func (a *PooledAllocator) Deallocate(kind reflect.Type, block any) {
	if kind == nil || block == nil {
		return
	}
	a.stats.free.Add(1)
	a.shard(kind).Put(block)
}

// Stats exposes allocation and recycling counters.
func (a *PooledAllocator) Stats() api.AllocatorStats {
	return a.stats.snapshot()
}
