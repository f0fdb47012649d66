// File: pool/stats.go
// Author: momentics <momentics@gmail.com>

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-rc/api"
)

// allocStats is the shared accounting core of every allocator here.
type allocStats struct {
	alloc    atomic.Int64
	free     atomic.Int64
	recycled atomic.Int64
	dropped  atomic.Int64
}

func (s *allocStats) snapshot() api.AllocatorStats {
	a, f := s.alloc.Load(), s.free.Load()
	return api.AllocatorStats{
		TotalAlloc: a,
		TotalFree:  f,
		InUse:      a - f,
		Recycled:   s.recycled.Load(),
		Dropped:    s.dropped.Load(),
	}
}
