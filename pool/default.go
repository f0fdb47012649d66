// File: pool/default.go
// Author: momentics <momentics@gmail.com>

package pool

import (
	"sync"

	"github.com/momentics/hioload-rc/api"
)

var (
	defaultOnce  sync.Once
	defaultAlloc *HeapAllocator
)

// Default returns the process-wide heap allocator so handles that never
// name an allocator share one accounting point instead of fragmenting
// counters.
func Default() api.Allocator {
	defaultOnce.Do(func() {
		defaultAlloc = NewHeapAllocator()
	})
	return defaultAlloc
}
