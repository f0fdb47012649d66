// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"reflect"
	"sync"

	"github.com/momentics/hioload-rc/api"
)

// Allocator is a test double for api.Allocator. It serves real blocks
// from the heap, counts every call, and can be told to fail after a
// given number of allocations.
type Allocator struct {
	mu        sync.Mutex
	allocs    int
	frees     int
	failAfter int // -1 means never fail
	failErr   error
	kinds     map[reflect.Type]int
}

var _ api.Allocator = (*Allocator)(nil)

// NewAllocator returns a double that never fails.
func NewAllocator() *Allocator {
	return &Allocator{failAfter: -1, kinds: make(map[reflect.Type]int)}
}

// FailAfter arms the double to fail with err once n allocations have
// succeeded. n=0 fails the next call.
func (f *Allocator) FailAfter(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAfter = n
	if err == nil {
		err = api.ErrAllocatorExhausted
	}
	f.failErr = err
}

// Allocate serves a fresh block from mk, or the armed error.
func (f *Allocator) Allocate(kind reflect.Type, mk func() any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter == 0 {
		return nil, f.failErr
	}
	if f.failAfter > 0 {
		f.failAfter--
	}
	f.allocs++
	f.kinds[kind]++
	return mk(), nil
}

// Deallocate counts the return. The block itself is left to the GC.
func (f *Allocator) Deallocate(kind reflect.Type, block any) {
	if block == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frees++
	f.kinds[kind]--
}

// Allocs reports how many allocations succeeded.
func (f *Allocator) Allocs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allocs
}

// Frees reports how many blocks came back.
func (f *Allocator) Frees() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frees
}

// Balanced reports whether every allocation has been returned.
func (f *Allocator) Balanced() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allocs == f.frees
}

// OutstandingKinds returns the kinds with live blocks, for diagnostics.
func (f *Allocator) OutstandingKinds() []reflect.Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []reflect.Type
	for k, n := range f.kinds {
		if n != 0 {
			out = append(out, k)
		}
	}
	return out
}
