// File: rc/make.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-allocation construction: control data and managed value share
// one block, halving allocations against the external-pointer path and
// keeping the value hot next to its counters.

package rc

import (
	"fmt"

	"github.com/momentics/hioload-rc/api"
	"github.com/momentics/hioload-rc/pool"
)

// AllocateShared builds a T in place inside a control block taken from
// alloc and returns the first strong handle to it.
//
// init constructs the value; a nil init leaves the zero value. If init
// fails, the block storage goes straight back to the allocator, nothing
// is linked, and the error is returned wrapped. A nil alloc selects the
// default heap allocator.
func AllocateShared[T any](alloc api.Allocator, init func(*T) error) (*Shared[T], error) {
	if alloc == nil {
		alloc = pool.Default()
	}
	b, err := allocateBlock[inplaceBlock[T]](alloc)
	if err != nil {
		return nil, fmt.Errorf("rc: block allocation: %w", err)
	}
	var zero T
	b.value = zero
	if init != nil {
		if err := init(&b.value); err != nil {
			b.value = zero
			deallocateBlock(alloc, b)
			return nil, fmt.Errorf("rc: in-place construction: %w", err)
		}
	}
	b.bind(alloc)
	return &Shared[T]{ctl: &b.control, ptr: &b.value}, nil
}

// MakeShared is AllocateShared with the default allocator, seeding the
// in-place value from value. It cannot fail.
func MakeShared[T any](value T) *Shared[T] {
	h, err := AllocateShared(pool.Default(), func(dst *T) error {
		*dst = value
		return nil
	})
	if err != nil {
		// The default heap allocator does not fail.
		panic("rc: default allocator: " + err.Error())
	}
	return h
}
