// File: rc/shared.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared[T] is the owning handle. One handle = one strong unit on its
// block. Handles are passed and stored as *Shared[T]; a released handle
// empties itself and every operation on an empty handle is a safe no-op.

package rc

import (
	"fmt"

	"github.com/momentics/hioload-rc/api"
	"github.com/momentics/hioload-rc/pool"
)

// Shared is a strong reference-counted handle to a T.
//
// The zero value is an empty handle. Do not copy the struct; share the
// object by Clone and transfer it by Move or Adopt.
type Shared[T any] struct {
	ctl *control
	ptr *T
}

// NewShared adopts ptr under reference counting with the default deleter:
// Finalize() if *T implements Finalizer, otherwise teardown is left to
// the GC. A nil ptr yields an empty handle and no block is allocated.
func NewShared[T any](ptr *T) *Shared[T] {
	return NewSharedWithDeleter(ptr, finalizeDeleter[T])
}

// NewSharedWithDeleter adopts ptr and runs d exactly once when the last
// strong handle releases it. A nil d disables teardown.
func NewSharedWithDeleter[T any](ptr *T, d Deleter[T]) *Shared[T] {
	h, err := NewSharedWithAllocator(ptr, d, pool.Default())
	if err != nil {
		// The default heap allocator does not fail.
		panic("rc: default allocator: " + err.Error())
	}
	return h
}

// NewSharedWithAllocator adopts ptr with a custom deleter and takes the
// control block's storage from alloc. If block allocation fails, the
// deleter is invoked on ptr before the error is returned, so ownership
// of ptr is never silently dropped. A nil alloc selects the default
// heap allocator.
func NewSharedWithAllocator[T any](ptr *T, d Deleter[T], alloc api.Allocator) (*Shared[T], error) {
	if ptr == nil {
		return &Shared[T]{}, nil
	}
	if alloc == nil {
		alloc = pool.Default()
	}
	b, err := allocateBlock[externalBlock[T]](alloc)
	if err != nil {
		if d != nil {
			d(ptr)
		}
		return nil, fmt.Errorf("rc: control block allocation: %w", err)
	}
	b.bind(ptr, d, alloc)
	return &Shared[T]{ctl: &b.control, ptr: ptr}, nil
}

// Clone returns a new handle sharing ownership; the strong count grows
// by one. Cloning an empty handle yields an empty handle.
func (h *Shared[T]) Clone() *Shared[T] {
	if h == nil || h.ctl == nil {
		return &Shared[T]{}
	}
	h.ctl.retainStrong()
	return &Shared[T]{ctl: h.ctl, ptr: h.ptr}
}

// Move transfers ownership to a fresh handle and empties the receiver.
// No counter changes.
func (h *Shared[T]) Move() *Shared[T] {
	if h == nil || h.ctl == nil {
		return &Shared[T]{}
	}
	moved := &Shared[T]{ctl: h.ctl, ptr: h.ptr}
	h.ctl, h.ptr = nil, nil
	return moved
}

// Assign rebinds the receiver to other's block, releasing whatever it
// held. Assigning a handle to itself is a no-op; assigning two handles
// of one block is safe because the new block is retained first.
func (h *Shared[T]) Assign(other *Shared[T]) {
	if h == nil || h == other {
		return
	}
	var ctl *control
	var ptr *T
	if other != nil && other.ctl != nil {
		other.ctl.retainStrong()
		ctl, ptr = other.ctl, other.ptr
	}
	h.release()
	h.ctl, h.ptr = ctl, ptr
}

// Adopt rebinds the receiver to other's block and empties other,
// releasing whatever the receiver held. No counter change for the
// transferred unit.
func (h *Shared[T]) Adopt(other *Shared[T]) {
	if h == nil || h == other {
		return
	}
	var ctl *control
	var ptr *T
	if other != nil {
		ctl, ptr = other.ctl, other.ptr
		other.ctl, other.ptr = nil, nil
	}
	h.release()
	h.ctl, h.ptr = ctl, ptr
}

// Get returns the managed object, or nil if the handle is empty or the
// object has already been destroyed.
func (h *Shared[T]) Get() *T {
	if h == nil || h.ctl == nil {
		return nil
	}
	if h.ctl.loadObject() == nil {
		return nil
	}
	return h.ptr
}

// UseCount reports the block's strong count, 0 for an empty handle.
func (h *Shared[T]) UseCount() int64 {
	if h == nil || h.ctl == nil {
		return 0
	}
	return h.ctl.strong.Load()
}

// Weak mints a non-owning observer of the same block.
func (h *Shared[T]) Weak() *Weak[T] {
	if h == nil || h.ctl == nil {
		return &Weak[T]{}
	}
	h.ctl.retainWeak()
	return &Weak[T]{ctl: h.ctl, ptr: h.ptr}
}

// Release drops the handle's strong unit and empties it. The last
// strong release destroys the managed object; block storage returns to
// its allocator once no weak observer remains. Release is idempotent.
func (h *Shared[T]) Release() {
	if h == nil {
		return
	}
	h.release()
	h.ptr = nil
}

func (h *Shared[T]) release() {
	if h.ctl == nil {
		return
	}
	ctl := h.ctl
	h.ctl = nil
	ctl.releaseStrong()
}

func finalizeDeleter[T any](ptr *T) {
	if f, ok := any(ptr).(Finalizer); ok {
		f.Finalize()
	}
}
