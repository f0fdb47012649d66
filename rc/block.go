// File: rc/block.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Control block core: two counters, one object address, two storage
// variants. Strong handles own object lifetime, strong+weak handles
// together own block lifetime. Counter arithmetic is atomic; release is
// two-phase so weak observers never read recycled block memory.

package rc

import (
	"reflect"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/hioload-rc/api"
)

// Deleter releases an externally owned object once the last strong
// handle drops it. A nil Deleter leaves teardown to the GC.
type Deleter[T any] func(*T)

// Finalizer is the teardown capability for in-place managed values.
// When the last strong handle releases a block built by MakeShared or
// AllocateShared, Finalize runs before the value slot is cleared. The
// default deleter of NewShared honors it as well.
type Finalizer interface {
	Finalize()
}

// blockOps is the variant half of a control block: how the managed
// object dies and how the block's own storage is returned.
type blockOps interface {
	releaseObject()
	releaseBlock()
}

// control is the type-erased core embedded in every block variant.
//
// weak carries one extra unit on behalf of all strong handles, dropped
// after releaseObject runs. Block release is therefore a single atomic
// decrement-and-check regardless of which side finishes last.
type control struct {
	strong atomic.Int64
	weak   atomic.Int64
	object unsafe.Pointer // managed object address, nil once destroyed
	ops    blockOps
}

func (c *control) bind(obj unsafe.Pointer, ops blockOps) {
	c.strong.Store(1)
	c.weak.Store(1)
	atomic.StorePointer(&c.object, obj)
	c.ops = ops
}

func (c *control) loadObject() unsafe.Pointer {
	return atomic.LoadPointer(&c.object)
}

func (c *control) clearObject() {
	atomic.StorePointer(&c.object, nil)
}

func (c *control) retainStrong() {
	if c.strong.Add(1) <= 1 {
		panic("rc: retain on destroyed block")
	}
}

// tryRetainStrong is the promotion path: the expiry check and the
// increment form one logical step, retried on contention.
func (c *control) tryRetainStrong() bool {
	for {
		n := c.strong.Load()
		if n == 0 {
			return false
		}
		if c.strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (c *control) retainWeak() {
	c.weak.Add(1)
}

func (c *control) releaseStrong() {
	n := c.strong.Add(-1)
	switch {
	case n == 0:
		c.ops.releaseObject()
		c.releaseWeak()
	case n < 0:
		panic("rc: strong count underflow")
	}
}

func (c *control) releaseWeak() {
	n := c.weak.Add(-1)
	switch {
	case n == 0:
		c.ops.releaseBlock()
	case n < 0:
		panic("rc: weak count underflow")
	}
}

// externalBlock manages an object that lives outside the block; the
// block stores only the deleter and the allocator that owns its storage.
type externalBlock[T any] struct {
	control
	ptr     *T
	deleter Deleter[T]
	alloc   api.Allocator
}

func (b *externalBlock[T]) bind(ptr *T, d Deleter[T], alloc api.Allocator) {
	b.ptr = ptr
	b.deleter = d
	b.alloc = alloc
	b.control.bind(unsafe.Pointer(ptr), b)
}

func (b *externalBlock[T]) releaseObject() {
	if b.deleter != nil {
		b.deleter(b.ptr)
	}
	b.ptr = nil
	b.deleter = nil
	b.clearObject()
}

func (b *externalBlock[T]) releaseBlock() {
	alloc := b.alloc
	b.alloc = nil
	b.ops = nil
	deallocateBlock(alloc, b)
}

// inplaceBlock holds the managed value inline: object and control data
// share one allocation.
type inplaceBlock[T any] struct {
	control
	value T
	alloc api.Allocator
}

func (b *inplaceBlock[T]) bind(alloc api.Allocator) {
	b.alloc = alloc
	b.control.bind(unsafe.Pointer(&b.value), b)
}

func (b *inplaceBlock[T]) releaseObject() {
	if f, ok := any(&b.value).(Finalizer); ok {
		f.Finalize()
	}
	var zero T
	b.value = zero
	b.clearObject()
}

func (b *inplaceBlock[T]) releaseBlock() {
	alloc := b.alloc
	b.alloc = nil
	b.ops = nil
	deallocateBlock(alloc, b)
}

// allocateBlock obtains typed storage for one block from alloc.
func allocateBlock[B any](alloc api.Allocator) (*B, error) {
	stored, err := alloc.Allocate(reflect.TypeOf((*B)(nil)).Elem(), func() any { return new(B) })
	if err != nil {
		return nil, err
	}
	b, ok := stored.(*B)
	if !ok {
		alloc.Deallocate(reflect.TypeOf((*B)(nil)).Elem(), stored)
		return nil, api.ErrForeignBlock
	}
	return b, nil
}

func deallocateBlock[B any](alloc api.Allocator, b *B) {
	alloc.Deallocate(reflect.TypeOf((*B)(nil)).Elem(), b)
}
