// File: rc/weak.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Weak[T] observes a block without owning the object. Weak units gate
// only block storage recycling: the object may die while a Weak is
// alive, and the Weak can still ask "is it gone" safely.

package rc

// Weak is a non-owning observer handle to a T managed by Shared
// handles. The zero value is an empty handle, already expired.
type Weak[T any] struct {
	ctl *control
	ptr *T
}

// Clone returns a new observer of the same block; the weak count grows
// by one. Cloning an empty handle yields an empty handle.
func (w *Weak[T]) Clone() *Weak[T] {
	if w == nil || w.ctl == nil {
		return &Weak[T]{}
	}
	w.ctl.retainWeak()
	return &Weak[T]{ctl: w.ctl, ptr: w.ptr}
}

// Move transfers the observation to a fresh handle and empties the
// receiver. No counter changes.
func (w *Weak[T]) Move() *Weak[T] {
	if w == nil || w.ctl == nil {
		return &Weak[T]{}
	}
	moved := &Weak[T]{ctl: w.ctl, ptr: w.ptr}
	w.ctl, w.ptr = nil, nil
	return moved
}

// Assign rebinds the receiver to other's block, releasing its current
// weak unit. Self-assignment is a no-op.
func (w *Weak[T]) Assign(other *Weak[T]) {
	if w == nil || w == other {
		return
	}
	var ctl *control
	var ptr *T
	if other != nil && other.ctl != nil {
		other.ctl.retainWeak()
		ctl, ptr = other.ctl, other.ptr
	}
	w.release()
	w.ctl, w.ptr = ctl, ptr
}

// Adopt rebinds the receiver to other's block and empties other.
func (w *Weak[T]) Adopt(other *Weak[T]) {
	if w == nil || w == other {
		return
	}
	var ctl *control
	var ptr *T
	if other != nil {
		ctl, ptr = other.ctl, other.ptr
		other.ctl, other.ptr = nil, nil
	}
	w.release()
	w.ctl, w.ptr = ctl, ptr
}

// Expired reports whether the managed object is gone. An empty handle
// is expired.
func (w *Weak[T]) Expired() bool {
	if w == nil || w.ctl == nil {
		return true
	}
	return w.ctl.strong.Load() == 0
}

// Lock promotes the observation to ownership. It returns an empty
// strong handle if the object has already been destroyed; otherwise the
// strong count grows by one. The expiry check and the increment are a
// single atomic step, so a concurrent final release cannot slip between
// them.
func (w *Weak[T]) Lock() *Shared[T] {
	if w == nil || w.ctl == nil {
		return &Shared[T]{}
	}
	if !w.ctl.tryRetainStrong() {
		return &Shared[T]{}
	}
	return &Shared[T]{ctl: w.ctl, ptr: w.ptr}
}

// Release drops the handle's weak unit and empties it. Once neither
// strong nor weak units remain, the block storage returns to its
// allocator. Release is idempotent.
func (w *Weak[T]) Release() {
	if w == nil {
		return
	}
	w.release()
	w.ptr = nil
}

func (w *Weak[T]) release() {
	if w.ctl == nil {
		return
	}
	ctl := w.ctl
	w.ctl = nil
	ctl.releaseWeak()
}
