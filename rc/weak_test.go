// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// weak_test.go — observer semantics: expiry, promotion, block lifetime.
package rc_test

import (
	"testing"

	"github.com/momentics/hioload-rc/fake"
	"github.com/momentics/hioload-rc/rc"
)

// TestWeak_EmptyHandleExpired pins expired()==true on a zero-value
// observer, and that Lock and Release on it stay safe.
func TestWeak_EmptyHandleExpired(t *testing.T) {
	var w rc.Weak[resource]
	if !w.Expired() {
		t.Fatal("zero-value weak not expired")
	}
	if got := w.Lock(); got.Get() != nil || got.UseCount() != 0 {
		t.Error("lock on empty weak produced ownership")
	}
	w.Release()
	w.Release()

	var np *rc.Weak[resource]
	if !np.Expired() {
		t.Error("nil weak receiver not expired")
	}
	if got := np.Lock(); got.Get() != nil {
		t.Error("lock on nil weak receiver produced ownership")
	}
	np.Release()
}

// TestWeak_ObservesDeath covers the core weak contract: the observer
// does not keep the object alive and reports its death.
func TestWeak_ObservesDeath(t *testing.T) {
	deleted := 0
	h := rc.NewSharedWithDeleter(&resource{id: 9}, func(*resource) { deleted++ })
	w := h.Weak()

	if w.Expired() {
		t.Fatal("weak expired while a strong handle lives")
	}

	h.Release()
	if deleted != 1 {
		t.Fatalf("deleter ran %d times, want 1", deleted)
	}
	if !w.Expired() {
		t.Error("weak not expired after last strong release")
	}
	if got := w.Lock(); got.Get() != nil {
		t.Error("lock succeeded on a dead object")
	}

	w.Release() // observer must stay destructible after the death
}

// TestWeak_LockWhileAlive promotes an observer and checks the count.
func TestWeak_LockWhileAlive(t *testing.T) {
	h := rc.MakeShared(resource{id: 5})
	w := h.Weak()
	defer w.Release()

	locked := w.Lock()
	if locked.Get() == nil {
		t.Fatal("lock failed while object alive")
	}
	if locked.Get() != h.Get() {
		t.Error("promoted handle views a different object")
	}
	if h.UseCount() != 2 {
		t.Fatalf("UseCount = %d after lock, want 2", h.UseCount())
	}

	locked.Release()
	if h.UseCount() != 1 {
		t.Fatalf("UseCount = %d after promoted release, want 1", h.UseCount())
	}
	h.Release()
}

// TestWeak_BlockOutlivesObject drives the two-phase release through a
// counting fake: object death must not return the block while an
// observer remains, the last observer must.
func TestWeak_BlockOutlivesObject(t *testing.T) {
	alloc := fake.NewAllocator()
	h, err := rc.NewSharedWithAllocator(&resource{}, nil, alloc)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	w := h.Weak()

	h.Release()
	if alloc.Frees() != 0 {
		t.Fatal("block returned while an observer is alive")
	}
	if !w.Expired() {
		t.Fatal("observer missed the object death")
	}

	w.Release()
	if !alloc.Balanced() {
		t.Errorf("block not returned: allocs=%d frees=%d", alloc.Allocs(), alloc.Frees())
	}
}

// TestWeak_CloneHoldsBlock checks that each observer holds the block
// independently.
func TestWeak_CloneHoldsBlock(t *testing.T) {
	alloc := fake.NewAllocator()
	h, err := rc.NewSharedWithAllocator(&resource{}, nil, alloc)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	w1 := h.Weak()
	w2 := w1.Clone()
	h.Release()
	w1.Release()
	if alloc.Frees() != 0 {
		t.Fatal("block returned while the cloned observer is alive")
	}

	if !w2.Expired() {
		t.Error("cloned observer missed the object death")
	}
	w2.Release()
	if !alloc.Balanced() {
		t.Error("block never returned after last observer release")
	}
}

// TestWeak_MoveAndAdopt covers transfer without count changes.
func TestWeak_MoveAndAdopt(t *testing.T) {
	h := rc.MakeShared(resource{id: 1})
	w := h.Weak()

	moved := w.Move()
	if !w.Expired() {
		t.Error("moved-from observer still bound")
	}
	if moved.Expired() {
		t.Error("moved-to observer lost the binding")
	}

	var sink rc.Weak[resource]
	sink.Adopt(moved)
	if !moved.Expired() {
		t.Error("donor still bound after Adopt")
	}
	if sink.Expired() {
		t.Error("receiver not bound after Adopt")
	}

	sink.Release()
	h.Release()
}

// TestWeak_AssignRebindsObserver verifies weak copy-assignment
// bookkeeping through block-return timing.
func TestWeak_AssignRebindsObserver(t *testing.T) {
	alloc := fake.NewAllocator()
	h1, _ := rc.NewSharedWithAllocator(&resource{id: 1}, nil, alloc)
	h2, _ := rc.NewSharedWithAllocator(&resource{id: 2}, nil, alloc)

	w := h1.Weak()
	fresh := h2.Weak()
	w.Assign(fresh) // gain a unit on block 2, drop the unit on block 1
	fresh.Release()

	h1.Release()
	if alloc.Frees() != 1 {
		t.Fatalf("frees = %d after abandoned block died, want 1", alloc.Frees())
	}

	if w.Expired() {
		t.Error("observer expired while its block's owner lives")
	}
	h2.Release()
	w.Release()
	if !alloc.Balanced() {
		t.Errorf("blocks leaked: allocs=%d frees=%d", alloc.Allocs(), alloc.Frees())
	}
}

// TestWeak_SelfAssign pins observer self-assignment as a no-op.
func TestWeak_SelfAssign(t *testing.T) {
	h := rc.MakeShared(resource{})
	w := h.Weak()

	w.Assign(w)
	if w.Expired() {
		t.Error("self-assignment unbound the observer")
	}
	w.Adopt(w)
	if w.Expired() {
		t.Error("self-adopt unbound the observer")
	}

	w.Release()
	h.Release()
}
