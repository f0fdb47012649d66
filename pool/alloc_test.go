// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// alloc_test.go — block allocator contracts: recycling, accounting,
// kind segregation.
package pool_test

import (
	"errors"
	"reflect"
	"runtime"
	"testing"

	"github.com/momentics/hioload-rc/api"
	"github.com/momentics/hioload-rc/pool"
)

type blockA struct{ pad [32]byte }
type blockB struct{ pad [64]byte }

var (
	kindA = reflect.TypeOf((*blockA)(nil)).Elem()
	kindB = reflect.TypeOf((*blockB)(nil)).Elem()
)

func mkA() any { return new(blockA) }
func mkB() any { return new(blockB) }

// TestHeapAllocator_Accounting checks fresh allocation and counter
// symmetry on the default backend.
func TestHeapAllocator_Accounting(t *testing.T) {
	a := pool.NewHeapAllocator()

	b1, err := a.Allocate(kindA, mkA)
	if err != nil || b1 == nil {
		t.Fatalf("Allocate: %v", err)
	}
	b2, err := a.Allocate(kindA, mkA)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if b1 == b2 {
		t.Error("heap allocator served the same block twice")
	}

	s := a.Stats()
	if s.TotalAlloc != 2 || s.InUse != 2 {
		t.Errorf("stats = %+v, want 2 allocated in use", s)
	}

	a.Deallocate(kindA, b1)
	a.Deallocate(kindA, b2)
	s = a.Stats()
	if s.TotalFree != 2 || s.InUse != 0 {
		t.Errorf("stats = %+v after returns, want balanced", s)
	}

	if _, err := a.Allocate(kindA, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("nil mk error = %v, want ErrInvalidArgument", err)
	}
}

// TestPooledAllocator_Recycles parks a block and gets the same storage
// back. One proc keeps the sync.Pool private slot deterministic.
func TestPooledAllocator_Recycles(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))
	a := pool.NewPooledAllocator()

	b1, err := a.Allocate(kindA, mkA)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	a.Deallocate(kindA, b1)

	b2, err := a.Allocate(kindA, mkA)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if b2 != b1 {
		t.Error("pooled allocator did not reuse the parked block")
	}
	if got := a.Stats().Recycled; got != 1 {
		t.Errorf("recycled = %d, want 1", got)
	}
}

// TestFreeListAllocator_FIFO pins oldest-first reuse and the idle cap.
func TestFreeListAllocator_FIFO(t *testing.T) {
	a := pool.NewFreeListAllocator(2)

	b1, _ := a.Allocate(kindA, mkA)
	b2, _ := a.Allocate(kindA, mkA)
	b3, _ := a.Allocate(kindA, mkA)

	a.Deallocate(kindA, b1)
	a.Deallocate(kindA, b2)
	a.Deallocate(kindA, b3) // over the cap, dropped
	if got := a.IdleBlocks(kindA); got != 2 {
		t.Fatalf("idle = %d, want 2", got)
	}
	if got := a.Stats().Dropped; got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}

	r1, _ := a.Allocate(kindA, mkA)
	if r1 != b1 {
		t.Error("free list did not serve the oldest block first")
	}
	r2, _ := a.Allocate(kindA, mkA)
	if r2 != b2 {
		t.Error("free list broke FIFO order")
	}
}

// TestAllocators_KindSegregation makes sure recycled storage never
// crosses block kinds.
func TestAllocators_KindSegregation(t *testing.T) {
	allocs := map[string]api.Allocator{
		"pooled":   pool.NewPooledAllocator(),
		"freelist": pool.NewFreeListAllocator(8),
		"ring":     pool.NewRingAllocator(8),
	}
	for name, a := range allocs {
		parked, err := a.Allocate(kindA, mkA)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		a.Deallocate(kindA, parked)

		got, err := a.Allocate(kindB, mkB)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, ok := got.(*blockB); !ok {
			t.Errorf("%s: wrong kind served across shards: %T", name, got)
		}
	}
}

// TestCountingAllocator_Balance watches traffic through a wrapped
// backend.
func TestCountingAllocator_Balance(t *testing.T) {
	a := pool.NewCountingAllocator(pool.NewHeapAllocator())

	b1, err := a.Allocate(kindA, mkA)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if a.Balanced() {
		t.Error("balanced while a block is outstanding")
	}

	a.Deallocate(kindA, b1)
	if !a.Balanced() {
		t.Error("not balanced after the block came back")
	}

	s := a.Stats()
	if s.TotalAlloc != 1 || s.TotalFree != 1 || s.InUse != 0 {
		t.Errorf("stats = %+v, want one roundtrip", s)
	}
}

// TestDefault_SharedInstance pins the process-wide default allocator.
func TestDefault_SharedInstance(t *testing.T) {
	if pool.Default() != pool.Default() {
		t.Error("Default returned distinct instances")
	}
}
