// Package rc
// Author: momentics <momentics@gmail.com>
//
// Reference-counted shared ownership for hioload resource management.
// Shared[T] is an owning handle, Weak[T] a non-owning observer; both are
// views onto one control block carrying the managed object, its deleter,
// its allocator, and two atomic liveness counters. The object dies when
// the last strong handle releases; the block's storage returns to its
// allocator only once no observer of either kind remains, so weak handles
// can detect expiry without touching recycled memory.
// See block.go for the two-phase release protocol, make.go for the
// single-allocation in-place construction path.
package rc
