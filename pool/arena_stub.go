//go:build !linux
// +build !linux

// File: pool/arena_stub.go
// Author: momentics <momentics@gmail.com>
//
// Portable slab fallback: a plain heap slice stands in for the mapping.

package pool

func mapSlab(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapSlab(_ []byte) error {
	return nil
}
