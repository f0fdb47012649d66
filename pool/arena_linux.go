//go:build linux
// +build linux

// File: pool/arena_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux slab mapping via anonymous mmap, off the Go heap.

package pool

import "golang.org/x/sys/unix"

func mapSlab(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

func unmapSlab(slab []byte) error {
	if slab == nil {
		return nil
	}
	return unix.Munmap(slab)
}
