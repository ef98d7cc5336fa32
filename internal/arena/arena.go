// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package arena implements the bump-pointer region allocator described in
// spec §3.3/§4.1, ported from LevelDB's util/arena.h. An Arena owns a list
// of heap blocks and hands out byte slices carved from them; there is no
// per-allocation free, only freeing the whole arena (by dropping all
// references to it) at once.
package arena

import (
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// DefaultBlockSize is the block size used when a non-positive size is
// passed to New, matching LevelDB's kBlockSize.
const DefaultBlockSize = 4096

// blockOverhead approximates the bookkeeping cost of tracking one block (a
// slice header plus allocator metadata), folded into MemoryUsage so callers
// get an estimate that accounts for more than just the raw bytes handed out.
const blockOverhead = 16

// pointerAlign is the alignment AllocateAligned guarantees.
const pointerAlign = int(unsafe.Sizeof(uintptr(0)))

// Arena is a bump-pointer allocator. It is not safe for concurrent
// allocation: per spec §5, "Arena is touched only by the writer"; any number
// of readers may concurrently read bytes previously returned by Allocate, and
// may concurrently call MemoryUsage.
type Arena struct {
	blockSize int
	blocks    [][]byte
	cur       []byte // unused tail of the most recently allocated block

	// usage is written only by the allocating goroutine but may be read by
	// any goroutine via MemoryUsage, hence atomic (§4.1: "concurrent safety:
	// the counter is writeable only by the owner thread... but readable
	// concurrently").
	usage atomic.Uint64
}

// New returns a new Arena that allocates blocks of blockSize bytes (or
// DefaultBlockSize if blockSize <= 0).
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Arena{blockSize: blockSize}
}

// Allocate returns n fresh bytes with no alignment guarantee beyond that of
// the host allocator.
func (a *Arena) Allocate(n int) []byte {
	if n <= 0 {
		panic(errors.AssertionFailedf("arena: allocation size must be positive, got %d", n))
	}
	if n <= len(a.cur) {
		b := a.cur[:n:n]
		a.cur = a.cur[n:]
		return b
	}
	return a.allocateFallback(n)
}

// AllocateAligned returns n fresh bytes aligned to the platform's pointer
// size, padding the current block as needed (§4.1: "pad current pointer up
// to pointer-alignment; then same as Allocate").
func (a *Arena) AllocateAligned(n int) []byte {
	if n <= 0 {
		panic(errors.AssertionFailedf("arena: allocation size must be positive, got %d", n))
	}
	slop := 0
	if len(a.cur) > 0 {
		addr := uintptr(unsafe.Pointer(&a.cur[0]))
		if mod := addr & uintptr(pointerAlign-1); mod != 0 {
			slop = pointerAlign - int(mod)
		}
	}
	needed := n + slop
	if needed <= len(a.cur) {
		b := a.cur[slop : slop+n : slop+n]
		a.cur = a.cur[needed:]
		return b
	}
	// Blocks returned by the host allocator (make([]byte, size)) are already
	// pointer-aligned, so the fallback path needs no extra padding.
	return a.allocateFallback(n)
}

// allocateFallback implements the fallback policy of §4.1: allocations
// larger than 1/4 of the block size get a dedicated block sized exactly to
// fit, leaving the current block's remaining space untouched for future
// small allocations; smaller allocations discard the current block's
// remaining space and start a fresh full-size block.
func (a *Arena) allocateFallback(n int) []byte {
	if n > a.blockSize/4 {
		return a.allocateNewBlock(n)
	}
	block := a.allocateNewBlock(a.blockSize)
	result := block[:n:n]
	a.cur = block[n:]
	return result
}

func (a *Arena) allocateNewBlock(size int) []byte {
	block := make([]byte, size)
	a.blocks = append(a.blocks, block)
	a.usage.Add(uint64(size) + blockOverhead)
	return block
}

// MemoryUsage returns an estimate of the total bytes allocated by the arena,
// including per-block bookkeeping overhead.
func (a *Arena) MemoryUsage() uint64 {
	return a.usage.Load()
}
