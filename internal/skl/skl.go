// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package skl implements the ordered, append-only multiset of §4.2: a
// skip list that supports concurrent reads alongside a single concurrent
// writer, with no deletion. It is the structural half of a MemTable; the
// memtable package pairs it with an Arena and a record format.
package skl

import (
	"math/rand"
	"sync/atomic"
)

const (
	// branching is the geometric-distribution branching factor used to pick
	// a new node's height (§4.2: "branching factor 4").
	branching = 4
	// maxHeight caps the tower height any node may have (§4.2).
	maxHeight = 12
)

// Comparer orders two opaque entries. Entries are caller-owned byte slices
// (typically records living in an Arena); only the Comparer understands
// their internal layout — the skip list treats them as opaque (§3.2).
type Comparer func(a, b []byte) int

// SkipList is a lock-free-for-readers, single-writer ordered multiset.
// Callers must serialize calls to Insert themselves (§5); any number of
// readers may call Contains or use an Iterator concurrently with a single
// in-flight Insert.
type SkipList struct {
	cmp    Comparer
	head   *node
	height atomic.Int32 // 1 <= height <= maxHeight
}

// New returns an empty SkipList ordered by cmp.
func New(cmp Comparer) *SkipList {
	s := &SkipList{
		cmp:  cmp,
		head: newNode(nil, maxHeight),
	}
	s.height.Store(1)
	return s
}

func (s *SkipList) curHeight() int {
	return int(s.height.Load())
}

func randomHeight() int {
	h := 1
	for h < maxHeight && rand.Intn(branching) == 0 {
		h++
	}
	return h
}

// findSplice walks the list from head, filling prevOut[level] with the last
// node at each level whose entry compares less than entry, for every level
// from the current height down to 0.
func (s *SkipList) findSplice(entry []byte, prevOut *[maxHeight]*node) {
	prev := s.head
	for level := s.curHeight() - 1; level >= 0; level-- {
		for {
			next := prev.loadNext(level)
			if next == nil || s.cmp(next.entry, entry) >= 0 {
				break
			}
			prev = next
		}
		prevOut[level] = prev
	}
}

// seekGE returns the first node whose entry compares >= target, or nil if
// none exists.
func (s *SkipList) seekGE(target []byte) *node {
	prev := s.head
	var next *node
	for level := s.curHeight() - 1; level >= 0; level-- {
		for {
			next = prev.loadNext(level)
			if next == nil || s.cmp(next.entry, target) >= 0 {
				break
			}
			prev = next
		}
	}
	return next
}

// seekLT returns the last node whose entry compares strictly less than
// target, or nil if none exists. It re-searches from head at every call
// rather than following back pointers (§4.2: "Prev is O(log n) via
// re-search from head, not via back pointers").
func (s *SkipList) seekLT(target []byte) *node {
	prev := s.head
	for level := s.curHeight() - 1; level >= 0; level-- {
		for {
			next := prev.loadNext(level)
			if next == nil || s.cmp(next.entry, target) >= 0 {
				break
			}
			prev = next
		}
	}
	if prev == s.head {
		return nil
	}
	return prev
}

// Insert adds entry to the skip list. Insert is not safe to call
// concurrently with another Insert; it is safe to call concurrently with
// Contains or any Iterator method (§5).
func (s *SkipList) Insert(entry []byte) {
	var prev [maxHeight]*node
	s.findSplice(entry, &prev)

	height := randomHeight()
	if cur := s.curHeight(); height > cur {
		for i := cur; i < height; i++ {
			prev[i] = s.head
		}
		s.height.Store(int32(height))
	}

	nd := newNode(entry, height)
	for i := 0; i < height; i++ {
		// Link the new node's forward pointer first, then publish it into
		// the predecessor's slot. A reader that loads prev[i]'s next
		// pointer either still sees the old successor or sees nd with
		// nd's own next pointer already initialized — never a half-built
		// node, satisfying the release/acquire pairing required by §5.
		nd.storeNext(i, prev[i].loadNext(i))
		prev[i].storeNext(i, nd)
	}
}

// Contains reports whether an entry comparing equal to target has been
// inserted.
func (s *SkipList) Contains(target []byte) bool {
	nd := s.seekGE(target)
	return nd != nil && s.cmp(nd.entry, target) == 0
}
