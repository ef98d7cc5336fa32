// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package cache

import "bytes"

// handleTable is an open-addressed hash table whose buckets are hash
// chains of entries linked through entry.nextHash (§6.4). It is a direct
// port of the teacher's HandleTable: the table is resized to keep its
// average chain length at or below 1, doubling in size whenever the
// element count exceeds the bucket count.
type handleTable struct {
	length uint32
	elems  uint32
	list   []*entry
}

// findPointer returns the address of the slot that holds the chain entry
// matching (key, hash), or the address of the chain's trailing nil slot if
// no such entry exists. Because Go slice elements and struct fields are
// addressable, this mirrors the teacher's LRUHandle** technique directly.
func (t *handleTable) findPointer(key []byte, hash uint32) **entry {
	ptr := &t.list[hash&(t.length-1)]
	for *ptr != nil && ((*ptr).hash != hash || !bytes.Equal(key, (*ptr).key)) {
		ptr = &(*ptr).nextHash
	}
	return ptr
}

func (t *handleTable) lookup(key []byte, hash uint32) *entry {
	return *t.findPointer(key, hash)
}

// insert adds e to the table, returning any entry it replaced (same key and
// hash) so the caller can evict it from the LRU lists.
func (t *handleTable) insert(e *entry) *entry {
	ptr := t.findPointer(e.key, e.hash)
	old := *ptr
	if old == nil {
		e.nextHash = nil
	} else {
		e.nextHash = old.nextHash
	}
	*ptr = e
	if old == nil {
		t.elems++
		if t.elems > t.length {
			t.resize()
		}
	}
	return old
}

func (t *handleTable) remove(key []byte, hash uint32) *entry {
	ptr := t.findPointer(key, hash)
	result := *ptr
	if result != nil {
		*ptr = result.nextHash
		t.elems--
	}
	return result
}

// resize doubles the bucket count until it is at least t.elems, starting
// from a floor of 4 buckets, and rehashes every entry into the new table.
func (t *handleTable) resize() {
	newLength := uint32(4)
	for newLength < t.elems {
		newLength *= 2
	}
	newList := make([]*entry, newLength)
	for _, head := range t.list {
		e := head
		for e != nil {
			next := e.nextHash
			idx := e.hash & (newLength - 1)
			e.nextHash = newList[idx]
			newList[idx] = e
			e = next
		}
	}
	t.list = newList
	t.length = newLength
}
