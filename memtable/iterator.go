// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package memtable

import (
	"github.com/GasolLY/leveldb/internal/base"
	"github.com/GasolLY/leveldb/internal/skl"
)

// Iterator is a forward/backward iterator over a MemTable's records in
// internal-key order (§3.1, §4.2). It decodes each record on demand; it
// does not copy key or value bytes, so they remain valid only as long as
// the MemTable itself is live. The caller is responsible for keeping the
// MemTable referenced (via Ref) for the iterator's lifetime — NewIterator
// does not take a reference itself, matching the teacher's convention that
// iterator lifetime management is the caller's job.
type Iterator struct {
	it *skl.Iterator
}

// NewIterator returns an unpositioned Iterator over m.
func (m *MemTable) NewIterator() *Iterator {
	return &Iterator{it: m.skl.NewIterator()}
}

// SeekToFirst positions the iterator at the smallest internal key.
func (it *Iterator) SeekToFirst() {
	it.it.SeekToFirst()
}

// Seek positions the iterator at the first record whose internal key
// compares >= target under the MemTable's ordering (§3.1).
func (it *Iterator) Seek(target base.InternalKey) {
	it.it.Seek(encodeMemtableKey(target))
}

// Next advances the iterator. The caller must check Valid first.
func (it *Iterator) Next() {
	it.it.Next()
}

// Prev moves the iterator to the preceding record. The caller must check
// Valid first.
func (it *Iterator) Prev() {
	it.it.Prev()
}

// Valid reports whether the iterator is positioned at a record.
func (it *Iterator) Valid() bool {
	return it.it.Valid()
}

// Key returns the internal key at the iterator's current position. The
// caller must check Valid first.
func (it *Iterator) Key() base.InternalKey {
	return base.DecodeInternalKey(recordKeyBytes(it.it.Key()))
}

// Value returns the value at the iterator's current position (empty for a
// Delete record). The caller must check Valid first.
func (it *Iterator) Value() []byte {
	_, value := decodeRecord(it.it.Key())
	return value
}
