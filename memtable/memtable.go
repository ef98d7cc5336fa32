// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package memtable implements the in-memory, ordered, append-only
// key-value store of §3-5: an Arena-backed SkipList of length-prefixed
// internal-key/value records, reference counted per §4.3's "destructor is
// private" contract.
package memtable

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/GasolLY/leveldb/internal/arena"
	"github.com/GasolLY/leveldb/internal/base"
	"github.com/GasolLY/leveldb/internal/skl"
)

// GetResult is the outcome of a MemTable.Get lookup.
type GetResult int

const (
	// GetResultNotFound means no record for the key exists at or before the
	// lookup's sequence number: the caller should keep searching older
	// sources (an SSTable, say).
	GetResultNotFound GetResult = iota
	// GetResultFound means value holds the live value for the key.
	GetResultFound
	// GetResultDeleted means the most recent record at or before the
	// lookup's sequence number is a tombstone: the caller must stop
	// searching older sources, the key is known to be absent.
	GetResultDeleted
)

// MemTable is the in-memory, ordered, append-only key-value store of §3.
// Its zero value is not usable; construct one with New. A MemTable starts
// with a reference count of zero: callers that intend to keep a MemTable
// alive beyond a single call must Ref it first.
type MemTable struct {
	cmp   base.Compare
	arena *arena.Arena
	skl   *skl.SkipList
	refs  atomic.Int32
}

// New returns an empty MemTable whose user keys are ordered by cmp (nil
// selects base.DefaultComparer) and whose records are allocated out of an
// Arena with the given block size (§4.1; arena.DefaultBlockSize is a
// reasonable default).
func New(cmp base.Compare, blockSize int) *MemTable {
	if cmp == nil {
		cmp = base.DefaultComparer
	}
	m := &MemTable{
		cmp:   cmp,
		arena: arena.New(blockSize),
	}
	m.skl = skl.New(m.compareRecords)
	return m
}

// compareRecords orders two length-prefixed records by their decoded
// internal keys (§3.1's ordering), and is the SkipList's Comparer.
func (m *MemTable) compareRecords(a, b []byte) int {
	ikA := base.DecodeInternalKey(recordKeyBytes(a))
	ikB := base.DecodeInternalKey(recordKeyBytes(b))
	return base.InternalCompare(m.cmp, ikA, ikB)
}

// Ref increments the MemTable's reference count.
func (m *MemTable) Ref() {
	m.refs.Add(1)
}

// Unref decrements the MemTable's reference count. The last Unref to bring
// the count to zero destroys the MemTable (§4.3: destruction happens only
// via the zero-refcount transition, never directly).
func (m *MemTable) Unref() {
	v := m.refs.Add(-1)
	if v < 0 {
		panic(errors.AssertionFailedf("memtable: reference count went negative: %d", v))
	}
	if v == 0 {
		m.destroy()
	}
}

// destroy releases the MemTable's backing storage. In this implementation
// the arena and skip list are ordinary Go heap values with no external
// resources, so there is nothing to explicitly free; this method exists so
// the private-destructor contract has a concrete home to live at, the way
// the teacher's refcounted types each have one.
func (m *MemTable) destroy() {}

// Add inserts a new record. seq must be no smaller than any sequence
// number already passed to Add on this MemTable's writer (§5: callers
// serialize writers); kind is InternalKeyKindValue or
// InternalKeyKindDelete. Add never overwrites or removes an existing
// record — MemTable is an append-only multiset (§3).
func (m *MemTable) Add(seq base.SeqNum, kind base.InternalKeyKind, userKey, value []byte) {
	if kind == base.InternalKeyKindDelete {
		value = nil
	}
	ik := base.MakeInternalKey(userKey, seq, kind)
	size := encodedRecordSize(ik.Size(), len(value))
	buf := m.arena.Allocate(size)
	writeRecord(buf, ik, value)
	m.skl.Insert(buf)
}

// Get looks up the most recent record for key.UserKey() with sequence
// number <= key.SeqNum() (§4.3). A GetResultFound result reports value; a
// GetResultDeleted result reports that the key is known to be absent as of
// this sequence number (a tombstone masks it); a GetResultNotFound result
// means this MemTable holds no record for the key with sequence number
// <= key.SeqNum() (records written later are not visible).
func (m *MemTable) Get(key LookupKey) (value []byte, result GetResult) {
	it := m.skl.NewIterator()
	it.Seek(key.memtableKey())
	if !it.Valid() {
		return nil, GetResultNotFound
	}
	ik, val := decodeRecord(it.Key())
	if m.cmp(ik.UserKey, key.userKey) != 0 {
		return nil, GetResultNotFound
	}
	switch ik.Kind() {
	case base.InternalKeyKindValue:
		return val, GetResultFound
	case base.InternalKeyKindDelete:
		return nil, GetResultDeleted
	default:
		panic(errors.AssertionFailedf("memtable: record with unknown kind %d", ik.Kind()))
	}
}

// ApproximateMemoryUsage returns the number of bytes the MemTable's arena
// has allocated, an upper bound on the memory live records occupy (§4.1).
func (m *MemTable) ApproximateMemoryUsage() uint64 {
	return m.arena.MemoryUsage()
}
