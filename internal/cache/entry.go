// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package cache implements the concurrent, capacity-bounded,
// reference-counted LRU cache of §6-7: a 16-way sharded cache built from a
// classic two-list ("lru" and "in_use") LRU shard and a hand-rolled open
// addressed chained hash table, ported from LevelDB's util/cache.cc.
package cache

// Deleter is invoked exactly once, when an entry's reference count drops to
// zero after having left the cache (§6.2, §6.3).
type Deleter func(key []byte, value interface{})

// entry is one cache record. Entries form a circular doubly linked list
// (next/prev) and, while present in the hash table, a singly linked hash
// chain (nextHash). An entry is on exactly one of a shard's two lists — lru
// or inUse — while inCache is true; once erased it is on neither, but may
// still be kept alive by outstanding Handles.
type entry struct {
	key     []byte
	value   interface{}
	deleter Deleter
	hash    uint32
	charge  uint64

	refs    uint32
	inCache bool

	next, prev *entry
	nextHash   *entry
}

// Handle is an opaque reference to a cache entry returned by Insert or
// Lookup. The holder must call ShardedLRUCache.Release exactly once per
// Handle (§6.3).
type Handle struct {
	e *entry
}
