// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package cache

import (
	"sync"

	"github.com/GasolLY/leveldb/internal/hashutil"
)

const (
	numShardBits = 4
	// NumShards is the fixed shard count (§6.4: "16-way sharded").
	NumShards = 1 << numShardBits
)

// ShardedLRUCache is a concurrent, capacity-bounded, reference-counted LRU
// cache split into NumShards independent shards selected by the top bits of
// a key's hash (§6). Splitting the cache this way lets unrelated keys be
// inserted, looked up, and evicted without contending on a single mutex.
type ShardedLRUCache struct {
	shards [NumShards]*shard

	idMu   sync.Mutex
	lastID uint64
}

// NewShardedLRUCache returns a cache with the given total capacity, split
// evenly (rounding up) across NumShards shards. metrics may be nil to
// disable instrumentation.
func NewShardedLRUCache(capacity uint64, metrics *Metrics) *ShardedLRUCache {
	perShard := (capacity + NumShards - 1) / NumShards
	c := &ShardedLRUCache{}
	for i := range c.shards {
		c.shards[i] = newShard(perShard, metrics)
	}
	return c
}

func hashKey(key []byte) uint32 {
	return hashutil.Hash32(key, 0)
}

// shardIndex selects a shard from the top numShardBits bits of hash, so
// that shard assignment and the hash table's own bucket selection (which
// uses the low bits, §6.4) draw from disjoint bits of the same hash.
func shardIndex(hash uint32) uint32 {
	return hash >> (32 - numShardBits)
}

func (c *ShardedLRUCache) shardFor(key []byte) (*shard, uint32) {
	hash := hashKey(key)
	return c.shards[shardIndex(hash)], hash
}

// Insert adds a new entry for key with the given charge against the
// cache's capacity and an optional deleter to run once the entry's last
// reference is released after eviction or Erase. The returned Handle holds
// one reference that the caller must Release.
func (c *ShardedLRUCache) Insert(key []byte, value interface{}, charge uint64, deleter Deleter) *Handle {
	s, hash := c.shardFor(key)
	return s.insert(key, hash, value, charge, deleter)
}

// Lookup returns a Handle for key if it is cached, or nil if it is not. A
// non-nil result holds a reference the caller must Release.
func (c *ShardedLRUCache) Lookup(key []byte) *Handle {
	s, hash := c.shardFor(key)
	return s.lookup(key, hash)
}

// Release drops the reference held by h. h must not be used afterward.
func (c *ShardedLRUCache) Release(h *Handle) {
	c.shards[shardIndex(h.e.hash)].release(h)
}

// Erase removes any entry for key from the cache. Outstanding Handles for
// it remain valid until released; the entry's deleter runs once the last
// one is.
func (c *ShardedLRUCache) Erase(key []byte) {
	s, hash := c.shardFor(key)
	s.erase(key, hash)
}

// Value returns the value associated with h.
func (c *ShardedLRUCache) Value(h *Handle) interface{} {
	return h.e.value
}

// NewID returns a new cache-wide unique id, for callers (such as a
// table-cache layer) that need a namespace to avoid key collisions across
// independent users of the same cache.
func (c *ShardedLRUCache) NewID() uint64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	c.lastID++
	return c.lastID
}

// Prune removes every entry in every shard with no outstanding Handle.
func (c *ShardedLRUCache) Prune() {
	for _, s := range c.shards {
		s.prune()
	}
}

// TotalCharge returns the sum of all shards' current usage.
func (c *ShardedLRUCache) TotalCharge() uint64 {
	var total uint64
	for _, s := range c.shards {
		total += s.totalCharge()
	}
	return total
}
