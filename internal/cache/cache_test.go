// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// deletedKeys records which keys a Deleter has been invoked for, safe for
// concurrent use across shards.
type deletedKeys struct {
	mu   sync.Mutex
	keys []string
}

func (d *deletedKeys) deleter() Deleter {
	return func(key []byte, _ interface{}) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.keys = append(d.keys, string(key))
	}
}

func (d *deletedKeys) snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.keys...)
}

// newTestCache returns a ShardedLRUCache whose total capacity is split
// (rounding up) across its NumShards shards — the tests that care about
// eviction order drive a bare shard directly instead.
func newTestCache(capacity uint64) *ShardedLRUCache {
	return NewShardedLRUCache(capacity, nil)
}

func TestCacheInsertAndLookup(t *testing.T) {
	c := newTestCache(1000)
	h := c.Insert([]byte("k"), "v", 1, nil)
	require.NotNil(t, h)
	c.Release(h)

	h2 := c.Lookup([]byte("k"))
	require.NotNil(t, h2)
	require.Equal(t, "v", c.Value(h2))
	c.Release(h2)

	require.Nil(t, c.Lookup([]byte("missing")))
}

// TestCacheEvictionOrder exercises §8's scenario S3: when capacity is
// exceeded, the least recently used unpinned entry is evicted first.
// Single-shard by inserting keys that all hash into shard 0 is impractical
// to force directly, so the test drives a bare shard instead of the
// sharded dispatcher, matching how the teacher's own LRUCache is unit
// tested independent of ShardedLRUCache.
func TestCacheEvictionOrder(t *testing.T) {
	s := newShard(3, nil)
	del := &deletedKeys{}

	put := func(k string) *Handle {
		h := s.insert([]byte(k), hashKey([]byte(k)), k, 1, del.deleter())
		s.release(h)
		return h
	}
	put("a")
	put("b")
	put("c")
	require.Empty(t, del.snapshot())

	// Touching "a" makes it the most recently used, so the next eviction
	// should take "b" rather than "a".
	h := s.lookup([]byte("a"), hashKey([]byte("a")))
	require.NotNil(t, h)
	s.release(h)

	put("d") // capacity 3 exceeded; evicts least-recently-used unpinned entry
	require.Equal(t, []string{"b"}, del.snapshot())

	require.Nil(t, s.lookup([]byte("b"), hashKey([]byte("b"))))
	found := s.lookup([]byte("a"), hashKey([]byte("a")))
	require.NotNil(t, found)
	s.release(found)
}

// TestCachePinningPreventsEviction exercises §8's scenario S4: an entry
// with an outstanding Handle is never evicted even when capacity is
// exceeded, and the cache's usage may temporarily exceed its capacity as a
// result.
func TestCachePinningPreventsEviction(t *testing.T) {
	s := newShard(2, nil)
	del := &deletedKeys{}

	pinned := s.insert([]byte("pinned"), hashKey([]byte("pinned")), "v", 1, del.deleter())
	defer s.release(pinned)

	h2 := s.insert([]byte("b"), hashKey([]byte("b")), "v", 1, del.deleter())
	s.release(h2)
	h3 := s.insert([]byte("c"), hashKey([]byte("c")), "v", 1, del.deleter())
	s.release(h3)

	require.NotContains(t, del.snapshot(), "pinned")
	found := s.lookup([]byte("pinned"), hashKey([]byte("pinned")))
	require.NotNil(t, found)
	s.release(found)
}

// TestCacheEraseWhilePinned exercises §8's scenario S5: erasing a key with
// an outstanding Handle removes it from future Lookups immediately but
// defers the deleter call until the last Handle is released.
func TestCacheEraseWhilePinned(t *testing.T) {
	s := newShard(10, nil)
	del := &deletedKeys{}

	h := s.insert([]byte("k"), hashKey([]byte("k")), "v", 1, del.deleter())
	s.erase([]byte("k"), hashKey([]byte("k")))

	require.Nil(t, s.lookup([]byte("k"), hashKey([]byte("k"))))
	require.Empty(t, del.snapshot())

	s.release(h)
	require.Equal(t, []string{"k"}, del.snapshot())
}

// TestCacheShardIndependence exercises §8's scenario S6: each shard's
// capacity and eviction decisions are independent of every other shard's.
// It drives two bare shards directly (rather than routing through
// ShardedLRUCache's hash-based dispatch, which gives no control over which
// shard a key lands in) so that filling one shard to capacity is guaranteed
// to have no effect on the other.
func TestCacheShardIndependence(t *testing.T) {
	s1 := newShard(1, nil)
	s2 := newShard(1, nil)
	del := &deletedKeys{}

	h1 := s1.insert([]byte("a"), hashKey([]byte("a")), "a", 1, del.deleter())
	s1.release(h1)
	h1b := s1.insert([]byte("b"), hashKey([]byte("b")), "b", 1, del.deleter())
	s1.release(h1b)
	// s1 is at capacity and evicted "a"; s2 has never been touched.
	require.Equal(t, []string{"a"}, del.snapshot())
	require.Equal(t, uint64(1), s1.totalCharge())
	require.Equal(t, uint64(0), s2.totalCharge())
	require.Nil(t, s1.lookup([]byte("a"), hashKey([]byte("a"))))

	h2 := s2.insert([]byte("c"), hashKey([]byte("c")), "c", 1, del.deleter())
	s2.release(h2)
	require.Equal(t, []string{"a"}, del.snapshot())
	require.NotNil(t, s1.lookup([]byte("b"), hashKey([]byte("b"))))
	s1.release(s1.lookup([]byte("b"), hashKey([]byte("b"))))
}

func TestCacheCapacityZeroDisablesCaching(t *testing.T) {
	c := newTestCache(0)
	del := &deletedKeys{}

	h := c.Insert([]byte("k"), "v", 1, del.deleter())
	require.Nil(t, c.Lookup([]byte("k")))
	c.Release(h)
	require.Equal(t, []string{"k"}, del.snapshot())
}

func TestCachePrune(t *testing.T) {
	s := newShard(100, nil)
	del := &deletedKeys{}

	pinned := s.insert([]byte("pinned"), hashKey([]byte("pinned")), "v", 1, del.deleter())
	h := s.insert([]byte("unpinned"), hashKey([]byte("unpinned")), "v", 1, del.deleter())
	s.release(h)

	s.prune()
	require.Equal(t, []string{"unpinned"}, del.snapshot())
	require.Nil(t, s.lookup([]byte("unpinned"), hashKey([]byte("unpinned"))))

	s.release(pinned)
}

func TestCacheNewIDMonotonic(t *testing.T) {
	c := newTestCache(10)
	a := c.NewID()
	b := c.NewID()
	require.Less(t, a, b)
}

// TestCacheConcurrentShards exercises concurrent Insert/Lookup/Release
// across many goroutines and keys, verifying no torn reads or panics under
// the per-shard mutex discipline of §6.4/§7.
func TestCacheConcurrentShards(t *testing.T) {
	c := newTestCache(256)
	var wg sync.WaitGroup
	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := []byte(fmt.Sprintf("g%d-k%d", g, i%8))
				h := c.Insert(key, i, 1, nil)
				if looked := c.Lookup(key); looked != nil {
					c.Release(looked)
				}
				c.Release(h)
			}
		}(g)
	}
	wg.Wait()
}
