// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package cache

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// shard is one of a ShardedLRUCache's 16 independent LRU caches (§6.4),
// ported from the teacher's LRUCache. It keeps every cached entry on
// exactly one of two circular doubly linked lists: lru, the entries with no
// outstanding Handle, in least-to-most-recently-used order, and inUse, the
// entries with at least one outstanding Handle in addition to the cache's
// own reference, in no particular order (kept only so Release/ref-count
// bookkeeping has somewhere to find them). ref and unref move an entry
// between the two lists as its external reference count crosses 1.
type shard struct {
	mu       sync.Mutex
	capacity uint64
	usage    uint64
	metrics  *Metrics

	lru   entry // dummy head; lru.prev is newest, lru.next is oldest
	inUse entry // dummy head

	table handleTable
}

func newShard(capacity uint64, metrics *Metrics) *shard {
	s := &shard{capacity: capacity, metrics: metrics}
	s.lru.next, s.lru.prev = &s.lru, &s.lru
	s.inUse.next, s.inUse.prev = &s.inUse, &s.inUse
	s.table.resize()
	return s
}

// ref increments e's reference count, moving it from the lru list to the
// in-use list the moment it gains its first external reference.
func (s *shard) ref(e *entry) {
	if e.refs == 1 && e.inCache {
		s.lruRemove(e)
		s.lruAppend(&s.inUse, e)
	}
	e.refs++
}

// unref decrements e's reference count, moving it back to the lru list
// when its last external reference is dropped, and invoking its deleter
// once the count reaches zero (which can only happen once e is no longer
// in the cache).
func (s *shard) unref(e *entry) {
	if e.refs == 0 {
		panic(errors.AssertionFailedf("cache: unref on entry with zero refcount"))
	}
	e.refs--
	if e.refs == 0 {
		if e.inCache {
			panic(errors.AssertionFailedf("cache: entry reached zero refs while still cached"))
		}
		if e.deleter != nil {
			e.deleter(e.key, e.value)
		}
	} else if e.inCache && e.refs == 1 {
		s.lruRemove(e)
		s.lruAppend(&s.lru, e)
	}
}

func (s *shard) lruRemove(e *entry) {
	e.next.prev = e.prev
	e.prev.next = e.next
}

// lruAppend inserts e as the newest entry of list (just before list's dummy
// head, since list.prev is the current newest entry).
func (s *shard) lruAppend(list, e *entry) {
	e.next = list
	e.prev = list.prev
	e.prev.next = e
	e.next.prev = e
}

func (s *shard) lookup(key []byte, hash uint32) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.table.lookup(key, hash)
	if e == nil {
		s.metrics.incMisses()
		return nil
	}
	s.metrics.incHits()
	s.ref(e)
	return &Handle{e: e}
}

func (s *shard) release(h *Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unref(h.e)
}

// insert adds a new entry for key, evicting the least recently used
// unpinned entries until usage fits within capacity (§6.2, §6.5). A
// capacity of zero disables caching: the returned Handle is still valid,
// but the entry is never linked into either list or the hash table, so it
// is destroyed as soon as the caller releases it.
func (s *shard) insert(key []byte, hash uint32, value interface{}, charge uint64, deleter Deleter) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &entry{
		key:     key,
		value:   value,
		deleter: deleter,
		hash:    hash,
		charge:  charge,
		refs:    1, // the handle returned to the caller
	}

	if s.capacity > 0 {
		e.refs++ // the cache's own reference
		e.inCache = true
		s.lruAppend(&s.inUse, e)
		s.usage += charge
		s.finishErase(s.table.insert(e))
	}

	for s.usage > s.capacity && s.lru.next != &s.lru {
		old := s.lru.next
		if old.refs != 1 {
			panic(errors.AssertionFailedf("cache: lru entry has %d refs, want 1", old.refs))
		}
		if !s.finishErase(s.table.remove(old.key, old.hash)) {
			panic(errors.AssertionFailedf("cache: lru entry missing from hash table"))
		}
		s.metrics.incEvictions()
	}

	return &Handle{e: e}
}

// finishErase removes e (already removed from the hash table by the
// caller) from its list and drops the cache's own reference to it.
// Reports whether e was non-nil, matching the teacher's bool return used
// to assert that a removal the caller expected to succeed actually did.
func (s *shard) finishErase(e *entry) bool {
	if e != nil {
		if !e.inCache {
			panic(errors.AssertionFailedf("cache: finishErase called on an entry not in the cache"))
		}
		s.lruRemove(e)
		e.inCache = false
		s.usage -= e.charge
		s.unref(e)
	}
	return e != nil
}

func (s *shard) erase(key []byte, hash uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishErase(s.table.remove(key, hash))
}

// prune removes every entry with no outstanding external reference.
func (s *shard) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.lru.next != &s.lru {
		e := s.lru.next
		if e.refs != 1 {
			panic(errors.AssertionFailedf("cache: lru entry has %d refs, want 1", e.refs))
		}
		if !s.finishErase(s.table.remove(e.key, e.hash)) {
			panic(errors.AssertionFailedf("cache: lru entry missing from hash table"))
		}
	}
}

func (s *shard) totalCharge() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}
