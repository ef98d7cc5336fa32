// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package skl

// Iterator is a forward (and, via re-search, backward) iterator over a
// SkipList's entries in ascending order. An Iterator remains valid for as
// long as the underlying SkipList is referenced; it observes a monotonic
// prefix of whatever has been inserted (§5).
type Iterator struct {
	list *SkipList
	nd   *node
}

// NewIterator returns an unpositioned Iterator over s.
func (s *SkipList) NewIterator() *Iterator {
	return &Iterator{list: s}
}

// SeekToFirst positions the iterator at the smallest entry.
func (it *Iterator) SeekToFirst() {
	it.nd = it.list.head.loadNext(0)
}

// Seek positions the iterator at the first entry comparing >= target.
func (it *Iterator) Seek(target []byte) {
	it.nd = it.list.seekGE(target)
}

// Next advances the iterator. The caller must check Valid first.
func (it *Iterator) Next() {
	it.nd = it.nd.loadNext(0)
}

// Prev moves the iterator to the entry immediately preceding its current
// position, re-searching from head in O(log n) (§4.2).
func (it *Iterator) Prev() {
	it.nd = it.list.seekLT(it.nd.entry)
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool {
	return it.nd != nil
}

// Key returns the entry at the iterator's current position. The caller
// must check Valid first.
func (it *Iterator) Key() []byte {
	return it.nd.entry
}
