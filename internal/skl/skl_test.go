// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package skl

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkipListInsertAndIterate(t *testing.T) {
	s := New(bytes.Compare)
	keys := []string{"d", "b", "a", "c", "e"}
	for _, k := range keys {
		s.Insert([]byte(k))
	}

	it := s.NewIterator()
	it.SeekToFirst()
	var got []string
	for it.Valid() {
		got = append(got, string(it.Key()))
		it.Next()
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestSkipListSeek(t *testing.T) {
	s := New(bytes.Compare)
	for _, k := range []string{"a", "c", "e", "g"} {
		s.Insert([]byte(k))
	}

	it := s.NewIterator()
	it.Seek([]byte("d"))
	require.True(t, it.Valid())
	require.Equal(t, "e", string(it.Key()))

	it.Seek([]byte("z"))
	require.False(t, it.Valid())

	it.Seek([]byte("a"))
	require.True(t, it.Valid())
	require.Equal(t, "a", string(it.Key()))
}

func TestSkipListPrev(t *testing.T) {
	s := New(bytes.Compare)
	for _, k := range []string{"a", "c", "e"} {
		s.Insert([]byte(k))
	}

	it := s.NewIterator()
	it.Seek([]byte("e"))
	require.True(t, it.Valid())
	it.Prev()
	require.True(t, it.Valid())
	require.Equal(t, "c", string(it.Key()))
	it.Prev()
	require.True(t, it.Valid())
	require.Equal(t, "a", string(it.Key()))
	it.Prev()
	require.False(t, it.Valid())
}

func TestSkipListContains(t *testing.T) {
	s := New(bytes.Compare)
	s.Insert([]byte("k1"))
	require.True(t, s.Contains([]byte("k1")))
	require.False(t, s.Contains([]byte("k2")))
}

func TestSkipListMultisetPreservesDuplicates(t *testing.T) {
	s := New(bytes.Compare)
	s.Insert([]byte("a"))
	s.Insert([]byte("a"))

	it := s.NewIterator()
	it.SeekToFirst()
	count := 0
	for it.Valid() {
		require.Equal(t, "a", string(it.Key()))
		count++
		it.Next()
	}
	require.Equal(t, 2, count)
}

func TestSkipListLargeRandomOrdering(t *testing.T) {
	s := New(bytes.Compare)
	n := 2000
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%06d", i)
	}
	shuffled := append([]string(nil), keys...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	for _, k := range shuffled {
		s.Insert([]byte(k))
	}

	sort.Strings(keys)
	it := s.NewIterator()
	it.SeekToFirst()
	for _, want := range keys {
		require.True(t, it.Valid())
		require.Equal(t, want, string(it.Key()))
		it.Next()
	}
	require.False(t, it.Valid())
}

// TestSkipListConcurrentReadDuringWrite exercises §5's concurrent-read/
// single-writer contract: one writer inserting while readers iterate must
// never observe a torn or partially-linked node.
func TestSkipListConcurrentReadDuringWrite(t *testing.T) {
	s := New(bytes.Compare)
	const n = 5000

	done := make(chan struct{})
	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				it := s.NewIterator()
				it.SeekToFirst()
				var prev []byte
				for it.Valid() {
					if prev != nil {
						require.LessOrEqual(t, bytes.Compare(prev, it.Key()), 0)
					}
					prev = it.Key()
					it.Next()
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		s.Insert([]byte(fmt.Sprintf("key-%06d", i)))
	}
	close(done)
	wg.Wait()
}
