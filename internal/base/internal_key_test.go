// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternalKeyEncodeDecode(t *testing.T) {
	k := MakeInternalKey([]byte("hello"), 100, InternalKeyKindValue)
	require.Equal(t, 13, k.Size())

	buf := make([]byte, k.Size())
	k.Encode(buf)

	got := DecodeInternalKey(buf)
	require.Equal(t, []byte("hello"), got.UserKey)
	require.Equal(t, SeqNum(100), got.SeqNum())
	require.Equal(t, InternalKeyKindValue, got.Kind())
}

func TestInternalCompareOrdering(t *testing.T) {
	// Ascending by user key.
	a := MakeInternalKey([]byte("a"), 5, InternalKeyKindValue)
	b := MakeInternalKey([]byte("b"), 5, InternalKeyKindValue)
	require.Negative(t, InternalCompare(DefaultComparer, a, b))
	require.Positive(t, InternalCompare(DefaultComparer, b, a))

	// For equal user keys, descending by sequence number.
	newer := MakeInternalKey([]byte("a"), 10, InternalKeyKindValue)
	older := MakeInternalKey([]byte("a"), 5, InternalKeyKindValue)
	require.Negative(t, InternalCompare(DefaultComparer, newer, older))

	// For equal user key and sequence number, Value sorts before Delete.
	val := MakeInternalKey([]byte("a"), 5, InternalKeyKindValue)
	del := MakeInternalKey([]byte("a"), 5, InternalKeyKindDelete)
	require.Negative(t, InternalCompare(DefaultComparer, val, del))
}

func TestMakeSearchKeySortsBeforeRealRecords(t *testing.T) {
	search := MakeSearchKey([]byte("k"))
	real := MakeInternalKey([]byte("k"), 42, InternalKeyKindValue)
	require.LessOrEqual(t, InternalCompare(DefaultComparer, search, real), 0)
}
