// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package memtable

import "github.com/GasolLY/leveldb/internal/base"

// LookupKey is the argument to MemTable.Get: a user key paired with the
// sequence number a read should be performed as of (§4.3). It encodes the
// "memtable key" used to seek into the skip list — a user key suffixed with
// the largest trailer (seq, InternalKeyKindMax) that could legally precede
// any real record for that user key at or before seq.
type LookupKey struct {
	userKey []byte
	seq     base.SeqNum
}

// MakeLookupKey builds a LookupKey for userKey as of seq: Get will return
// the most recent record for userKey with sequence number <= seq.
func MakeLookupKey(userKey []byte, seq base.SeqNum) LookupKey {
	return LookupKey{userKey: userKey, seq: seq}
}

// UserKey returns the key's unmodified user key.
func (k LookupKey) UserKey() []byte { return k.userKey }

// SeqNum returns the snapshot sequence number the lookup is performed as of.
func (k LookupKey) SeqNum() base.SeqNum { return k.seq }

// memtableKey returns the length-prefixed internal key used to seek: the
// user key paired with the trailer (seq, InternalKeyKindMax), which sorts
// immediately before any real record at seq (§3.1's trailer ordering puts a
// higher kind first for equal sequence numbers, so a real record with kind
// Value or Delete written at exactly seq still sorts after this key only if
// its own trailer is smaller; since InternalKeyKindMax already equals the
// largest real kind, the search key sorts at-or-before every record with
// sequence number <= seq).
func (k LookupKey) memtableKey() []byte {
	ik := base.MakeInternalKey(k.userKey, k.seq, base.InternalKeyKindMax)
	return encodeMemtableKey(ik)
}
