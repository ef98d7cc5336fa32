// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/redact"
)

// InternalKeyKind enumerates the two record kinds a MemTable entry may carry.
// The numeric values matter: they participate in the trailer packing (§3.1)
// and InternalKeyKindValue must be numerically greater than
// InternalKeyKindDelete so that it sorts first among same-sequence-number
// records and can serve as the "seek past everything at this sequence"
// marker used by LookupKey.
type InternalKeyKind uint8

const (
	// InternalKeyKindDelete marks a tombstone. Its value is always empty.
	InternalKeyKindDelete InternalKeyKind = 0
	// InternalKeyKindValue marks a live value.
	InternalKeyKindValue InternalKeyKind = 1

	// InternalKeyKindMax is the largest valid kind, used by LookupKey to
	// construct a search key that sorts at-or-before any real record with
	// the same user key and sequence number.
	InternalKeyKindMax = InternalKeyKindValue
)

func (k InternalKeyKind) String() string {
	switch k {
	case InternalKeyKindDelete:
		return "DEL"
	case InternalKeyKindValue:
		return "SET"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// InternalKeyTrailer packs a sequence number and a kind into a single 64-bit
// value: (seqNum << 8) | kind. Internal keys with a larger trailer sort
// first for a given user key, which makes the newest record for a key (and,
// within a sequence number, the Value over the Delete) appear first.
type InternalKeyTrailer uint64

// MakeTrailer packs seqNum and kind into a trailer.
func MakeTrailer(seqNum SeqNum, kind InternalKeyKind) InternalKeyTrailer {
	return InternalKeyTrailer(uint64(seqNum)<<8 | uint64(kind))
}

// SeqNum returns the sequence number encoded in the trailer.
func (t InternalKeyTrailer) SeqNum() SeqNum {
	return SeqNum(uint64(t) >> 8)
}

// Kind returns the kind encoded in the trailer.
func (t InternalKeyTrailer) Kind() InternalKeyKind {
	return InternalKeyKind(t)
}

// InternalTrailerLen is the number of trailing bytes used to encode an
// InternalKeyTrailer (§3.1: "the trailing 8 bytes are little-endian").
const InternalTrailerLen = 8

// InternalKey is the (user_key, seq, type) triple of §3.1.
type InternalKey struct {
	UserKey []byte
	Trailer InternalKeyTrailer
}

// MakeInternalKey constructs an internal key from a user key, sequence
// number and kind.
func MakeInternalKey(userKey []byte, seqNum SeqNum, kind InternalKeyKind) InternalKey {
	return InternalKey{UserKey: userKey, Trailer: MakeTrailer(seqNum, kind)}
}

// MakeSearchKey constructs an internal key that sorts at-or-before every
// real record for userKey: the largest possible sequence number paired with
// InternalKeyKindMax. LookupKey builds its search key differently: it pairs
// the user key with the lookup's own snapshot sequence number instead of
// SeqNumMax.
func MakeSearchKey(userKey []byte) InternalKey {
	return MakeInternalKey(userKey, SeqNumMax, InternalKeyKindMax)
}

// SeqNum returns the key's sequence number.
func (k InternalKey) SeqNum() SeqNum { return k.Trailer.SeqNum() }

// Kind returns the key's kind.
func (k InternalKey) Kind() InternalKeyKind { return k.Trailer.Kind() }

// Size returns the length of the encoded key: len(UserKey) + 8.
func (k InternalKey) Size() int {
	return len(k.UserKey) + InternalTrailerLen
}

// Encode writes the encoded form of k (user_key || pack(seq<<8|type), the
// trailer little-endian) into buf, which must be at least k.Size() bytes.
func (k InternalKey) Encode(buf []byte) {
	i := copy(buf, k.UserKey)
	binary.LittleEndian.PutUint64(buf[i:], uint64(k.Trailer))
}

// DecodeInternalKey decodes an encoded internal key produced by Encode.
func DecodeInternalKey(encodedKey []byte) InternalKey {
	n := len(encodedKey) - InternalTrailerLen
	if n < 0 {
		return InternalKey{}
	}
	trailer := InternalKeyTrailer(binary.LittleEndian.Uint64(encodedKey[n:]))
	return InternalKey{UserKey: encodedKey[:n:n], Trailer: trailer}
}

// Compare is a user-key comparison function. The zero value for a user-key
// comparator is bytes.Compare (DefaultComparer).
type Compare func(a, b []byte) int

// DefaultComparer orders user keys lexicographically via bytes.Compare.
var DefaultComparer Compare = bytes.Compare

// InternalCompare orders internal keys ascending by user key (under cmp),
// then descending by trailer (so a higher sequence number, and within equal
// sequence numbers a Value over a Delete, sorts first). This is §3.1's
// ordering.
func InternalCompare(userCmp Compare, a, b InternalKey) int {
	if c := userCmp(a.UserKey, b.UserKey); c != 0 {
		return c
	}
	return cmp.Compare(b.Trailer, a.Trailer)
}

// String implements fmt.Stringer.
func (k InternalKey) String() string {
	return fmt.Sprintf("%s#%s,%s", k.UserKey, k.SeqNum(), k.Kind())
}

// SafeFormat implements redact.SafeFormatter, matching the teacher's
// InternalKey.SafeFormat.
func (k InternalKey) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(k.String()))
}
