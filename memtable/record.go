// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package memtable

import (
	"encoding/binary"

	"github.com/GasolLY/leveldb/internal/base"
)

// A MemTable entry is a self-describing byte record laid out contiguously
// in the arena (§3.2):
//
//	varint(internal_key_len) | internal_key_bytes | varint(value_len) | value_bytes
//
// value_bytes is empty when the record's kind is Delete. Records are
// immutable once inserted into the skip list.

// uvarintLen returns the number of bytes binary.PutUvarint would write for x.
func uvarintLen(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}

// encodedRecordSize returns the number of bytes Add's record occupies.
func encodedRecordSize(ikLen, valueLen int) int {
	return uvarintLen(uint64(ikLen)) + ikLen + uvarintLen(uint64(valueLen)) + valueLen
}

// writeRecord encodes ik and value into buf, which must be exactly
// encodedRecordSize(ik.Size(), len(value)) bytes.
func writeRecord(buf []byte, ik base.InternalKey, value []byte) {
	ikLen := ik.Size()
	n := binary.PutUvarint(buf, uint64(ikLen))
	ik.Encode(buf[n : n+ikLen])
	n += ikLen
	n += binary.PutUvarint(buf[n:], uint64(len(value)))
	copy(buf[n:], value)
}

// recordKeyBytes returns the encoded (length-prefixed) internal key
// portion of record, without decoding it into a base.InternalKey.
func recordKeyBytes(record []byte) []byte {
	ikLen, n := binary.Uvarint(record)
	return record[n : n+int(ikLen)]
}

// decodeRecord decodes a full record into its internal key and value.
func decodeRecord(record []byte) (base.InternalKey, []byte) {
	ikLen, n := binary.Uvarint(record)
	ikBytes := record[n : n+int(ikLen)]
	rest := record[n+int(ikLen):]
	valLen, m := binary.Uvarint(rest)
	value := rest[m : m+int(valLen)]
	return base.DecodeInternalKey(ikBytes), value
}

// encodeMemtableKey builds the length-prefixed internal key used both to
// store a record's key portion and to search for it (§4.3: "memtable key").
func encodeMemtableKey(ik base.InternalKey) []byte {
	ikLen := ik.Size()
	buf := make([]byte, binary.MaxVarintLen64+ikLen)
	n := binary.PutUvarint(buf, uint64(ikLen))
	ik.Encode(buf[n : n+ikLen])
	return buf[:n+ikLen]
}
