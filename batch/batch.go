// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package batch implements the WriteBatch wire format of §4.4/§6.2: an
// ordered stream of Put/Delete records sharing a base sequence number, to
// be applied to a MemTable in stream order. InsertInto adds each record as
// it is decoded, so records that precede a corrupt one are already applied
// when it returns an error.
package batch

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/GasolLY/leveldb/internal/base"
)

// headerLen is the size of a batch's fixed header: an 8-byte little-endian
// sequence number followed by a 4-byte little-endian record count.
const headerLen = 12

// Batch is a mutable, appendable buffer of Put and Delete operations sharing
// a base sequence number, laid out exactly as bytes so it can be copied,
// concatenated, and iterated without any intermediate representation
// (§4.4). The zero value is not usable; use New.
type Batch struct {
	rep []byte
}

// New returns an empty batch with sequence number 0.
func New() *Batch {
	return &Batch{rep: make([]byte, headerLen)}
}

// Seq returns the batch's base sequence number: the sequence assigned to
// its first record by InsertInto.
func (b *Batch) Seq() base.SeqNum {
	return base.SeqNum(binary.LittleEndian.Uint64(b.rep[:8]))
}

// SetSeq sets the batch's base sequence number.
func (b *Batch) SetSeq(seq base.SeqNum) {
	binary.LittleEndian.PutUint64(b.rep[:8], uint64(seq))
}

// Count returns the number of records the batch believes it holds.
func (b *Batch) Count() uint32 {
	return binary.LittleEndian.Uint32(b.rep[8:headerLen])
}

func (b *Batch) setCount(n uint32) {
	binary.LittleEndian.PutUint32(b.rep[8:headerLen], n)
}

// ApproximateSize returns the number of bytes the batch's encoding
// occupies, a metric for deciding when to flush a batch rather than an
// exact accounting of the database-size delta it represents.
func (b *Batch) ApproximateSize() int {
	return len(b.rep)
}

// Reset clears the batch, preserving its current sequence number.
func (b *Batch) Reset() {
	seq := b.Seq()
	b.rep = b.rep[:headerLen]
	for i := range b.rep {
		b.rep[i] = 0
	}
	b.SetSeq(seq)
}

func putVarstring(dst []byte, s []byte) []byte {
	var scratch [binary.MaxVarintLen32]byte
	n := binary.PutUvarint(scratch[:], uint64(len(s)))
	dst = append(dst, scratch[:n]...)
	dst = append(dst, s...)
	return dst
}

// Put appends a Value record for (key, value).
func (b *Batch) Put(key, value []byte) {
	b.setCount(b.Count() + 1)
	b.rep = append(b.rep, byte(base.InternalKeyKindValue))
	b.rep = putVarstring(b.rep, key)
	b.rep = putVarstring(b.rep, value)
}

// Delete appends a Deletion (tombstone) record for key.
func (b *Batch) Delete(key []byte) {
	b.setCount(b.Count() + 1)
	b.rep = append(b.rep, byte(base.InternalKeyKindDelete))
	b.rep = putVarstring(b.rep, key)
}

// Append concatenates src's records onto b, summing their counts (§6.2).
// src's own sequence number is discarded; the combined batch keeps b's.
func (b *Batch) Append(src *Batch) {
	b.setCount(b.Count() + src.Count())
	b.rep = append(b.rep, src.rep[headerLen:]...)
}

// Contents returns the batch's raw encoded bytes, for persistence or
// transmission. The caller must not modify the returned slice.
func (b *Batch) Contents() []byte {
	return b.rep
}

// SetContents returns a new batch holding a copy of contents, which must be
// a previously encoded batch (at least headerLen bytes).
func SetContents(contents []byte) (*Batch, error) {
	if len(contents) < headerLen {
		return nil, errors.Mark(errors.Newf("batch: contents too small: %d bytes", len(contents)), base.ErrCorruption)
	}
	return &Batch{rep: append([]byte(nil), contents...)}, nil
}
