// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package batch

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/GasolLY/leveldb/internal/base"
)

// Handler receives the decoded records of a batch, in stream order, from
// Iterate. It is the seam InsertInto uses to replay a batch into a
// MemTable, kept separate so a caller (a WAL writer, say) can supply its
// own Handler without the batch package depending on memtable (§4.4).
type Handler interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

func corruptf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("batch: "+format, args...), base.ErrCorruption)
}

func getVarstring(input []byte) (s, rest []byte, ok bool) {
	n, k := binary.Uvarint(input)
	if k <= 0 || k+int(n) > len(input) {
		return nil, input, false
	}
	return input[k : k+int(n)], input[k+int(n):], true
}

// Iterate decodes the batch's records in stream order and delivers each to
// h. It reports the §7 corruption kinds ("too small", "bad Put", "bad
// Delete", "unknown tag", "wrong count") via errors wrapped with
// base.ErrCorruption, and stops at the first one.
func (b *Batch) Iterate(h Handler) error {
	if len(b.rep) < headerLen {
		return corruptf("malformed batch (too small)")
	}

	input := b.rep[headerLen:]
	var found uint32
	for len(input) > 0 {
		found++
		tag := base.InternalKeyKind(input[0])
		input = input[1:]

		switch tag {
		case base.InternalKeyKindValue:
			key, rest, ok := getVarstring(input)
			if !ok {
				return corruptf("bad Put")
			}
			value, rest, ok := getVarstring(rest)
			if !ok {
				return corruptf("bad Put")
			}
			input = rest
			if err := h.Put(key, value); err != nil {
				return err
			}
		case base.InternalKeyKindDelete:
			key, rest, ok := getVarstring(input)
			if !ok {
				return corruptf("bad Delete")
			}
			input = rest
			if err := h.Delete(key); err != nil {
				return err
			}
		default:
			return corruptf("unknown tag %d", tag)
		}
	}

	if found != b.Count() {
		return corruptf("wrong count: header says %d, found %d", b.Count(), found)
	}
	return nil
}

// inserter adapts memtable.Add to the Handler interface, assigning
// consecutive sequence numbers starting at seq as records stream by,
// matching the teacher's MemTableInserter.
type inserter struct {
	seq   base.SeqNum
	addFn func(seq base.SeqNum, kind base.InternalKeyKind, key, value []byte)
}

func (ins *inserter) Put(key, value []byte) error {
	ins.addFn(ins.seq, base.InternalKeyKindValue, key, value)
	ins.seq++
	return nil
}

func (ins *inserter) Delete(key []byte) error {
	ins.addFn(ins.seq, base.InternalKeyKindDelete, key, nil)
	ins.seq++
	return nil
}

// Adder is the subset of *memtable.MemTable's API InsertInto needs. Batch
// depends only on this interface, not on the memtable package, so the two
// packages don't import each other.
type Adder interface {
	Add(seq base.SeqNum, kind base.InternalKeyKind, userKey, value []byte)
}

// InsertInto applies b's records to mem, assigning them sequence numbers
// b.Seq(), b.Seq()+1, ... in stream order (§6.2).
func InsertInto(b *Batch, mem Adder) error {
	ins := &inserter{seq: b.Seq(), addFn: mem.Add}
	return b.Iterate(ins)
}
