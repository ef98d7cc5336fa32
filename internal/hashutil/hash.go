// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package hashutil provides the 32-bit seeded hash used for cache keys and
// shard selection (spec §4.6, §6.4). It reproduces the shape of LevelDB's
// util/hash.cc: process the input four bytes at a time with a multiplicative
// mix, then fold in any trailing bytes. Bit-for-bit compatibility with
// LevelDB is not required (and not attempted) — only a deterministic,
// well-distributed hash is.
package hashutil

import "encoding/binary"

const (
	mixConstant = 0xc6a4a793
	mixShift    = 24
)

// Hash32 computes a seeded 32-bit hash of data.
func Hash32(data []byte, seed uint32) uint32 {
	h := seed ^ (uint32(len(data)) * mixConstant)

	for len(data) >= 4 {
		h += binary.LittleEndian.Uint32(data)
		data = data[4:]
		h *= mixConstant
		h ^= h >> 16
	}

	switch len(data) {
	case 3:
		h += uint32(data[2]) << 16
		fallthrough
	case 2:
		h += uint32(data[1]) << 8
		fallthrough
	case 1:
		h += uint32(data[0])
		h *= mixConstant
		h ^= h >> mixShift
	}

	return h
}
