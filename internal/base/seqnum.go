// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// SeqNum is a sequence number defining precedence among records for the same
// user key. A record with a higher sequence number takes precedence over a
// record with an equal user key and a lower sequence number. Sequence numbers
// are stored in the high-order 56 bits of an InternalKeyTrailer (above the
// 8-bit kind); the maximum representable sequence number is 2^56-1.
type SeqNum uint64

const (
	// SeqNumZero is never assigned to a live record.
	SeqNumZero SeqNum = 0
	// SeqNumStart is the first sequence number a MemTable writer should use.
	SeqNumStart SeqNum = 1
	// SeqNumMax is the largest representable sequence number. It is used to
	// construct search keys that sort before every real record for a given
	// user key.
	SeqNumMax SeqNum = 1<<56 - 1
)

func (s SeqNum) String() string {
	if s == SeqNumMax {
		return "inf"
	}
	return fmt.Sprintf("%d", uint64(s))
}

// SafeFormat implements redact.SafeFormatter, matching the teacher's
// SeqNum.SafeFormat so that a host process can log sequence numbers without
// a redaction pass having to guess whether they are sensitive.
func (s SeqNum) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(s.String()))
}
