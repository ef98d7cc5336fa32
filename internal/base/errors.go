// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/errors"

// ErrCorruption marks an error as indicating that encoded data (a
// WriteBatch, say) is not in the expected format. Callers check for it with
// errors.Is(err, base.ErrCorruption) rather than comparing errors directly,
// since the concrete error returned also carries a human-readable reason.
var ErrCorruption = errors.New("leveldb: corruption")
