// Copyright (c) 2011 The LevelDB Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the optional Prometheus collectors a ShardedLRUCache
// reports into, matching the convention wal.Options uses for its own
// latency histograms: the caller constructs and registers the collectors,
// and a nil field is simply skipped. Passing a nil *Metrics to
// NewShardedLRUCache disables instrumentation entirely.
type Metrics struct {
	// Hits counts Lookup calls that found a live entry.
	Hits prometheus.Counter
	// Misses counts Lookup calls that found nothing.
	Misses prometheus.Counter
	// Evictions counts entries removed to enforce a shard's capacity, not
	// including explicit Erase or Prune calls.
	Evictions prometheus.Counter
}

func (m *Metrics) incHits() {
	if m != nil && m.Hits != nil {
		m.Hits.Inc()
	}
}

func (m *Metrics) incMisses() {
	if m != nil && m.Misses != nil {
		m.Misses.Inc()
	}
}

func (m *Metrics) incEvictions() {
	if m != nil && m.Evictions != nil {
		m.Evictions.Inc()
	}
}
