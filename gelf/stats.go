package gelf

import "sync/atomic"

type stats struct {
	encoded atomic.Uint64
	failed  atomic.Uint64
	dropped atomic.Uint64
}

// StatsSnapshot is a point-in-time counters snapshot.
type StatsSnapshot struct {
	Encoded uint64 // messages encoded
	Failed  uint64 // messages rejected
	Dropped uint64 // additional fields skipped for an invalid or reserved name
}

func (s *stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Encoded: s.encoded.Load(),
		Failed:  s.failed.Load(),
		Dropped: s.dropped.Load(),
	}
}

func (s *stats) reset() {
	s.encoded.Store(0)
	s.failed.Store(0)
	s.dropped.Store(0)
}
