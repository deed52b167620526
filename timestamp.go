package xgelf

import (
	"github.com/trickstertwo/xclock"
)

// TimestampStrategy extracts the event time in Unix milliseconds. Adapters
// pick one implementation when they are constructed, depending on whether
// their backend records a creation time on its events.
type TimestampStrategy interface {
	Timestamp(r Record) int64
}

// RecordTime reads Record.Time. A zero time falls back to Clock, or to
// xclock.Default() when Clock is nil.
type RecordTime struct {
	Clock xclock.Clock
}

func (s RecordTime) Timestamp(r Record) int64 {
	if t := r.Time(); !t.IsZero() {
		return t.UnixMilli()
	}
	return clockOrDefault(s.Clock).Now().UnixMilli()
}

// ClockTime ignores the record and reads the clock. Use it for backends
// whose events carry no time; hooks run synchronously with the log call so
// the clock reading matches event creation.
type ClockTime struct {
	Clock xclock.Clock
}

func (s ClockTime) Timestamp(Record) int64 {
	return clockOrDefault(s.Clock).Now().UnixMilli()
}

// SelectTimestamp returns RecordTime when the backend records event time and
// ClockTime otherwise.
func SelectTimestamp(recordsTime bool, c xclock.Clock) TimestampStrategy {
	if recordsTime {
		return RecordTime{Clock: c}
	}
	return ClockTime{Clock: c}
}

func clockOrDefault(c xclock.Clock) xclock.Clock {
	if c == nil {
		return xclock.Default()
	}
	return c
}
