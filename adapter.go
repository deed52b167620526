package xgelf

import (
	"sort"
	"time"
)

// Record is the read-only view of one framework log event (Adapter Strategy).
// Backend packages under adapter/ implement it over their native event types.
// Level must return one of the canonical Level values.
type Record interface {
	Message() string
	Parameters() []any
	Err() error
	// Time is the event creation time; zero when the backend does not record one.
	Time() time.Time
	Level() Level
	// LevelName is the backend's own spelling of the level.
	LevelName() string
	ThreadName() string
	Source() Source
	LoggerName() string
	NDC() string
	Context() Context
}

// Context is a point-in-time view of a mapped diagnostic context.
// Keys returns a fresh slice of unique keys on every call.
type Context interface {
	Keys() []string
	Get(key string) (any, bool)
}

// EmptyContext has no keys.
var EmptyContext Context = MapContext(nil)

// MapContext adapts a plain map. The map must not be mutated while the
// context is in use; copy it first when it is shared.
type MapContext map[string]any

func (m MapContext) Keys() []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m MapContext) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}
