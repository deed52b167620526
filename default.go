package xgelf

import (
	"sync/atomic"
)

// Default builds an extractor over DefaultFields using the default clock.
func Default() *Extractor {
	return newExtractor(Config{Fields: DefaultFields()})
}

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Extractor]

// SetGlobal sets the extractor used by the package-level helpers.
func SetGlobal(x *Extractor) { global.Store(x) }

// L returns the global extractor, installing Default on first use.
func L() *Extractor {
	if x := global.Load(); x != nil {
		return x
	}
	global.CompareAndSwap(nil, Default())
	return global.Load()
}
