package xgelf

// Facade helpers using the global extractor.
// Usage: vals, err := xgelf.Extract(rec)

func Extract(r Record) (Values, error) { return L().Extract(r) }

func Resolve(r Record, f Field) (Values, error) { return L().Event(r).Resolve(f) }
