package xgelf

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Extractor resolves a fixed set of fields against records. It is immutable
// after Build and safe for concurrent use.
type Extractor struct {
	fields       []Field
	ts           TimestampStrategy
	includeNulls bool
	log          *zap.Logger
	observers    []Observer
}

// Factory: internal constructor.
func newExtractor(cfg Config) *Extractor {
	fields := make([]Field, len(cfg.Fields))
	copy(fields, cfg.Fields)
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ts := cfg.Timestamp
	if ts == nil {
		ts = RecordTime{Clock: cfg.Clock}
	}
	return &Extractor{
		fields:       fields,
		ts:           ts,
		includeNulls: cfg.IncludeNulls,
		log:          log,
		observers:    append([]Observer(nil), cfg.Observers...),
	}
}

// Fields returns a copy of the configured fields.
func (x *Extractor) Fields() []Field {
	out := make([]Field, len(x.fields))
	copy(out, x.fields)
	return out
}

// Event wraps r with the extractor's timestamp strategy.
func (x *Extractor) Event(r Record) *Event {
	return NewEvent(r, x.ts)
}

// Extract resolves every configured field against r. Fields are resolved
// independently: a failing field is reported in the returned error while
// its siblings still contribute. A later pair replaces an earlier pair of
// the same name. Null pairs are dropped unless IncludeNulls was set.
func (x *Extractor) Extract(r Record) (Values, error) {
	return x.ExtractEvent(x.Event(r))
}

// ExtractEvent is Extract for an event built by the caller, typically an
// adapter that selected its own timestamp strategy.
func (x *Extractor) ExtractEvent(ev *Event) (Values, error) {
	var (
		out   Values
		index = make(map[string]int, len(x.fields))
		errs  error
	)
	for _, f := range x.fields {
		vs, err := ev.Resolve(f)
		if err != nil {
			x.log.Debug("field resolution failed",
				zap.Stringer("field", f),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)
			continue
		}
		for _, p := range vs.pairs {
			if !p.Valid && !x.includeNulls {
				continue
			}
			if i, ok := index[p.Name]; ok {
				out.pairs[i] = p
				continue
			}
			index[p.Name] = len(out.pairs)
			out.pairs = append(out.pairs, p)
		}
	}
	x.notify(ev, out, errs)
	return out, errs
}
