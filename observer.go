package xgelf

// Observer pattern

// Extraction is a read-only report of one ExtractEvent call.
type Extraction struct {
	Event  *Event
	Values Values // copy per call; safe to hold
	Err    error
}

// Observer is notified after every extraction, failed fields included.
// Implementations MUST be concurrency-safe.
type Observer interface {
	OnExtract(e Extraction)
}

// ObserverFunc adapter.
type ObserverFunc func(Extraction)

func (f ObserverFunc) OnExtract(e Extraction) { f(e) }

func (x *Extractor) notify(ev *Event, vals Values, err error) {
	if len(x.observers) == 0 {
		return
	}
	e := Extraction{Event: ev, Err: err}
	for _, o := range x.observers {
		e.Values = Values{pairs: vals.Pairs()}
		o.OnExtract(e)
	}
}
