package logrusadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/xgelf"
)

// Options is an explicit, code-first configuration. Zero values get defaults.
type Options struct {
	ThreadKey     string // default "thread"
	LoggerKey     string // default "logger"
	NDCKey        string // used when the entry context carries no NDC; default "ndc"
	LoggerName    string // logger name when LoggerKey is absent
	DefaultThread string // default "goroutine"
	Prefix        string // prepended to every extracted key
	TimestampKey  string // when set, adds the event time in Unix millis
	SyslogKey     string // when set, adds the syslog severity

	Levels []logrus.Level // default logrus.AllLevels
}

func (o Options) withDefaults() Options {
	if o.ThreadKey == "" {
		o.ThreadKey = "thread"
	}
	if o.LoggerKey == "" {
		o.LoggerKey = "logger"
	}
	if o.NDCKey == "" {
		o.NDCKey = "ndc"
	}
	if o.DefaultThread == "" {
		o.DefaultThread = "goroutine"
	}
	if len(o.Levels) == 0 {
		o.Levels = logrus.AllLevels
	}
	return o
}

// Hook adds extracted fields to every fired entry's Data.
type Hook struct {
	x    *xgelf.Extractor
	opts Options
	ts   xgelf.TimestampStrategy
}

var _ logrus.Hook = (*Hook)(nil)

// NewHook builds a hook. logrus stamps entries before firing hooks, so the
// entry time is the event time.
func NewHook(x *xgelf.Extractor, opts Options) *Hook {
	return &Hook{
		x:    x,
		opts: opts.withDefaults(),
		ts:   xgelf.SelectTimestamp(true, nil),
	}
}

func (h *Hook) Levels() []logrus.Level { return h.opts.Levels }

// Fire writes every extracted pair, absent values as nil. A resolution error
// is returned after the successful pairs have been added; logrus reports
// it on stderr and still writes the entry.
func (h *Hook) Fire(e *logrus.Entry) error {
	ev := xgelf.NewEvent(NewRecord(e, h.opts), h.ts)
	vals, err := h.x.ExtractEvent(ev)

	if e.Data == nil {
		e.Data = make(logrus.Fields, vals.Len()+2)
	}
	for _, p := range vals.Pairs() {
		if p.Valid {
			e.Data[h.opts.Prefix+p.Name] = p.Value
		} else {
			e.Data[h.opts.Prefix+p.Name] = nil
		}
	}
	if h.opts.TimestampKey != "" {
		e.Data[h.opts.TimestampKey] = ev.Timestamp()
	}
	if h.opts.SyslogKey != "" {
		e.Data[h.opts.SyslogKey] = ev.SyslogLevel()
	}
	return err
}
