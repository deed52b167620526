package zapadapter

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xgelf"
)

// Options is an explicit, code-first configuration. Zero values get defaults.
type Options struct {
	ThreadKey     string // context key holding the thread name; default "thread"
	NDCKey        string // context key holding the NDC string; default "ndc"
	DefaultThread string // thread name when ThreadKey is absent; default "goroutine"
	Prefix        string // prepended to every extracted field name
	TimestampKey  string // when set, adds the event time in Unix millis
	SyslogKey     string // when set, adds the syslog severity
}

func (o Options) withDefaults() Options {
	if o.ThreadKey == "" {
		o.ThreadKey = "thread"
	}
	if o.NDCKey == "" {
		o.NDCKey = "ndc"
	}
	if o.DefaultThread == "" {
		o.DefaultThread = "goroutine"
	}
	return o
}

// Core decorates a zapcore.Core: every written entry is adapted to an
// xgelf.Record, run through the extractor, and forwarded to the wrapped core
// with the extracted pairs appended as fields.
type Core struct {
	zapcore.Core
	x     *xgelf.Extractor
	opts  Options
	ts    xgelf.TimestampStrategy
	bound []zapcore.Field
}

// NewCore wraps next. Zap entries carry their creation time, so the event
// timestamp comes from the entry.
func NewCore(next zapcore.Core, x *xgelf.Extractor, opts Options) *Core {
	return &Core{
		Core: next,
		x:    x,
		opts: opts.withDefaults(),
		ts:   xgelf.SelectTimestamp(true, nil),
	}
}

// With binds fields on the wrapped core and remembers them as context.
func (c *Core) With(fs []zapcore.Field) zapcore.Core {
	child := *c
	child.Core = c.Core.With(fs)
	child.bound = append(append([]zapcore.Field(nil), c.bound...), fs...)
	return &child
}

func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write forwards the entry even when some fields fail to resolve; the
// resolution error is returned alongside any write error.
func (c *Core) Write(ent zapcore.Entry, fs []zapcore.Field) error {
	all := fs
	if len(c.bound) > 0 {
		all = make([]zapcore.Field, 0, len(c.bound)+len(fs))
		all = append(all, c.bound...)
		all = append(all, fs...)
	}
	ev := xgelf.NewEvent(NewRecord(ent, all, c.opts), c.ts)
	vals, err := c.x.ExtractEvent(ev)

	out := make([]zapcore.Field, 0, len(fs)+vals.Len()+2)
	out = append(out, fs...)
	out = append(out, Fields(vals, c.opts.Prefix)...)
	if c.opts.TimestampKey != "" {
		out = append(out, zap.Int64(c.opts.TimestampKey, ev.Timestamp()))
	}
	if c.opts.SyslogKey != "" {
		out = append(out, zap.String(c.opts.SyslogKey, ev.SyslogLevel()))
	}
	return multierr.Append(err, c.Core.Write(ent, out))
}

// Fields converts extracted values to zap fields. Absent values encode as null.
func Fields(vals xgelf.Values, prefix string) []zapcore.Field {
	pairs := vals.Pairs()
	out := make([]zapcore.Field, len(pairs))
	for i, p := range pairs {
		if p.Valid {
			out[i] = zap.String(prefix+p.Name, p.Value)
		} else {
			out[i] = zap.Reflect(prefix+p.Name, nil)
		}
	}
	return out
}

// New builds a *zap.Logger whose core is next decorated with x.
// Caller capture is enabled so source fields resolve.
func New(next zapcore.Core, x *xgelf.Extractor, opts Options, zopts ...zap.Option) *zap.Logger {
	zopts = append([]zap.Option{zap.AddCaller()}, zopts...)
	return zap.New(NewCore(next, x, opts), zopts...)
}
