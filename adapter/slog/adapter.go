package slogadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/trickstertwo/xgelf"
	"github.com/trickstertwo/xgelf/mdc"
)

// Record adapts a slog.Record to xgelf.Record.
//
// The diagnostic context is the mdc map carried by ctx overlaid with the
// handler's bound attrs and the record's own attrs; group names prefix keys
// with a dot. NDC comes from mdc.NDC(ctx).
type Record struct {
	r      slog.Record
	ctx    xgelf.MapContext
	err    error
	thread string
	logger string
	ndc    string
}

// NewRecord snapshots r, bound and the mdc state of ctx.
func NewRecord(ctx context.Context, r slog.Record, bound []slog.Attr, group string, opts Options) *Record {
	opts = opts.withDefaults()

	m := mdc.FromContext(ctx).Copy()
	rec := &Record{
		r:      r,
		thread: opts.DefaultThread,
		logger: opts.LoggerName,
		ndc:    mdc.NDC(ctx),
	}
	for _, a := range bound {
		rec.addAttr(m, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.addAttr(m, group, a)
		return true
	})
	rec.ctx = xgelf.MapContext(m)

	if s, ok := m[opts.ThreadKey].(string); ok && s != "" {
		rec.thread = s
	}
	if s, ok := m[opts.LoggerKey].(string); ok && s != "" {
		rec.logger = s
	}
	return rec
}

func (rec *Record) addAttr(m map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			rec.addAttr(m, key, ga)
		}
		return
	}
	v := a.Value.Any()
	if err, ok := v.(error); ok && rec.err == nil {
		rec.err = err
	}
	m[key] = v
}

func (rec *Record) Message() string        { return rec.r.Message }
func (rec *Record) Parameters() []any      { return nil }
func (rec *Record) Err() error             { return rec.err }
func (rec *Record) Time() time.Time        { return rec.r.Time }
func (rec *Record) Level() xgelf.Level     { return toLevel(rec.r.Level) }
func (rec *Record) LevelName() string      { return rec.r.Level.String() }
func (rec *Record) ThreadName() string     { return rec.thread }
func (rec *Record) LoggerName() string     { return rec.logger }
func (rec *Record) NDC() string            { return rec.ndc }
func (rec *Record) Context() xgelf.Context { return rec.ctx }
func (rec *Record) Source() xgelf.Source   { return xgelf.SourceFromPC(rec.r.PC) }

// toLevel folds custom slog levels onto the nearest canonical level below.
func toLevel(l slog.Level) xgelf.Level {
	switch {
	case l >= slog.LevelError+4:
		return xgelf.LevelFatal
	case l >= slog.LevelError:
		return xgelf.LevelError
	case l >= slog.LevelWarn:
		return xgelf.LevelWarn
	case l >= slog.LevelInfo:
		return xgelf.LevelInfo
	case l >= slog.LevelDebug:
		return xgelf.LevelDebug
	default:
		return xgelf.LevelTrace
	}
}
