package zapadapter

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xgelf"
)

// Record adapts a zap entry and its fields to xgelf.Record.
//
// Fields are encoded once through a zapcore.MapObjectEncoder; the resulting
// map is the diagnostic context. Zap has no thread or NDC concept, so both
// are read from context keys named by Options.
type Record struct {
	ent    zapcore.Entry
	ctx    xgelf.MapContext
	err    error
	thread string
	ndc    string
}

// NewRecord snapshots ent and fields. Neither is retained.
func NewRecord(ent zapcore.Entry, fields []zapcore.Field, opts Options) *Record {
	opts = opts.withDefaults()

	enc := zapcore.NewMapObjectEncoder()
	var err error
	for i := range fields {
		f := &fields[i]
		if f.Type == zapcore.ErrorType && err == nil {
			if e, ok := f.Interface.(error); ok {
				err = e
			}
		}
		f.AddTo(enc)
	}

	r := &Record{
		ent:    ent,
		ctx:    xgelf.MapContext(enc.Fields),
		err:    err,
		thread: opts.DefaultThread,
	}
	if v, ok := enc.Fields[opts.ThreadKey]; ok {
		if s, ok := v.(string); ok && s != "" {
			r.thread = s
		}
	}
	if v, ok := enc.Fields[opts.NDCKey]; ok {
		if s, ok := v.(string); ok {
			r.ndc = s
		}
	}
	return r
}

func (r *Record) Message() string        { return r.ent.Message }
func (r *Record) Parameters() []any      { return nil }
func (r *Record) Err() error             { return r.err }
func (r *Record) Time() time.Time        { return r.ent.Time }
func (r *Record) Level() xgelf.Level     { return toLevel(r.ent.Level) }
func (r *Record) LevelName() string      { return r.ent.Level.CapitalString() }
func (r *Record) ThreadName() string     { return r.thread }
func (r *Record) LoggerName() string     { return r.ent.LoggerName }
func (r *Record) NDC() string            { return r.ndc }
func (r *Record) Context() xgelf.Context { return r.ctx }

func (r *Record) Source() xgelf.Source {
	c := r.ent.Caller
	if !c.Defined {
		return xgelf.Source{}
	}
	return xgelf.SourceFromFunc(c.Function, c.File, c.Line)
}

// toLevel folds DPanic, Panic and Fatal into LevelFatal.
func toLevel(l zapcore.Level) xgelf.Level {
	switch {
	case l < zapcore.DebugLevel:
		return xgelf.LevelTrace
	case l == zapcore.DebugLevel:
		return xgelf.LevelDebug
	case l == zapcore.InfoLevel:
		return xgelf.LevelInfo
	case l == zapcore.WarnLevel:
		return xgelf.LevelWarn
	case l == zapcore.ErrorLevel:
		return xgelf.LevelError
	default:
		return xgelf.LevelFatal
	}
}
