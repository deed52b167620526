package logrusadapter

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/xgelf"
	"github.com/trickstertwo/xgelf/mdc"
)

// Record adapts a *logrus.Entry to xgelf.Record.
//
// The context is the mdc map of entry.Context overlaid with entry.Data.
// Caller information is present only when the logger reports callers.
type Record struct {
	e      *logrus.Entry
	ctx    xgelf.MapContext
	err    error
	thread string
	logger string
	ndc    string
}

// NewRecord copies the entry data; later changes to e.Data are not seen.
func NewRecord(e *logrus.Entry, opts Options) *Record {
	opts = opts.withDefaults()

	m := mdc.FromContext(e.Context).Copy()
	for k, v := range e.Data {
		m[k] = v
	}
	r := &Record{
		e:      e,
		ctx:    xgelf.MapContext(m),
		thread: opts.DefaultThread,
		logger: opts.LoggerName,
		ndc:    mdc.NDC(e.Context),
	}
	if err, ok := m[logrus.ErrorKey].(error); ok {
		r.err = err
	}
	if s, ok := m[opts.ThreadKey].(string); ok && s != "" {
		r.thread = s
	}
	if s, ok := m[opts.LoggerKey].(string); ok && s != "" {
		r.logger = s
	}
	if s, ok := m[opts.NDCKey].(string); ok && r.ndc == "" {
		r.ndc = s
	}
	return r
}

func (r *Record) Message() string        { return r.e.Message }
func (r *Record) Parameters() []any      { return nil }
func (r *Record) Err() error             { return r.err }
func (r *Record) Time() time.Time        { return r.e.Time }
func (r *Record) Level() xgelf.Level     { return toLevel(r.e.Level) }
func (r *Record) LevelName() string      { return r.e.Level.String() }
func (r *Record) ThreadName() string     { return r.thread }
func (r *Record) LoggerName() string     { return r.logger }
func (r *Record) NDC() string            { return r.ndc }
func (r *Record) Context() xgelf.Context { return r.ctx }

func (r *Record) Source() xgelf.Source {
	if r.e.Caller == nil {
		return xgelf.Source{}
	}
	return xgelf.SourceFromFrame(*r.e.Caller)
}

// toLevel folds Panic into LevelFatal.
func toLevel(l logrus.Level) xgelf.Level {
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel:
		return xgelf.LevelFatal
	case logrus.ErrorLevel:
		return xgelf.LevelError
	case logrus.WarnLevel:
		return xgelf.LevelWarn
	case logrus.InfoLevel:
		return xgelf.LevelInfo
	case logrus.DebugLevel:
		return xgelf.LevelDebug
	default:
		return xgelf.LevelTrace
	}
}
