package zerologadapter

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/trickstertwo/xclock"
	"github.com/valyala/fastjson"
	"go.uber.org/multierr"

	"github.com/trickstertwo/xgelf"
)

// Sink receives each adapted event with its extracted values. It runs on
// the goroutine that wrote the log line.
type Sink func(ev *xgelf.Event, vals xgelf.Values) error

// Options is an explicit, code-first configuration. Zero values get defaults.
type Options struct {
	ThreadKey     string // default "thread"
	LoggerKey     string // default "logger"
	NDCKey        string // default "ndc"
	LoggerName    string // logger name when LoggerKey is absent
	DefaultThread string // default "goroutine"

	// Timestamped reports whether the zerolog logger adds a timestamp
	// (Logger.With().Timestamp()). Without one the event time is read from
	// Clock when the line is written.
	Timestamped bool
	Clock       xclock.Clock

	// Out receives every line unchanged before extraction, when set.
	Out io.Writer
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
	return o
}

// Writer is a zerolog.LevelWriter that decodes every line, extracts the
// configured fields and hands the result to a Sink.
type Writer struct {
	x    *xgelf.Extractor
	sink Sink
	opts Options
	ts   xgelf.TimestampStrategy
	pool fastjson.ParserPool
}

var _ zerolog.LevelWriter = (*Writer)(nil)

// NewWriter selects the timestamp strategy once, from opts.Timestamped.
func NewWriter(x *xgelf.Extractor, sink Sink, opts Options) *Writer {
	opts = opts.withDefaults()
	return &Writer{
		x:    x,
		sink: sink,
		opts: opts,
		ts:   xgelf.SelectTimestamp(opts.Timestamped, opts.Clock),
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel reports len(p) as written whenever the passthrough write
// succeeds; decode, extraction and sink errors are returned alongside.
func (w *Writer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if w.opts.Out != nil {
		if n, err := w.opts.Out.Write(p); err != nil {
			return n, err
		}
	}

	parser := w.pool.Get()
	rec, err := ParseRecord(parser, p, level, w.opts)
	w.pool.Put(parser)
	if err != nil {
		return len(p), err
	}

	ev := xgelf.NewEvent(rec, w.ts)
	vals, err := w.x.ExtractEvent(ev)
	if w.sink != nil {
		err = multierr.Append(err, w.sink(ev, vals))
	}
	return len(p), err
}

// New builds a zerolog.Logger writing through a Writer. Timestamps and
// caller are added when opts.Timestamped is set.
func New(x *xgelf.Extractor, sink Sink, opts Options) zerolog.Logger {
	zl := zerolog.New(NewWriter(x, sink, opts))
	if opts.Timestamped {
		zl = zl.With().Timestamp().Caller().Logger()
	}
	return zl
}
