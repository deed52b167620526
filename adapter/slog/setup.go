package slogadapter

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xgelf"
)

// Options is an explicit, code-first configuration. Zero values get defaults.
type Options struct {
	ThreadKey     string // attr or mdc key holding the thread name; default "thread"
	LoggerKey     string // attr or mdc key holding the logger name; default "logger"
	LoggerName    string // logger name when LoggerKey is absent
	DefaultThread string // default "goroutine"
	Prefix        string // prepended to every extracted attr key
	TimestampKey  string // when set, adds the event time in Unix millis
	SyslogKey     string // when set, adds the syslog severity
	Clock         xclock.Clock
}

func (o Options) withDefaults() Options {
	if o.ThreadKey == "" {
		o.ThreadKey = "thread"
	}
	if o.LoggerKey == "" {
		o.LoggerKey = "logger"
	}
	if o.DefaultThread == "" {
		o.DefaultThread = "goroutine"
	}
	return o
}

// Handler decorates a slog.Handler with extracted attrs. Extracted attrs
// are always top-level: under an open WithGroup the handler chain is rebuilt
// per record from the ungrouped root, so that path costs more.
type Handler struct {
	next  slog.Handler
	root  slog.Handler
	chain []chainOp
	x     *xgelf.Extractor
	opts  Options
	ts    xgelf.TimestampStrategy
	bound []slog.Attr
	group string
}

// chainOp is one WithAttrs (group empty) or WithGroup call.
type chainOp struct {
	attrs []slog.Attr
	group string
}

// NewHandler wraps next. slog records carry a time unless the caller built
// one by hand, so the record time is used with the clock as fallback.
func NewHandler(next slog.Handler, x *xgelf.Extractor, opts Options) *Handler {
	opts = opts.withDefaults()
	return &Handler{
		next: next,
		root: next,
		x:    x,
		opts: opts,
		ts:   xgelf.SelectTimestamp(true, opts.Clock),
	}
}

func (h *Handler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

// Handle forwards r even when some fields fail to resolve and reports the
// resolution error afterwards.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	ev := xgelf.NewEvent(NewRecord(ctx, r, h.bound, h.group, h.opts), h.ts)
	vals, err := h.x.ExtractEvent(ev)

	extra := Attrs(vals, h.opts.Prefix)
	if h.opts.TimestampKey != "" {
		extra = append(extra, slog.Int64(h.opts.TimestampKey, ev.Timestamp()))
	}
	if h.opts.SyslogKey != "" {
		extra = append(extra, slog.String(h.opts.SyslogKey, ev.SyslogLevel()))
	}

	var werr error
	if h.group == "" {
		out := r.Clone()
		out.AddAttrs(extra...)
		werr = h.next.Handle(ctx, out)
	} else {
		werr = h.ungrouped(extra).Handle(ctx, r)
	}
	if werr != nil {
		return werr
	}
	return err
}

// ungrouped replays the WithAttrs/WithGroup chain on top of root with extra
// bound first, outside every group.
func (h *Handler) ungrouped(extra []slog.Attr) slog.Handler {
	next := h.root
	if len(extra) > 0 {
		next = next.WithAttrs(extra)
	}
	for _, op := range h.chain {
		if op.group != "" {
			next = next.WithGroup(op.group)
		} else {
			next = next.WithAttrs(op.attrs)
		}
	}
	return next
}

func (h *Handler) appendOp(op chainOp) []chainOp {
	out := make([]chainOp, 0, len(h.chain)+1)
	out = append(out, h.chain...)
	return append(out, op)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	child := *h
	child.next = h.next.WithAttrs(attrs)
	child.chain = h.appendOp(chainOp{attrs: attrs})
	child.bound = make([]slog.Attr, 0, len(h.bound)+len(attrs))
	child.bound = append(child.bound, h.bound...)
	for _, a := range attrs {
		if h.group != "" {
			a = slog.Group(h.group, a)
		}
		child.bound = append(child.bound, a)
	}
	return &child
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	child := *h
	child.next = h.next.WithGroup(name)
	child.chain = h.appendOp(chainOp{group: name})
	if h.group != "" {
		child.group = h.group + "." + name
	} else {
		child.group = name
	}
	return &child
}

// Attrs converts extracted values to slog attrs. Absent values carry nil.
func Attrs(vals xgelf.Values, prefix string) []slog.Attr {
	pairs := vals.Pairs()
	out := make([]slog.Attr, len(pairs))
	for i, p := range pairs {
		if p.Valid {
			out[i] = slog.String(prefix+p.Name, p.Value)
		} else {
			out[i] = slog.Any(prefix+p.Name, nil)
		}
	}
	return out
}

// NewJSONLogger builds a *slog.Logger writing JSON through an extracting Handler.
func NewJSONLogger(w io.Writer, x *xgelf.Extractor, hopts *slog.HandlerOptions, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if hopts == nil {
		hopts = &slog.HandlerOptions{AddSource: true}
	}
	return slog.New(NewHandler(slog.NewJSONHandler(w, hopts), x, opts))
}
