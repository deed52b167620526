package zerologadapter

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fastjson"

	"github.com/trickstertwo/xgelf"
)

// Record is one zerolog JSON line decoded into xgelf.Record.
//
// zerolog events are write-only, so the adapter works on the encoded line.
// Well-known keys follow zerolog's global field names (LevelFieldName,
// MessageFieldName, TimestampFieldName, ErrorFieldName, CallerFieldName);
// every other top-level key is diagnostic context.
type Record struct {
	level     zerolog.Level
	levelName string
	message   string
	at        time.Time
	err       error
	src       xgelf.Source
	thread    string
	logger    string
	ndc       string
	ctx       xgelf.MapContext
}

// ParseRecord decodes line with p. level overrides the line's level field
// unless it is zerolog.NoLevel.
func ParseRecord(p *fastjson.Parser, line []byte, level zerolog.Level, opts Options) (*Record, error) {
	opts = opts.withDefaults()

	v, err := p.ParseBytes(line)
	if err != nil {
		return nil, err
	}
	obj, err := v.Object()
	if err != nil {
		return nil, err
	}

	rec := &Record{
		level:  level,
		thread: opts.DefaultThread,
		logger: opts.LoggerName,
		ctx:    make(xgelf.MapContext, obj.Len()),
	}
	obj.Visit(func(k []byte, v *fastjson.Value) {
		key := string(k)
		switch key {
		case zerolog.LevelFieldName:
			rec.levelName = string(v.GetStringBytes())
			if rec.level == zerolog.NoLevel {
				if l, err := zerolog.ParseLevel(rec.levelName); err == nil {
					rec.level = l
				}
			}
		case zerolog.MessageFieldName:
			rec.message = string(v.GetStringBytes())
		case zerolog.TimestampFieldName:
			rec.at = parseTime(v)
		case zerolog.CallerFieldName:
			rec.src = parseCaller(string(v.GetStringBytes()))
		default:
			val := jsonValue(v)
			rec.ctx[key] = val
			if key == zerolog.ErrorFieldName {
				if s, ok := val.(string); ok {
					rec.err = errors.New(s)
				}
			}
		}
	})
	if rec.levelName == "" {
		rec.levelName = rec.level.String()
	}
	if s, ok := rec.ctx[opts.ThreadKey].(string); ok && s != "" {
		rec.thread = s
	}
	if s, ok := rec.ctx[opts.LoggerKey].(string); ok && s != "" {
		rec.logger = s
	}
	if s, ok := rec.ctx[opts.NDCKey].(string); ok {
		rec.ndc = s
	}
	return rec, nil
}

func (r *Record) Message() string        { return r.message }
func (r *Record) Parameters() []any      { return nil }
func (r *Record) Err() error             { return r.err }
func (r *Record) Time() time.Time        { return r.at }
func (r *Record) Level() xgelf.Level     { return toLevel(r.level) }
func (r *Record) LevelName() string      { return r.levelName }
func (r *Record) ThreadName() string     { return r.thread }
func (r *Record) Source() xgelf.Source   { return r.src }
func (r *Record) LoggerName() string     { return r.logger }
func (r *Record) NDC() string            { return r.ndc }
func (r *Record) Context() xgelf.Context { return r.ctx }

// jsonValue keeps strings and booleans as Go values; numbers, objects and
// arrays keep their JSON text.
func jsonValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeNull:
		return nil
	default:
		return string(v.MarshalTo(nil))
	}
}

// parseTime honours zerolog.TimeFieldFormat. Unparseable values yield the
// zero time so the timestamp strategy can fall back.
func parseTime(v *fastjson.Value) time.Time {
	switch zerolog.TimeFieldFormat {
	case zerolog.TimeFormatUnix:
		if f, err := v.Float64(); err == nil {
			sec := int64(f)
			return time.Unix(sec, int64((f-float64(sec))*1e9))
		}
	case zerolog.TimeFormatUnixMs:
		if n, err := v.Int64(); err == nil {
			return time.UnixMilli(n)
		}
	case zerolog.TimeFormatUnixMicro:
		if n, err := v.Int64(); err == nil {
			return time.UnixMicro(n)
		}
	case zerolog.TimeFormatUnixNano:
		if n, err := v.Int64(); err == nil {
			return time.Unix(0, n)
		}
	default:
		if t, err := time.Parse(zerolog.TimeFieldFormat, string(v.GetStringBytes())); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseCaller splits zerolog's default "file:line" caller encoding. The
// function name is not encoded, so only file and line are known.
func parseCaller(s string) xgelf.Source {
	if s == "" {
		return xgelf.Source{}
	}
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return xgelf.Source{File: s, Defined: true}
	}
	line, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return xgelf.Source{File: s, Defined: true}
	}
	return xgelf.Source{File: s[:i], Line: line, Defined: true}
}

// toLevel folds Panic into LevelFatal. NoLevel and Disabled have no
// severity and map to LevelDebug.
func toLevel(l zerolog.Level) xgelf.Level {
	switch l {
	case zerolog.TraceLevel:
		return xgelf.LevelTrace
	case zerolog.DebugLevel:
		return xgelf.LevelDebug
	case zerolog.InfoLevel:
		return xgelf.LevelInfo
	case zerolog.WarnLevel:
		return xgelf.LevelWarn
	case zerolog.ErrorLevel:
		return xgelf.LevelError
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return xgelf.LevelFatal
	default:
		return xgelf.LevelDebug
	}
}
