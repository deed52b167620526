// Package gelf renders extracted events as GELF 1.1 JSON payloads and can
// compress or chunk them. It does not send them.
package gelf

import (
	"errors"
	"os"
	"strconv"

	"github.com/segmentio/encoding/json"

	"github.com/trickstertwo/xgelf"
)

// Version is the GELF payload version written by Encoder.
const Version = "1.1"

// ErrEmptyMessage is returned for events without a message; GELF requires a
// non-empty short_message.
var ErrEmptyMessage = errors.New("gelf: empty short_message")

// Options is an explicit, code-first configuration. Zero values get defaults.
type Options struct {
	Host string // default os.Hostname(), or "localhost"

	// FullMessage adds full_message holding the message followed by the
	// event error, when the event has one.
	FullMessage bool

	// Additional fields are written in this order, before extracted values.
	// Names get the "_" prefix like extracted ones and win over extracted
	// values of the same name.
	Static []xgelf.Pair
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		if h, err := os.Hostname(); err == nil && h != "" {
			o.Host = h
		} else {
			o.Host = "localhost"
		}
	}
	return o
}

// Encoder is safe for concurrent use.
type Encoder struct {
	opts Options
	st   stats
}

func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts.withDefaults()}
}

// Host reports the host written into every payload.
func (e *Encoder) Host() string { return e.opts.Host }

func (e *Encoder) Stats() StatsSnapshot { return e.st.snapshot() }

func (e *Encoder) ResetStats() { e.st.reset() }

// Encode returns the payload for ev with vals as additional fields. Null
// values are omitted. Names that GELF rejects are skipped and counted in
// Stats().Dropped.
func (e *Encoder) Encode(ev *xgelf.Event, vals xgelf.Values) ([]byte, error) {
	buf := getBuf()
	defer putBuf(buf)
	if err := e.encode(buf, ev, vals); err != nil {
		e.st.failed.Add(1)
		return nil, err
	}
	e.st.encoded.Add(1)
	out := make([]byte, len(buf.b))
	copy(out, buf.b)
	return out, nil
}

func (e *Encoder) encode(buf *buffer, ev *xgelf.Event, vals xgelf.Values) error {
	msg := ev.Message()
	if msg == "" {
		return ErrEmptyMessage
	}

	buf.writeString(`{"version":"` + Version + `","host":`)
	if err := appendString(buf, e.opts.Host); err != nil {
		return err
	}
	buf.writeString(`,"short_message":`)
	if err := appendString(buf, msg); err != nil {
		return err
	}
	if e.opts.FullMessage {
		if err := ev.Err(); err != nil {
			buf.writeString(`,"full_message":`)
			if err := appendString(buf, msg+"\n"+err.Error()); err != nil {
				return err
			}
		}
	}
	buf.writeString(`,"timestamp":`)
	appendMillis(buf, ev.Timestamp())
	buf.writeString(`,"level":`)
	buf.writeString(ev.SyslogLevel())

	seen := make(map[string]struct{}, len(e.opts.Static)+vals.Len())
	for _, p := range e.opts.Static {
		if err := e.appendField(buf, seen, p); err != nil {
			return err
		}
	}
	for _, p := range vals.Pairs() {
		if err := e.appendField(buf, seen, p); err != nil {
			return err
		}
	}
	buf.writeByte('}')
	return nil
}

func (e *Encoder) appendField(buf *buffer, seen map[string]struct{}, p xgelf.Pair) error {
	if !p.Valid {
		return nil
	}
	name := "_" + p.Name
	if !ValidFieldName(name) {
		e.st.dropped.Add(1)
		return nil
	}
	if _, dup := seen[name]; dup {
		return nil
	}
	seen[name] = struct{}{}
	buf.writeByte(',')
	if err := appendString(buf, name); err != nil {
		return err
	}
	buf.writeByte(':')
	return appendString(buf, p.Value)
}

// ValidFieldName reports whether name is an acceptable additional field
// name: a leading underscore followed by word characters, dots or dashes,
// and not the reserved "_id".
func ValidFieldName(name string) bool {
	if len(name) < 2 || name[0] != '_' || name == "_id" {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}

func appendString(buf *buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.writeBytes(b)
	return nil
}

// appendMillis writes ms as seconds with millisecond precision.
func appendMillis(buf *buffer, ms int64) {
	if ms < 0 {
		buf.writeByte('-')
		ms = -ms
	}
	buf.b = strconv.AppendInt(buf.b, ms/1000, 10)
	frac := ms % 1000
	buf.writeByte('.')
	buf.writeByte(byte('0' + frac/100))
	buf.writeByte(byte('0' + frac/10%10))
	buf.writeByte(byte('0' + frac%10))
}
