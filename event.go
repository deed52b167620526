package xgelf

import (
	"fmt"
	"reflect"
	"strconv"
)

// Event adapts one Record to the field resolution contract.
// It is call-scoped and holds no state of its own beyond the record.
type Event struct {
	r  Record
	ts TimestampStrategy
}

// NewEvent wraps r. A nil strategy uses RecordTime with the default clock.
func NewEvent(r Record, ts TimestampStrategy) *Event {
	if ts == nil {
		ts = RecordTime{}
	}
	return &Event{r: r, ts: ts}
}

func (e *Event) Record() Record    { return e.r }
func (e *Event) Message() string   { return e.r.Message() }
func (e *Event) Parameters() []any { return e.r.Parameters() }
func (e *Event) Err() error        { return e.r.Err() }

// Timestamp returns the event time in Unix milliseconds.
func (e *Event) Timestamp() int64 { return e.ts.Timestamp(e.r) }

// SyslogLevel returns the syslog severity of the event as a decimal string.
func (e *Event) SyslogLevel() string {
	return SyslogSeverity(e.r.Level()).String()
}

// Resolve produces the name/value pairs described by f.
//
// Log fields yield one pair, null when the backend lacks the datum. Mdc
// fields yield one pair, null when the key is absent. Dynamic mdc fields
// yield one pair per context key fully matching the pattern, possibly none.
func (e *Event) Resolve(f Field) (Values, error) {
	switch f.Kind {
	case KindLog:
		v, ok, err := e.logValue(f)
		if err != nil {
			return Values{}, err
		}
		return SingleValue(f.Name, v, ok), nil
	case KindMdc:
		v, ok := e.MdcValue(f.Key)
		return SingleValue(f.Name, v, ok), nil
	case KindDynamicMdc:
		re := f.matcher()
		if re == nil {
			return Values{}, &UnsupportedFieldError{Field: f}
		}
		return e.mdcValues(matchFull(re, e.MdcNames())), nil
	default:
		return Values{}, &UnsupportedFieldError{Field: f}
	}
}

func (e *Event) logValue(f Field) (string, bool, error) {
	switch f.Named {
	case Severity:
		return e.r.LevelName(), true, nil
	case ThreadName:
		return e.r.ThreadName(), true, nil
	case LoggerName:
		return e.r.LoggerName(), true, nil
	case SourceClassName:
		src := e.r.Source()
		return src.ClassName, src.Defined && src.ClassName != "", nil
	case SourceSimpleClassName:
		src := e.r.Source()
		return SimpleClassName(src.ClassName), src.Defined && src.ClassName != "", nil
	case SourceMethodName:
		src := e.r.Source()
		return src.MethodName, src.Defined && src.MethodName != "", nil
	case SourceLineNumber:
		src := e.r.Source()
		if !src.Defined || src.Line <= 0 {
			return "", false, nil
		}
		return strconv.Itoa(src.Line), true, nil
	case NDC:
		ndc := e.r.NDC()
		return ndc, ndc != "", nil
	default:
		return "", false, &UnsupportedFieldError{Field: f}
	}
}

func (e *Event) mdcValues(names []string) Values {
	var out Values
	for _, name := range names {
		v, ok := e.MdcValue(name)
		if ok {
			out.Set(name, v)
		} else {
			// Nil, or removed between enumeration and lookup.
			out.SetNull(name)
		}
	}
	return out
}

// MdcValue looks up key in the context and renders it as text.
func (e *Event) MdcValue(key string) (string, bool) {
	ctx := e.r.Context()
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Get(key)
	if !ok || isNil(v) {
		return "", false
	}
	return stringify(v), true
}

// MdcNames returns a copy of every context key.
func (e *Event) MdcNames() []string {
	ctx := e.r.Context()
	if ctx == nil {
		return nil
	}
	keys := ctx.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// isNil also catches typed nil pointers, whose Error or String methods
// would dereference nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
