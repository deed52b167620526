package xgelf

import (
	"regexp"
)

// FieldKind identifies which variant of a Field is active.
type FieldKind uint8

const (
	KindLog FieldKind = iota + 1
	KindMdc
	KindDynamicMdc
)

func (k FieldKind) String() string {
	switch k {
	case KindLog:
		return "log"
	case KindMdc:
		return "mdc"
	case KindDynamicMdc:
		return "dynamic-mdc"
	default:
		return "unknown"
	}
}

// NamedField is a well-known log attribute.
type NamedField uint8

const (
	Time NamedField = iota + 1
	Severity
	ThreadName
	SourceClassName
	SourceLineNumber
	SourceMethodName
	SourceSimpleClassName
	LoggerName
	Server
	Marker
	NDC
)

// String returns the conventional GELF field name.
func (n NamedField) String() string {
	switch n {
	case Time:
		return "Time"
	case Severity:
		return "Severity"
	case ThreadName:
		return "Thread"
	case SourceClassName:
		return "SourceClassName"
	case SourceLineNumber:
		return "SourceLineNumber"
	case SourceMethodName:
		return "SourceMethodName"
	case SourceSimpleClassName:
		return "SourceSimpleClassName"
	case LoggerName:
		return "LoggerName"
	case Server:
		return "Server"
	case Marker:
		return "Marker"
	case NDC:
		return "NDC"
	default:
		return "Unknown"
	}
}

// Field describes what to extract from an event. It is a compact union:
// Kind selects which of Named, Key or Pattern is meaningful.
type Field struct {
	Kind    FieldKind
	Name    string
	Named   NamedField
	Key     string
	Pattern *regexp.Regexp

	full *regexp.Regexp // Pattern anchored at both ends
}

// LogField extracts a well-known attribute under name. An empty name uses
// the conventional one.
func LogField(name string, n NamedField) Field {
	if name == "" {
		name = n.String()
	}
	return Field{Kind: KindLog, Name: name, Named: n}
}

// MdcField extracts a single context key. An empty name uses the key.
func MdcField(name, key string) Field {
	if name == "" {
		name = key
	}
	return Field{Kind: KindMdc, Name: name, Key: key}
}

// DynamicMdcField extracts every context key fully matching pattern.
// Names are discovered at resolution time.
func DynamicMdcField(pattern *regexp.Regexp) Field {
	f := Field{Kind: KindDynamicMdc, Pattern: pattern}
	if pattern != nil {
		f.full = anchored(pattern)
	}
	return f
}

// MustDynamicMdcField compiles expr and panics if it is invalid.
func MustDynamicMdcField(expr string) Field {
	return DynamicMdcField(regexp.MustCompile(expr))
}

func (f Field) matcher() *regexp.Regexp {
	if f.full != nil {
		return f.full
	}
	if f.Pattern == nil {
		return nil
	}
	return anchored(f.Pattern)
}

func (f Field) String() string {
	switch f.Kind {
	case KindLog:
		return "LogField{" + f.Name + "=" + f.Named.String() + "}"
	case KindMdc:
		return "MdcField{" + f.Name + "=" + f.Key + "}"
	case KindDynamicMdc:
		if f.Pattern == nil {
			return "DynamicMdcField{<nil>}"
		}
		return "DynamicMdcField{" + f.Pattern.String() + "}"
	default:
		return "Field{kind=" + f.Kind.String() + "}"
	}
}

// DefaultFields returns the well-known fields the event adapter can resolve,
// under their conventional names.
func DefaultFields() []Field {
	return []Field{
		LogField("", Severity),
		LogField("", ThreadName),
		LogField("", SourceClassName),
		LogField("", SourceMethodName),
		LogField("", SourceLineNumber),
		LogField("", SourceSimpleClassName),
		LogField("", LoggerName),
		LogField("", NDC),
	}
}
