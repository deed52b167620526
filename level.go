package xgelf

import "strconv"

// Level mirrors slog numeric semantics and extends with Trace (-8) and Fatal (12).
// Backend adapters translate their native levels into it.
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelFatal Level = 12
)

func (l Level) String() string {
	switch {
	case l >= LevelFatal:
		return "FATAL"
	case l >= LevelError:
		return "ERROR"
	case l >= LevelWarn:
		return "WARN"
	case l >= LevelInfo:
		return "INFO"
	case l >= LevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}

// Syslog is a wire-level syslog severity (RFC 5424, 0-7).
type Syslog int

const (
	SyslogEmergency Syslog = iota
	SyslogAlert
	SyslogCritical
	SyslogError
	SyslogWarning
	SyslogNotice
	SyslogInformational
	SyslogDebug
)

// DefaultSyslogLevel is used for levels without a syslog equivalent.
const DefaultSyslogLevel = SyslogDebug

func (s Syslog) String() string { return strconv.Itoa(int(s)) }

// SyslogSeverity maps a level onto the syslog scale: Fatal 2, Error 3,
// Warn 4, Info 6. Any other value, including levels between the named
// ones, yields DefaultSyslogLevel. Adapters normalise native levels first.
func SyslogSeverity(l Level) Syslog {
	switch l {
	case LevelFatal:
		return SyslogCritical
	case LevelError:
		return SyslogError
	case LevelWarn:
		return SyslogWarning
	case LevelInfo:
		return SyslogInformational
	default:
		return DefaultSyslogLevel
	}
}
