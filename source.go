package xgelf

import (
	"runtime"
	"strings"
)

// Source is the code location that emitted an event. Defined is false when
// the backend did not capture a location.
type Source struct {
	ClassName  string
	MethodName string
	File       string
	Line       int
	Defined    bool
}

// SourceFromFunc splits a Go function symbol into class and method.
//
//	github.com/a/pkg.(*Server).Handle -> github.com/a/pkg.Server, Handle
//	github.com/a/pkg.main             -> github.com/a/pkg,        main
//	github.com/a/pkg.run.func1        -> github.com/a/pkg,        run.func1
//	github.com/a/pkg.(*List[...]).Len -> github.com/a/pkg.List,   Len
//
// Type parameter lists are dropped.
func SourceFromFunc(function, file string, line int) Source {
	if function == "" && file == "" {
		return Source{}
	}
	src := Source{File: file, Line: line, Defined: true}
	function = stripTypeParams(function)
	if function == "" {
		return src
	}

	// The package path ends at the first '.' after the last '/'.
	slash := strings.LastIndexByte(function, '/')
	dot := strings.IndexByte(function[slash+1:], '.')
	if dot < 0 {
		src.MethodName = function
		return src
	}
	pkg := function[:slash+1+dot]
	rest := function[slash+1+dot+1:]

	if strings.HasPrefix(rest, "(") {
		if end := strings.Index(rest, ")."); end > 0 {
			recv := strings.TrimPrefix(rest[1:end], "*")
			src.ClassName = pkg + "." + recv
			src.MethodName = rest[end+2:]
			return src
		}
	}
	// Value receivers appear as pkg.Type.Method; closures as pkg.fn.func1.
	// Without type information both look alike, so only an exported first
	// segment is treated as a type.
	if i := strings.IndexByte(rest, '.'); i > 0 && isExported(rest[:i]) && !strings.HasPrefix(rest[i+1:], "func") {
		src.ClassName = pkg + "." + rest[:i]
		src.MethodName = rest[i+1:]
		return src
	}
	src.ClassName = pkg
	src.MethodName = rest
	return src
}

// SourceFromFrame converts a runtime frame.
func SourceFromFrame(f runtime.Frame) Source {
	return SourceFromFunc(f.Function, f.File, f.Line)
}

// SourceFromPC resolves a program counter as recorded by slog or zap.
func SourceFromPC(pc uintptr) Source {
	if pc == 0 {
		return Source{}
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	return SourceFromFrame(f)
}

// SimpleClassName returns the unqualified class: the text after the last
// '.', or the last path element when the class is a bare package path.
func SimpleClassName(class string) string {
	class = stripTypeParams(class)
	if class == "" {
		return ""
	}
	slash := strings.LastIndexByte(class, '/')
	tail := class[slash+1:]
	if i := strings.LastIndexByte(tail, '.'); i >= 0 {
		return tail[i+1:]
	}
	return tail
}

// stripTypeParams removes bracketed segments such as "[...]" or
// "[int,string]". Unbalanced brackets leave s unchanged.
func stripTypeParams(s string) string {
	if strings.IndexByte(s, '[') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '[':
			depth++
		case c == ']':
			if depth == 0 {
				return s
			}
			depth--
		case depth == 0:
			b.WriteByte(c)
		}
	}
	if depth != 0 {
		return s
	}
	return b.String()
}

func isExported(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
