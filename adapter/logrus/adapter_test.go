package logrusadapter

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/trickstertwo/xgelf"
	"github.com/trickstertwo/xgelf/mdc"
)

func newLogger(t *testing.T, opts Options, fs ...xgelf.Field) (*logrus.Logger, *test.Hook) {
	t.Helper()
	x, err := xgelf.NewBuilder().WithFields(fs...).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	l := logrus.New()
	l.Out = io.Discard
	l.SetLevel(logrus.TraceLevel)
	l.SetReportCaller(true)
	l.AddHook(NewHook(x, opts))
	return l, test.NewLocal(l)
}

func TestHook_AddsExtractedFields(t *testing.T) {
	l, th := newLogger(t, Options{Prefix: "_", SyslogKey: "syslog", LoggerName: "billing"},
		xgelf.LogField("", xgelf.Severity),
		xgelf.LogField("", xgelf.LoggerName),
		xgelf.LogField("", xgelf.NDC),
		xgelf.LogField("", xgelf.SourceMethodName),
		xgelf.DynamicMdcField(regexp.MustCompile(`req\..*`)),
	)

	ctx := mdc.With(context.Background(), "req.id", "42")
	ctx = mdc.PushNDC(ctx, "batch-7")
	l.WithContext(ctx).WithField("req.user", "bob").WithField("other", "x").Warn("late")

	e := th.LastEntry()
	if e == nil {
		t.Fatal("no entry")
	}
	want := map[string]any{
		"_Severity":         "warning",
		"_LoggerName":       "billing",
		"_NDC":              "batch-7",
		"_SourceMethodName": "TestHook_AddsExtractedFields",
		"_req.id":           "42",
		"_req.user":         "bob",
		"syslog":            "4",
	}
	for k, v := range want {
		if e.Data[k] != v {
			t.Fatalf("%s: got %v want %v (data=%v)", k, e.Data[k], v, e.Data)
		}
	}
	if _, ok := e.Data["_other"]; ok {
		t.Fatalf("unmatched key extracted")
	}
}

func TestHook_UnsupportedFieldKeepsSiblings(t *testing.T) {
	x, err := xgelf.NewBuilder().
		WithFields(xgelf.LogField("", xgelf.Time), xgelf.LogField("", xgelf.ThreadName)).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	h := NewHook(x, Options{})
	e := logrus.NewEntry(logrus.New()).WithField("thread", "w-2")
	e.Level = logrus.InfoLevel

	if err := h.Fire(e); !errors.Is(err, xgelf.ErrUnsupportedField) {
		t.Fatalf("expected unsupported field, got %v", err)
	}
	if e.Data["Thread"] != "w-2" {
		t.Fatalf("thread: %v", e.Data["Thread"])
	}
}

func TestRecord_MapsEntry(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	boom := errors.New("boom")
	e := logrus.NewEntry(logrus.New()).WithError(boom).WithField("n", 7)
	e.Time = at
	e.Level = logrus.PanicLevel
	e.Message = "m"

	rec := NewRecord(e, Options{})
	if !errors.Is(rec.Err(), boom) {
		t.Fatalf("err: %v", rec.Err())
	}
	if rec.Level() != xgelf.LevelFatal || rec.LevelName() != "panic" {
		t.Fatalf("level: %v %q", rec.Level(), rec.LevelName())
	}
	if rec.ThreadName() != "goroutine" {
		t.Fatalf("thread: %q", rec.ThreadName())
	}
	if rec.Source().Defined {
		t.Fatalf("source should be undefined without caller")
	}

	ev := xgelf.NewEvent(rec, nil)
	if ev.Timestamp() != at.UnixMilli() {
		t.Fatalf("timestamp: %d", ev.Timestamp())
	}
	if ev.SyslogLevel() != "2" {
		t.Fatalf("syslog: %s", ev.SyslogLevel())
	}
	if v, ok := ev.MdcValue("n"); !ok || v != "7" {
		t.Fatalf("n: %q %v", v, ok)
	}
	if v, ok := ev.MdcValue(logrus.ErrorKey); !ok || v != "boom" {
		t.Fatalf("error: %q %v", v, ok)
	}
}

func TestToLevel(t *testing.T) {
	cases := map[logrus.Level]xgelf.Level{
		logrus.PanicLevel: xgelf.LevelFatal,
		logrus.FatalLevel: xgelf.LevelFatal,
		logrus.ErrorLevel: xgelf.LevelError,
		logrus.WarnLevel:  xgelf.LevelWarn,
		logrus.InfoLevel:  xgelf.LevelInfo,
		logrus.DebugLevel: xgelf.LevelDebug,
		logrus.TraceLevel: xgelf.LevelTrace,
	}
	for ll, want := range cases {
		if got := toLevel(ll); got != want {
			t.Fatalf("%v: got %v want %v", ll, got, want)
		}
	}
}
