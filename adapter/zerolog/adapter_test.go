package zerologadapter

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/trickstertwo/xclock"
	"github.com/valyala/fastjson"

	"github.com/trickstertwo/xgelf"
)

type captured struct {
	ev   *xgelf.Event
	vals xgelf.Values
}

func capture(out *[]captured) Sink {
	return func(ev *xgelf.Event, vals xgelf.Values) error {
		*out = append(*out, captured{ev: ev, vals: vals})
		return nil
	}
}

func TestWriter_ExtractsFromJSONLine(t *testing.T) {
	var got []captured
	var raw bytes.Buffer
	x, err := xgelf.NewBuilder().
		WithDefaultFields().
		WithFields(xgelf.MustDynamicMdcField(`req\..*`), xgelf.MdcField("", "count")).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	zl := New(x, capture(&got), Options{Timestamped: true, LoggerName: "jobs", Out: &raw})

	zl.Warn().
		Str("req.id", "42").
		Str("req.user", "bob").
		Str("other", "x").
		Int("count", 3).
		Str("thread", "w-1").
		Msg("retrying")

	if raw.Len() == 0 {
		t.Fatal("line not passed through")
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	ev, vals := got[0].ev, got[0].vals
	if ev.Message() != "retrying" {
		t.Fatalf("message: %q", ev.Message())
	}
	if ev.SyslogLevel() != "4" {
		t.Fatalf("syslog: %s", ev.SyslogLevel())
	}

	want := map[string]string{
		"Severity":   "warn",
		"Thread":     "w-1",
		"LoggerName": "jobs",
		"req.id":     "42",
		"req.user":   "bob",
		"count":      "3",
	}
	m := vals.Map()
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("%s: got %q want %q (all=%v)", k, m[k], v, m)
		}
	}
	if _, ok := m["other"]; ok {
		t.Fatalf("unmatched key extracted")
	}
	if _, ok := m["SourceLineNumber"]; !ok {
		t.Fatalf("caller line missing: %v", m)
	}
	if _, ok := m["SourceClassName"]; ok {
		t.Fatalf("class name cannot be known from zerolog caller: %v", m)
	}
}

func TestWriter_ClockTimeWithoutTimestamp(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var got []captured
	x, err := xgelf.NewBuilder().WithFields(xgelf.LogField("", xgelf.Severity)).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	w := NewWriter(x, capture(&got), Options{Clock: xclock.NewFrozen(at)})
	zerolog.New(w).Info().Msg("no time")

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if ts := got[0].ev.Timestamp(); ts != at.UnixMilli() {
		t.Fatalf("timestamp: got %d want %d", ts, at.UnixMilli())
	}
}

func TestWriter_ReportsErrorsButCountsBytes(t *testing.T) {
	x, err := xgelf.NewBuilder().WithFields(xgelf.LogField("", xgelf.Marker)).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sinkErr := errors.New("sink down")
	w := NewWriter(x, func(*xgelf.Event, xgelf.Values) error { return sinkErr }, Options{})

	line := []byte(`{"level":"info","message":"m"}` + "\n")
	n, err := w.Write(line)
	if n != len(line) {
		t.Fatalf("n: %d", n)
	}
	if !errors.Is(err, xgelf.ErrUnsupportedField) || !errors.Is(err, sinkErr) {
		t.Fatalf("expected both errors, got %v", err)
	}

	if _, err := w.Write([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestParseRecord_Fields(t *testing.T) {
	var p fastjson.Parser
	line := []byte(`{"level":"error","time":"2024-12-31T23:59:59Z","caller":"/src/app/main.go:17","error":"boom","message":"failed","ndc":"a b","n":1.5,"ok":true,"nested":{"k":"v"},"nil":null}`)
	rec, err := ParseRecord(&p, line, zerolog.NoLevel, Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Level() != xgelf.LevelError || rec.LevelName() != "error" {
		t.Fatalf("level: %v %q", rec.Level(), rec.LevelName())
	}
	if !rec.Time().Equal(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("time: %v", rec.Time())
	}
	src := rec.Source()
	if !src.Defined || src.File != "/src/app/main.go" || src.Line != 17 {
		t.Fatalf("source: %+v", src)
	}
	if rec.Err() == nil || rec.Err().Error() != "boom" {
		t.Fatalf("err: %v", rec.Err())
	}
	if rec.NDC() != "a b" {
		t.Fatalf("ndc: %q", rec.NDC())
	}

	ev := xgelf.NewEvent(rec, nil)
	cases := map[string]string{"n": "1.5", "ok": "true", "nested": `{"k":"v"}`, "error": "boom"}
	for k, want := range cases {
		if v, ok := ev.MdcValue(k); !ok || v != want {
			t.Fatalf("%s: got %q %v want %q", k, v, ok, want)
		}
	}
	if _, ok := ev.MdcValue("nil"); ok {
		t.Fatalf("null should be absent")
	}
}

func TestToLevel(t *testing.T) {
	cases := map[zerolog.Level]xgelf.Level{
		zerolog.TraceLevel: xgelf.LevelTrace,
		zerolog.DebugLevel: xgelf.LevelDebug,
		zerolog.InfoLevel:  xgelf.LevelInfo,
		zerolog.WarnLevel:  xgelf.LevelWarn,
		zerolog.ErrorLevel: xgelf.LevelError,
		zerolog.FatalLevel: xgelf.LevelFatal,
		zerolog.PanicLevel: xgelf.LevelFatal,
		zerolog.NoLevel:    xgelf.LevelDebug,
	}
	for zl, want := range cases {
		if got := toLevel(zl); got != want {
			t.Fatalf("%v: got %v want %v", zl, got, want)
		}
	}
}
