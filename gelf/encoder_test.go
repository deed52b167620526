package gelf

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fastjson"

	"github.com/trickstertwo/xgelf"
)

type record struct {
	msg   string
	err   error
	at    time.Time
	level xgelf.Level
	ctx   xgelf.MapContext
}

func (r record) Message() string        { return r.msg }
func (r record) Parameters() []any      { return nil }
func (r record) Err() error             { return r.err }
func (r record) Time() time.Time        { return r.at }
func (r record) Level() xgelf.Level     { return r.level }
func (r record) LevelName() string      { return r.level.String() }
func (r record) ThreadName() string     { return "main" }
func (r record) Source() xgelf.Source   { return xgelf.Source{} }
func (r record) LoggerName() string     { return "orders" }
func (r record) NDC() string            { return "" }
func (r record) Context() xgelf.Context { return r.ctx }

func TestEncode_Payload(t *testing.T) {
	t.Parallel()

	rec := record{
		msg:   "charge failed",
		err:   errors.New("card declined"),
		at:    time.Date(2025, 1, 1, 0, 0, 0, 250*int(time.Millisecond), time.UTC),
		level: xgelf.LevelError,
		ctx:   xgelf.MapContext{"user": "bob", "bad key": "x", "id": "7"},
	}
	x, err := xgelf.NewBuilder().
		WithDefaultFields().
		WithFields(xgelf.MdcField("", "user"), xgelf.MdcField("", "bad key"), xgelf.MdcField("", "id")).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ev := x.Event(rec)
	vals, err := x.ExtractEvent(ev)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	enc := NewEncoder(Options{
		Host:        "web-1",
		FullMessage: true,
		Static:      []xgelf.Pair{{Name: "env", Value: "prod", Valid: true}, {Name: "user", Value: "static", Valid: true}},
	})
	out, err := enc.Encode(ev, vals)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(out)
	if err != nil {
		t.Fatalf("invalid json %s: %v", out, err)
	}
	str := func(k string) string { return string(v.GetStringBytes(k)) }
	if str("version") != "1.1" || str("host") != "web-1" || str("short_message") != "charge failed" {
		t.Fatalf("header: %s", out)
	}
	if str("full_message") != "charge failed\ncard declined" {
		t.Fatalf("full_message: %q", str("full_message"))
	}
	if v.GetInt("level") != 3 {
		t.Fatalf("level: %s", out)
	}
	if !strings.Contains(string(out), `"timestamp":1735689600.250`) {
		t.Fatalf("timestamp: %s", out)
	}
	if str("_Severity") != "ERROR" || str("_Thread") != "main" || str("_LoggerName") != "orders" || str("_env") != "prod" {
		t.Fatalf("additional fields: %s", out)
	}
	if str("_user") != "static" {
		t.Fatalf("static field should win: %s", out)
	}
	if v.Exists("_bad key") || v.Exists("_id") || v.Exists("_NDC") {
		t.Fatalf("rejected or null field written: %s", out)
	}
	if st := enc.Stats(); st.Encoded != 1 || st.Dropped != 2 || st.Failed != 0 {
		t.Fatalf("stats: %+v", st)
	}
}

func TestEncode_EmptyMessage(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(Options{})
	if enc.Host() == "" {
		t.Fatal("host default")
	}
	ev := xgelf.NewEvent(record{level: xgelf.LevelInfo}, nil)
	if _, err := enc.Encode(ev, xgelf.NewValues()); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if st := enc.Stats(); st.Failed != 1 {
		t.Fatalf("stats: %+v", st)
	}
	enc.ResetStats()
	if enc.Stats() != (StatsSnapshot{}) {
		t.Fatal("reset")
	}
}

func TestAppendMillis(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{0: "0.000", 1735689600250: "1735689600.250", 5: "0.005", -1500: "-1.500"}
	for ms, want := range cases {
		var buf buffer
		appendMillis(&buf, ms)
		if string(buf.b) != want {
			t.Fatalf("%d: got %s want %s", ms, buf.b, want)
		}
	}
}

func TestValidFieldName(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"_user": true, "_req.id": true, "_a-b_c": true,
		"_id": false, "_": false, "user": false, "_bad key": false, "_é": false,
	} {
		if got := ValidFieldName(name); got != want {
			t.Fatalf("%q: got %v", name, got)
		}
	}
}
