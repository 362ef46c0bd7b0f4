package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "": LevelOff, " PHASE": LevelPhase, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelError, ScopeCommand, false},
		{LevelPhase, ScopeStage, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeDecl, false},
		{LevelDebug, ScopeDecl, true},
		{Level(42), ScopeCommand, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %t, want %t", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"stream": ModeStream, "Ring": ModeRing, "both": ModeBoth} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	span := Begin(tr, ScopeFile, "file:a.json", 0)
	Point(tr, ScopeDecl, "fallback", "Unknown \"x\"\n  child\n", span.ID())
	span.WithExtra("decls", "3").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "file      > file:a.json") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "* fallback: Unknown \"x\" / child") {
		t.Errorf("point line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "< file:a.json: ok [") || !strings.HasSuffix(lines[2], "] decls=3") {
		t.Errorf("end line = %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeStage, "lower", 0).End("")
	Point(tr, ScopeDecl, "dropped", "", 0)

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev jsonEvent
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Scope != "stage" {
			t.Errorf("scope = %q", ev.Scope)
		}
		kinds = append(kinds, ev.Kind)
	}
	if strings.Join(kinds, ",") != "begin,end" {
		t.Fatalf("kinds = %v", kinds)
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, context.DeadlineExceeded
}

func TestStreamTracerStopsAfterWriteError(t *testing.T) {
	w := &failingWriter{}
	tr := NewStreamTracer(w, LevelPhase, FormatText)
	Point(tr, ScopeCommand, "a", "", 0)
	Point(tr, ScopeCommand, "b", "", 0)
	if w.calls != 1 {
		t.Fatalf("writer called %d times after failure", w.calls)
	}
	if err := tr.Close(); err == nil {
		t.Fatal("Close must report the write error")
	}
}

func TestSpanEndIsOnce(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	s := Begin(r, ScopeStage, "decode", 0)
	s.End("")
	if d := s.End("again"); d != 0 {
		t.Fatalf("second End returned %v", d)
	}
	if n := len(r.Snapshot()); n != 2 {
		t.Fatalf("events = %d, want begin and one end", n)
	}
	var nilSpan *Span
	nilSpan.WithExtra("k", "v").End("")
	if nilSpan.ID() != 0 {
		t.Fatal("nil span must have id 0")
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeDecl, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(LevelDebug, NewStreamTracer(&buf, LevelDebug, FormatText), ring)
	Point(m, ScopeCommand, "start", "", 0)
	if RingOf(m) != ring || len(ring.Snapshot()) != 1 || buf.Len() == 0 {
		t.Fatal("event did not reach both tracers")
	}
	if RingOf(Nop) != nil {
		t.Fatal("Nop has no ring")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "1" {
		t.Fatalf("snapshot = %+v", snap)
	}
	StartHeartbeat(Nop, time.Millisecond)()
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	r := NewRingTracer(1, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer lost in context")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if CurrentSpan(ctx).SpanID != 7 {
		t.Fatal("span context lost")
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	if _, err := New(Config{Level: LevelPhase, Mode: 9}); err == nil {
		t.Error("expected error for unknown mode")
	}
	var buf bytes.Buffer
	both, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, OutputPath: "t.ndjson"})
	if err != nil {
		t.Fatalf("New(both): %v", err)
	}
	Point(both, ScopeCommand, "x", "", 0)
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("ndjson extension must select json: %q", buf.String())
	}
	if RingOf(both) == nil {
		t.Error("both mode must keep a ring")
	}
}
