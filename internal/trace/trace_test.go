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
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeStage, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := WithTracer(context.Background(), tr)

	ctx, root := Start(ctx, ScopeDriver, "transform")
	fileCtx, file := Start(ctx, ScopeFile, "file:a.jsx")
	Point(fileCtx, ScopeFile, "cache", "miss")
	_, node := Start(fileCtx, ScopeNode, "group")
	node.End("")
	file.WithExtra("groups", "1").End("ok")
	root.End("")

	out := buf.String()
	for _, want := range []string{"→ transform", "→ file:a.jsx", "• cache (miss)", "← file:a.jsx (ok) {groups=1}", "← transform"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "→ group") || strings.Contains(out, "← group") {
		t.Fatalf("node scope emitted at detail level:\n%s", out)
	}
	if node.ID() != 0 {
		t.Fatalf("suppressed span has an id")
	}
}

func TestWithFileTagsEvents(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithFile(WithTracer(context.Background(), ring), "src/a.jsx")

	ctx, file := Start(ctx, ScopeFile, "file")
	Point(ctx, ScopeStage, "cache", "hit")
	file.WithExtra("changed", "true").End("ok")

	events := ring.Snapshot()
	if len(events) != 3 {
		t.Fatalf("got %d events", len(events))
	}
	for _, ev := range events {
		if ev.Extra["file"] != "src/a.jsx" {
			t.Fatalf("%s event without file tag: %+v", ev.Kind, ev.Extra)
		}
	}
	if events[2].Extra["changed"] != "true" {
		t.Fatalf("end event lost its extra: %+v", events[2].Extra)
	}
	if events[0].Extra["changed"] != "" {
		t.Fatalf("begin event shares the span extra map")
	}
	if FileOf(context.Background()) != "" {
		t.Fatalf("unexpected file in empty context")
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	s := Begin(tr, ScopeStage, "parse", 0)
	s.End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev["kind"] != "end" || ev["scope"] != "stage" || ev["name"] != "parse" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingWrapsAndDumps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "first"})
	if r.Len() != 1 || r.Snapshot()[0].Name != "first" {
		t.Fatalf("partial ring: %+v", r.Snapshot())
	}
	for i := range 5 {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Seq: uint64(i), Name: "e"})
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Seq != 2 || snap[2].Seq != 4 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "• e") != 3 {
		t.Fatalf("unexpected dump %q", buf.String())
	}
}

func TestErrorLevelUsesRing(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatalf("expected ring tracer, got %T", tr)
	}
	both, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := Ring(both); !ok {
		t.Fatalf("MultiTracer should expose its ring")
	}
}

func TestNopByDefault(t *testing.T) {
	tr, err := New(Config{})
	if err != nil || tr.Enabled() {
		t.Fatalf("expected disabled tracer, got %T %v", tr, err)
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	if StartHeartbeat(tr, time.Millisecond) != nil {
		t.Fatalf("heartbeat on disabled tracer")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 {
		t.Fatalf("no heartbeat recorded")
	}
	if !strings.HasPrefix(snap[0].Detail, "#1 open=") {
		t.Fatalf("unexpected heartbeat detail %q", snap[0].Detail)
	}
}

func TestSpanEndsOnce(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	before := OpenSpans()
	s := Begin(r, ScopeStage, "parse", 0)
	if OpenSpans() != before+1 {
		t.Fatalf("open spans = %d, want %d", OpenSpans(), before+1)
	}
	s.End("ok")
	s.End("again")
	if OpenSpans() != before || len(r.Snapshot()) != 2 {
		t.Fatalf("open=%d events=%d", OpenSpans(), len(r.Snapshot()))
	}
}

func TestMultiTracerCopiesExtra(t *testing.T) {
	a, b := NewRingTracer(4, LevelDebug), NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, nil, b)
	m.Emit(&Event{Name: "x", Extra: map[string]string{"k": "v"}})

	got := a.Snapshot()
	if len(got) != 1 {
		t.Fatalf("ring a has %d events", len(got))
	}
	got[0].Extra["k"] = "changed"
	if other := b.Snapshot(); len(other) != 1 || other[0].Extra["k"] != "v" {
		t.Fatalf("sinks share Extra: %+v", other)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFormatTextShowsFile(t *testing.T) {
	ev := &Event{Kind: KindPoint, Scope: ScopeFile, Name: "cache", Detail: "hit",
		Extra: map[string]string{"file": "src/a.jsx", "k": "v"}}
	got := string(FormatEvent(ev, FormatText, time.Time{}))
	if !strings.HasSuffix(got, "• cache @src/a.jsx (hit) {k=v}\n") {
		t.Fatalf("unexpected line %q", got)
	}
}
