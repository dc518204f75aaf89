package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "ERROR", "Phase", "detail", "debug"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopePass, "parse", 0)
	Point(tr, ScopeModule, "file", "main.lc", span.ID(), map[string]string{"b": "2", "a": "1"})
	Point(tr, ScopeNode, "token", "", span.ID(), nil) // отфильтровано уровнем
	span.WithExtra("tokens", "3").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "\u2192 parse") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "file (main.lc) {a=1, b=2}") {
		t.Errorf("point line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "\u2190 parse (ok) {tokens=3}") {
		t.Errorf("end line = %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeDriver, "tokenize", 0).End("")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		kinds = append(kinds, ev["kind"].(string))
	}
	if strings.Join(kinds, ",") != "begin,end" {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	if d := Begin(tr, ScopeDriver, "x", 0).End(""); d != 0 {
		t.Fatalf("nop span measured %v", d)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(tr, ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatal("span not propagated")
	}
}
