package observ

import (
	"strings"
	"sync"
	"testing"

	"tongue/internal/diag"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	done := tm.Track("parse")
	tm.End(lex, "12 tokens")
	done("")
	tm.End(42, "ignored")

	phases := tm.Phases()
	if len(phases) != 2 {
		t.Fatalf("got %d phases", len(phases))
	}
	if phases[0].Name != "lex" || phases[0].Note != "12 tokens" {
		t.Errorf("phase 0 = %+v", phases[0])
	}
	if phases[1].Name != "parse" || phases[1].Note != "" {
		t.Errorf("phase 1 = %+v", phases[1])
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:\n", "lex", "// 12 tokens", "parse", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	report := tm.Report()
	if len(report.Phases) != 2 || report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("report = %+v", report)
	}
}

func TestTimerEmpty(t *testing.T) {
	tm := NewTimer()
	if r := tm.Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("report of empty timer = %+v", r)
	}
	d := tm.Diagnostic()
	if d.Level() != diag.Note || d.Code() != diag.ObsTimings {
		t.Fatalf("diagnostic = %v %v", d.Level(), d.Code())
	}
	if _, ok := d.PrimarySpan(); ok {
		t.Fatalf("timings diagnostic has a span")
	}
	if !strings.HasPrefix(d.String(), "timings: total=0.00ms") {
		t.Fatalf("message = %q", d.String())
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("worker")("")
		}()
	}
	wg.Wait()
	if got := len(tm.Phases()); got != 8 {
		t.Fatalf("got %d phases, want 8", got)
	}
}
