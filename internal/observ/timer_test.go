package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	stop := tm.Start("parse")
	stop("12 nodes")
	stop("ignored")
	err := tm.Measure("transform", func() error { return errors.New("boom") })
	if err == nil {
		t.Fatalf("Measure should return fn error")
	}

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].Note != "12 nodes" || r.Phases[1].Note != "failed" {
		t.Fatalf("unexpected notes %+v", r.Phases)
	}
	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "// 12 nodes") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Start("x")("")
	if err := tm.Measure("y", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("nil timer should report nothing")
	}
}

func TestTotals(t *testing.T) {
	totals := NewTotals()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			totals.Add(Report{Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "emit", DurationMS: 0.5}}})
		}()
	}
	wg.Wait()
	r := totals.Report()
	if totals.Files() != 4 || len(r.Phases) != 2 {
		t.Fatalf("unexpected totals %+v", r)
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].DurationMS != 4 || r.TotalMS != 6 {
		t.Fatalf("unexpected sums %+v", r)
	}
}
