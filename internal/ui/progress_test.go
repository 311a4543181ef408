package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stylename/internal/buildpipeline"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("transform", files, nil).(*progressModel)
}

func TestApplyEventUpdatesItems(t *testing.T) {
	m := newModel("a.jsx", "b.jsx")
	m.applyEvent(buildpipeline.Event{File: "a.jsx", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(buildpipeline.Event{File: "b.jsx", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusError, Err: errors.New("empty initializer")})
	if m.items[1].status != "error" || m.items[1].err != "empty initializer" {
		t.Fatalf("unexpected item %+v", m.items[1])
	}
	if got := m.percent(); got != (0.3+1.0)/2 {
		t.Fatalf("percent = %v", got)
	}
	m.applyEvent(buildpipeline.Event{File: "unknown.jsx", Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageTransform, Status: buildpipeline.StatusWorking})
	if m.stageLabel != "rewriting" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
}

func TestViewRendersFiles(t *testing.T) {
	m := newModel("src/components/very/long/path/to/a/component/file/Button.jsx")
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m.applyEvent(buildpipeline.Event{File: m.items[0].path, Status: buildpipeline.StatusCached})
	view := m.View()
	if !strings.Contains(view, "transform") || !strings.Contains(view, "cached") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	if !strings.Contains(view, "...") {
		t.Fatalf("long path not truncated:\n%s", view)
	}
}

func TestCountsFooter(t *testing.T) {
	m := newModel("a.jsx", "b.jsx", "c.jsx")
	m.applyEvent(buildpipeline.Event{File: "a.jsx", Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "b.jsx", Status: buildpipeline.StatusCached})
	if got := m.counts(); got != "2/3 rewritten, 1 cached, 0 failed" {
		t.Fatalf("counts = %q", got)
	}
	if !strings.Contains(stripANSI(m.View()), "2/3 rewritten") {
		t.Fatalf("footer missing:\n%s", m.View())
	}
}

func TestDoneQuits(t *testing.T) {
	m := newModel("a.jsx")
	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatalf("done message should quit")
	}
	if !strings.HasPrefix(strings.TrimSpace(stripANSI(m.View())), "done:") {
		t.Fatalf("unexpected view after done:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"日本語のパス", 7, "日本..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
