package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stylename/internal/diag"
	"stylename/internal/source"
)

func rename(span source.Span, text string) diag.Diagnostic {
	return diag.New(diag.SevWarning, diag.StyLiteralStyleName, span, "styleName attribute is string literal").
		WithFix("rename to className", diag.FixEdit{Span: span, NewText: text})
}

func loadTemp(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jsx")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs, id, path
}

func TestApplyAllWritesFile(t *testing.T) {
	src := `<a styleName="x"/><b styleName="y"/>`
	fs, id, path := loadTemp(t, src)
	diags := []diag.Diagnostic{
		rename(source.Span{File: id, Start: 21, End: 30}, "className"),
		rename(source.Span{File: id, Start: 3, End: 12}, "className"),
	}

	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 || len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `<a className="x"/><b className="y"/>`
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if res.Applied[0].ID != "STY4001@a.jsx:3#0" {
		t.Fatalf("fixes not ordered by position: %+v", res.Applied)
	}
}

func TestApplyOnceAndDryRun(t *testing.T) {
	src := `<a styleName="x"/><b styleName="y"/>`
	fs, id, path := loadTemp(t, src)
	diags := []diag.Diagnostic{
		rename(source.Span{File: id, Start: 3, End: 12}, "className"),
		rename(source.Span{File: id, Start: 21, End: 30}, "className"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || string(res.FileChanges[0].Content) != `<a className="x"/><b styleName="y"/>` {
		t.Fatalf("unexpected result %+v", res)
	}
	if got, _ := os.ReadFile(path); string(got) != src {
		t.Fatalf("dry run wrote the file")
	}
}

func TestApplyByID(t *testing.T) {
	fs, id, _ := loadTemp(t, `<a styleName="x"/><b styleName="y"/>`)
	diags := []diag.Diagnostic{
		rename(source.Span{File: id, Start: 3, End: 12}, "className"),
		rename(source.Span{File: id, Start: 21, End: 30}, "klass"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "STY4001@a.jsx:21#0", DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if string(res.FileChanges[0].Content) != `<a styleName="x"/><b klass="y"/>` {
		t.Fatalf("got %q", res.FileChanges[0].Content)
	}

	_, err = Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplySkipsConflictsAndDuplicates(t *testing.T) {
	fs, id, _ := loadTemp(t, `<a styleName="x"/>`)
	span := source.Span{File: id, Start: 3, End: 12}
	first := source.Span{File: id, Start: 0, End: 1}
	d := rename(span, "className").WithFix("rename to klass", diag.FixEdit{Span: span, NewText: "klass"})
	diags := []diag.Diagnostic{
		d,
		rename(first, "<"),
		rename(first, "<"),
		diag.New(diag.SevWarning, diag.StyLiteralStyleName, span, "no edits").WithFix("empty"),
	}

	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("applied = %+v", res.Applied)
	}
	reasons := map[string]int{}
	for _, s := range res.Skipped {
		reasons[s.Reason]++
	}
	if reasons["fix has no edits"] != 1 || reasons["duplicate fix id"] != 1 ||
		reasons["conflicts with previously applied edits in a.jsx"] != 1 {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if string(res.FileChanges[0].Content) != `<a className="x"/>` {
		t.Fatalf("got %q", res.FileChanges[0].Content)
	}
}

func TestApplyRejectsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.jsx", []byte(`<a styleName="x"/>`))
	_, err := Apply(fs, []diag.Diagnostic{rename(source.Span{File: id, Start: 3, End: 12}, "className")}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if _, err := Apply(nil, nil, ApplyOptions{}); err == nil {
		t.Fatalf("nil FileSet accepted")
	}
}

func TestSpansConflict(t *testing.T) {
	at := func(s, e uint32) diag.FixEdit { return diag.FixEdit{Span: source.Span{Start: s, End: e}} }
	tests := []struct {
		a, b diag.FixEdit
		want bool
	}{
		{at(0, 5), at(5, 8), false},
		{at(0, 5), at(4, 8), true},
		{at(3, 3), at(3, 3), false},
		{at(3, 3), at(0, 5), true},
		{at(5, 5), at(0, 5), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", tt.a.Span, tt.b.Span, got, tt.want)
		}
	}
}
