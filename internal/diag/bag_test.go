package diag

import (
	"strings"
	"testing"

	"stylename/internal/source"
)

func TestBagLimitAndSeverity(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}

	ReportWarning(r, StyLiteralStyleName, source.Span{Start: 5, End: 9}, "w").Emit()
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("unexpected flags after warning: errors=%v warnings=%v", bag.HasErrors(), bag.HasWarnings())
	}
	ReportError(r, StyEmptyInitializer, source.Span{Start: 1, End: 2}, "e").Emit()
	ReportError(r, StyEmptyInitializer, source.Span{Start: 3, End: 4}, "dropped").Emit()

	if bag.Len() != 2 {
		t.Fatalf("limit not honoured: %d items", bag.Len())
	}
	if !bag.HasErrors() {
		t.Error("expected HasErrors")
	}

	bag.Sort()
	if bag.Items()[0].Code != StyEmptyInitializer {
		t.Errorf("sort by start failed: %+v", bag.Items())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportWarning(BagReporter{Bag: bag}, StyLiteralStyleName, source.Span{}, "once").
		WithNote(source.Span{Start: 1, End: 2}, "note")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Errorf("note lost: %+v", bag.Items()[0])
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 3}

	r.Report(StyLiteralStyleName, SevWarning, sp, "m", nil, nil)
	r.Report(StyLiteralStyleName, SevWarning, sp, "m", nil, nil)
	r.Report(StyLiteralStyleName, SevWarning, sp, "other", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Errorf("suppressed = %d, want 1", r.Suppressed())
	}
}

func TestPromoteAndDropWarnings(t *testing.T) {
	mk := func() *Bag {
		bag := NewBag(0)
		bag.Add(New(SevWarning, StyLiteralStyleName, source.Span{}, "w"))
		bag.Add(New(SevInfo, ObsTimings, source.Span{}, "i"))
		return bag
	}

	promoted := mk()
	promoted.PromoteWarnings()
	if !promoted.HasErrors() {
		t.Error("PromoteWarnings did not produce an error")
	}

	dropped := mk()
	dropped.DropWarnings()
	if dropped.Len() != 0 {
		t.Errorf("DropWarnings left %d items", dropped.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedString: "LEX1002",
		SynUnclosedElement:    "SYN2002",
		StyLiteralStyleName:   "STY4001",
		IOLoadFileError:       "IO5001",
		Code(9999):            "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if !strings.Contains(StyLiteralStyleName.String(), "string literal") {
		t.Errorf("String() = %q", StyLiteralStyleName.String())
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("b.jsx", []byte("a\n<div styleName=\"x\"/>\n"))
	other := fs.AddVirtual("a.jsx", []byte("<a/>"))

	diags := []Diagnostic{
		New(SevWarning, StyLiteralStyleName, source.Span{File: id, Start: 7, End: 20}, "literal\nmore"),
		New(SevError, SynUnclosedElement, source.Span{File: other, Start: 0, End: 1}, "never closed"),
	}
	got := FormatShortDiagnostics(diags, fs, false)
	want := "a.jsx:1:1: ERROR SYN2002 never closed\n" +
		"b.jsx:2:6: WARNING STY4001 literal\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSeverityNames(t *testing.T) {
	for _, sev := range []Severity{SevInfo, SevWarning, SevError} {
		got, ok := ParseSeverity(sev.String())
		if !ok || got != sev {
			t.Errorf("ParseSeverity(%q) = %v, %v", sev.String(), got, ok)
		}
	}
	if SevWarning.Label() != "warning" || SevError.String() != "ERROR" {
		t.Errorf("unexpected names: %q %q", SevWarning.Label(), SevError.String())
	}
	if Severity(9).Label() != "unknown" {
		t.Errorf("out of range severity should be unknown")
	}
	if _, ok := ParseSeverity("fatal"); ok {
		t.Errorf("fatal is not a severity")
	}
}
