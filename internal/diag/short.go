package diag

import (
	"fmt"
	"sort"
	"strings"

	"stylename/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line, sorted by
// position, in the form "path:line:col: SEV CODE message". Used for
// --format short and as a stable form in tests.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, renderShort(fs, d.Severity.String(), d.Code.ID(), d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = append(rendered, renderShort(fs, "NOTE", d.Code.ID(), n.Span, n.Msg))
		}
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for _, r := range rendered {
		fmt.Fprintf(&b, "%s:%d:%d: %s %s %s\n", r.Path, r.Line, r.Column, r.Severity, r.Code, r.Message)
	}
	return b.String()
}

func renderShort(fs *source.FileSet, sev, code string, sp source.Span, msg string) shortDiagnostic {
	out := shortDiagnostic{Severity: sev, Code: code, Message: firstLine(msg)}
	if int(sp.File) >= fs.Len() {
		return out
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	out.Path = f.DisplayPath(fs.BaseDir(), false)
	out.Line = start.Line
	out.Column = start.Col
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
