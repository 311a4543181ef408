package diagfmt

import (
	"encoding/json"
	"io"

	"stylename/internal/diag"
	"stylename/internal/source"
)

// LocationJSON: байтовый диапазон плюс, по запросу, строки и колонки.
// Line0/Character0 are the host-compiler coordinates: 0-based, UTF-16.
type LocationJSON struct {
	File       string  `json:"file"`
	StartByte  uint32  `json:"start_byte"`
	EndByte    uint32  `json:"end_byte"`
	StartLine  uint32  `json:"start_line,omitempty"`
	StartCol   uint32  `json:"start_col,omitempty"`
	EndLine    uint32  `json:"end_line,omitempty"`
	EndCol     uint32  `json:"end_col,omitempty"`
	Line0      *uint32 `json:"line0,omitempty"`
	Character0 *uint32 `json:"character0,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON: Text is the source under the primary span.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title,omitempty"`
	Message  string       `json:"message"`
	Text     string       `json:"text,omitempty"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document root. Total counts the bag before Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Total       int              `json:"total"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) LocationJSON {
	f := b.fs.Get(sp.File)
	loc := LocationJSON{File: formatPath(f, b.fs, b.opts.PathMode), StartByte: sp.Start, EndByte: sp.End}
	if !b.opts.IncludePositions || f == nil {
		return loc
	}
	start, end := b.fs.Resolve(sp)
	loc.StartLine, loc.StartCol = start.Line, start.Col
	loc.EndLine, loc.EndCol = end.Line, end.Col
	p := f.Position(sp.Start)
	loc.Line0, loc.Character0 = &p.Line, &p.Character
	return loc
}

func (b jsonBuilder) edit(e diag.FixEdit) FixEditJSON {
	out := FixEditJSON{Location: b.location(e.Span), NewText: e.NewText}
	if f := b.fs.Get(e.Span.File); f != nil {
		out.OldText = f.Text(e.Span)
	}
	if b.opts.IncludePreviews {
		if pv, err := buildFixEditPreview(b.fs, e); err == nil {
			out.BeforeLines, out.AfterLines = pv.before, pv.after
		}
	}
	return out
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	if f := b.fs.Get(d.Primary.File); f != nil && !d.Primary.Empty() {
		out.Text = f.Text(d.Primary)
	}
	// у тайминга вся полезная нагрузка в note
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, fx := range d.Fixes {
			fj := FixJSON{Title: fx.Title}
			for _, e := range fx.Edits {
				fj.Edits = append(fj.Edits, b.edit(e))
			}
			out.Fixes = append(out.Fixes, fj)
		}
	}
	return out
}

// BuildDiagnosticsOutput builds the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 {
		n = min(n, opts.Max)
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n), Total: len(items)}
	for _, d := range items[:n] {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON пишет документ с отступом в два пробела.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
