package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stylename/internal/diag"
	"stylename/internal/source"
)

type palette struct {
	err, warn, info, accent, dim, add, del *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		accent: color.New(color.FgBlue, color.Bold),
		dim:    color.New(color.Faint),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.accent, p.dim, p.add, p.del} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s: %s\n", pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	header := fmt.Sprintf("%s:%d:%d: ", formatPath(f, fs, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s%s: %s\n", pal.accent.Sprint(header), pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()), d.Message)
	snippet(w, f, fs, d.Primary, opts, pal, pal.severity(d.Severity))

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", pal.info.Sprint("note:"), n.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.add.Sprint("fix:"), fix.Title)
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    %s\n", pal.del.Sprint("- "+line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    %s\n", pal.add.Sprint("+ "+line))
				}
			}
		}
	}
}

// snippet prints the primary line (plus Context lines around it) and a caret
// underline. Display width is computed with runewidth so wide runes line up.
func snippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette, mark *color.Color) {
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line
	if first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := min(start.Line+ctx, uint32(len(f.LineIdx)+1))
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", "    ")
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.dim.Sprintf("%*d |", gutter, ln), text)
		if ln != start.Line {
			continue
		}
		line := strings.ReplaceAll(f.GetLine(ln), "\t", "    ")
		col := int(start.Col) - 1
		raw := f.GetLine(ln)
		prefix := strings.ReplaceAll(raw[:min(col, len(raw))], "\t", "    ")
		pad := runewidth.StringWidth(prefix)
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			seg := raw[min(col, len(raw)):min(int(end.Col)-1, len(raw))]
			width = max(runewidth.StringWidth(strings.ReplaceAll(seg, "\t", "    ")), 1)
		} else if end.Line > start.Line {
			width = max(runewidth.StringWidth(line)-pad, 1)
		}
		if opts.Width > 0 && pad+width > int(opts.Width) {
			width = max(int(opts.Width)-pad, 1)
		}
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.dim.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", pad), mark.Sprint(underline))
	}
}
