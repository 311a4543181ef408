package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stylename/internal/diag"
	"stylename/internal/diagfmt"
	"stylename/internal/source"
)

type diagFormat string

const (
	diagFormatPretty   diagFormat = "pretty"
	diagFormatJSON     diagFormat = "json"
	diagFormatWarnings diagFormat = "warnings"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return diagFormatPretty, nil
	case diagFormatPretty, diagFormatJSON, diagFormatWarnings:
		return f, nil
	default:
		return "", fmt.Errorf("unknown diagnostics format %q (expected pretty|json|warnings)", value)
	}
}

type diagPrinter struct {
	format    diagFormat
	color     bool
	withNotes bool
	paths     diagfmt.PathMode
}

func (p diagPrinter) pathMode() diagfmt.PathMode { return p.paths }

// print renders bag to w. In pretty mode warnings use the one-line warning
// format and every other severity the source excerpt.
func (p diagPrinter) print(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || fs == nil {
		return nil
	}
	bag.Filter(func(d diag.Diagnostic) bool { return d.Code != diag.ObsTimings })
	bag.Sort()
	switch p.format {
	case diagFormatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         p.pathMode(),
			IncludeNotes:     p.withNotes,
			IncludeFixes:     p.withNotes,
		})
	case diagFormatWarnings:
		return diagfmt.Warnings(w, bag, fs, p.pathMode())
	}
	if err := diagfmt.Warnings(w, bag, fs, p.pathMode()); err != nil {
		return err
	}
	rest := diag.NewBag(0)
	rest.Merge(bag)
	rest.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	if rest.Len() == 0 {
		return nil
	}
	diagfmt.Pretty(w, rest, fs, diagfmt.PrettyOpts{
		Color:     p.color,
		Context:   1,
		PathMode:  p.pathMode(),
		ShowNotes: p.withNotes,
		ShowFixes: p.withNotes,
	})
	return nil
}

func newDiagPrinter(cmd *cobra.Command, w io.Writer, format string) (diagPrinter, error) {
	f, err := readDiagFormat(format)
	if err != nil {
		return diagPrinter{}, err
	}
	p := diagPrinter{format: f, color: useColor(cmd, w)}
	if flag := cmd.Flags().Lookup("with-notes"); flag != nil {
		p.withNotes, _ = cmd.Flags().GetBool("with-notes")
	}
	if flag := cmd.Flags().Lookup("paths"); flag != nil {
		if p.paths, err = diagfmt.ParsePathMode(flag.Value.String()); err != nil {
			return diagPrinter{}, err
		}
	}
	// --fullpath старше --paths
	if full, _ := cmd.Flags().GetBool("fullpath"); full {
		p.paths = diagfmt.PathModeAbsolute
	}
	return p, nil
}
