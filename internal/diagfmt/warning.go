package diagfmt

import (
	"fmt"
	"io"

	"stylename/internal/diag"
	"stylename/internal/source"
)

// WarningLine renders d as
//
//	warning: <message>: <file>:<line>:<character>: <source text>
//
// with a 0-based line and a 0-based character counted in UTF-16 units.
func WarningLine(d diag.Diagnostic, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(d.Primary.File)
	if f == nil {
		return fmt.Sprintf("%s: %s", d.Severity.Label(), d.Message)
	}
	pos := f.Position(d.Primary.Start)
	return fmt.Sprintf("%s: %s: %s:%d:%d: %s",
		d.Severity.Label(), d.Message, formatPath(f, fs, mode), pos.Line, pos.Character, f.Text(d.Primary))
}

// Warnings writes a WarningLine for every warning in the bag.
func Warnings(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			continue
		}
		if _, err := fmt.Fprintln(w, WarningLine(d, fs, mode)); err != nil {
			return err
		}
	}
	return nil
}
