package diagfmt

import (
	"fmt"
	"path/filepath"
	"strings"

	"stylename/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // relative to the FileSet base when possible
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return fmt.Sprintf("PathMode(%d)", m)
}

// ParsePathMode maps a flag value to a PathMode; "" is auto.
func ParsePathMode(name string) (PathMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PathModeAuto, nil
	}
	for i, n := range pathModeNames {
		if n == name {
			return PathMode(i), nil
		}
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q (expected auto|absolute|relative|basename)", name)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.DisplayPath("", true)
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	base := ""
	if fs != nil {
		base = fs.BaseDir()
	}
	return f.DisplayPath(base, false)
}

// formatSpan renders "startLine:startCol-endLine:endCol", or "span(start-end)"
// when the file is not in fs.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && fs.Get(span.File) != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
