package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// lineOf returns the 0-based line containing off and that line's start offset.
func lineOf(lineIdx []uint32, off uint32) (line int, start uint32) {
	// бинпоиск: количество переводов строк строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0, 0
	}
	return lo, lineIdx[lo-1] + 1
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line, start := lineOf(lineIdx, off)
	return LineCol{Line: uint32(line + 1), Col: off - start + 1}
}

// utf16Len counts UTF-16 code units in b; invalid bytes count as one unit each.
func utf16Len(b []byte) uint32 {
	var n uint32
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r == utf8.RuneError && size <= 1 {
			n++
			continue
		}
		n += uint32(utf16.RuneLen(r))
	}
	return n
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// IsDeclarationPath reports whether path names a type-declaration-only file.
func IsDeclarationPath(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts", ".d.tsx"} {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	// foo.d.css.ts и подобные arbitrary-extension декларации
	return strings.Contains(base, ".d.") && strings.HasSuffix(base, ".ts")
}

// IsJSXPath reports whether files with this path are parsed in the JSX
// language variant. Plain JavaScript is JSX-capable, TypeScript is not
// unless the extension says so.
func IsJSXPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx", ".tsx", ".js", ".mjs", ".cjs":
		return true
	default:
		return false
	}
}

// RelativePath returns path relative to base, or the cleaned absolute path
// when path lies outside base.
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}
